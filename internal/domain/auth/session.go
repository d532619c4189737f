package auth

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
)

// Challenge is returned to a wallet that wants to sign in.
type Challenge struct {
	Address   string
	Nonce     string
	Message   string
	ExpiresAt time.Time
}

// Session is the result of a successful sign-in.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *users.User
}

// Claims are the verified contents of a bearer token.
type Claims struct {
	UserID        string
	WalletAddress string
	ExpiresAt     time.Time
}
