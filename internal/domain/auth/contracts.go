package auth

import (
	"context"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
)

// AuthService implements wallet sign-in.
type AuthService interface {
	// Challenge issues a single-use nonce and the message the wallet has to sign.
	Challenge(ctx context.Context, address string) (*Challenge, error)

	// SignIn verifies the signed challenge and issues a bearer token.
	// The user and an empty profile are created on first sign-in.
	SignIn(ctx context.Context, address, message, signature string) (*Session, error)

	// Authenticate validates a bearer token and returns its user.
	Authenticate(ctx context.Context, token string) (*users.User, error)
}

// NonceRepository persists sign-in nonces.
type NonceRepository interface {
	Create(ctx context.Context, nonce *Nonce) error
	GetByValue(ctx context.Context, value string) (*Nonce, error)
	// MarkUsed flags the nonce as consumed; it fails when the nonce was already used.
	MarkUsed(ctx context.Context, nonceID string, usedAt time.Time) error
	// DeleteExpired removes nonces that expired before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SignatureVerifier recovers the signing wallet of an EIP-191 personal message signature.
type SignatureVerifier interface {
	RecoverAddress(message []byte, signature string) (string, error)
}

// TokenIssuer mints and verifies bearer tokens.
type TokenIssuer interface {
	Issue(userID, walletAddress string) (string, time.Time, error)
	Parse(token string) (*Claims, error)
}
