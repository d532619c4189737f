package auth

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// Nonce is a single-use sign-in challenge bound to one wallet address.
type Nonce struct {
	ID            string    `validate:"required,uuid4"`
	WalletAddress string    `validate:"required,eth_addr"`
	Value         string    `validate:"required,alphanum,min=16,max=64"`
	Message       string    `validate:"required"`
	ExpiresAt     time.Time `validate:"required"`
	UsedAt        *time.Time
	CreatedAt     time.Time `validate:"required"`
}

// Validate for validating Nonce struct
func (n *Nonce) Validate() error {
	return validators.Struct(n)
}

// Usable reports whether the nonce is unused and not expired at now.
func (n *Nonce) Usable(now time.Time) bool {
	return n.UsedAt == nil && now.Before(n.ExpiresAt)
}
