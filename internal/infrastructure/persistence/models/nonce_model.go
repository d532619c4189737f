package models

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
)

// NonceModel is the GORM database model for sign-in challenges
type NonceModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	WalletAddress string    `gorm:"not null;index;type:varchar(42)"`
	Value         string    `gorm:"column:nonce;not null;uniqueIndex;type:varchar(64)"`
	Message       string    `gorm:"not null;type:text"`
	ExpiresAt     time.Time `gorm:"not null;index"`
	UsedAt        *time.Time
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (NonceModel) TableName() string {
	return "auth_nonces"
}

// ToDomain converts GORM model to domain entity
func (m *NonceModel) ToDomain() *auth.Nonce {
	return &auth.Nonce{
		ID:            m.ID,
		WalletAddress: m.WalletAddress,
		Value:         m.Value,
		Message:       m.Message,
		ExpiresAt:     m.ExpiresAt,
		UsedAt:        m.UsedAt,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *NonceModel) FromDomain(n *auth.Nonce) {
	m.ID = n.ID
	m.WalletAddress = n.WalletAddress
	m.Value = n.Value
	m.Message = n.Message
	m.ExpiresAt = n.ExpiresAt
	m.UsedAt = n.UsedAt
	m.CreatedAt = n.CreatedAt
}
