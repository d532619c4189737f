package models

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
)

// PaymentModel is the GORM database model for invoice payments
type PaymentModel struct {
	ID           string       `gorm:"primaryKey;type:uuid"`
	InvoiceID    string       `gorm:"not null;index;type:uuid"`
	Invoice      InvoiceModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	PayerAddress string       `gorm:"not null;type:varchar(42)"`
	Amount       int64        `gorm:"not null"`
	TxHash       string       `gorm:"not null;uniqueIndex;type:varchar(66)"`
	ChainID      int64        `gorm:"not null;default:0"`
	PaidAt       time.Time    `gorm:"not null;index"`
	CreatedAt    time.Time    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts GORM model to domain entity
func (m *PaymentModel) ToDomain() *invoices.Payment {
	return &invoices.Payment{
		ID:           m.ID,
		InvoiceID:    m.InvoiceID,
		PayerAddress: m.PayerAddress,
		Amount:       m.Amount,
		TxHash:       m.TxHash,
		ChainID:      m.ChainID,
		PaidAt:       m.PaidAt,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PaymentModel) FromDomain(p *invoices.Payment) {
	m.ID = p.ID
	m.InvoiceID = p.InvoiceID
	m.PayerAddress = p.PayerAddress
	m.Amount = p.Amount
	m.TxHash = p.TxHash
	m.ChainID = p.ChainID
	m.PaidAt = p.PaidAt
	m.CreatedAt = p.CreatedAt
}
