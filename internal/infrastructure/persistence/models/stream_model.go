package models

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
)

// StreamModel is the GORM database model for payment streams
type StreamModel struct {
	ID               string       `gorm:"primaryKey;type:uuid"`
	InvoiceID        string       `gorm:"not null;index;type:uuid"`
	Invoice          InvoiceModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	SenderAddress    string       `gorm:"not null;type:varchar(42)"`
	RecipientAddress string       `gorm:"not null;type:varchar(42)"`
	RatePerSecond    int64        `gorm:"not null"`
	StartTime        time.Time    `gorm:"not null"`
	StopTime         time.Time    `gorm:"not null"`
	Status           string       `gorm:"not null;type:varchar(20)"`
	CancelledAt      *time.Time
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (StreamModel) TableName() string {
	return "streams"
}

// ToDomain converts GORM model to domain entity
func (m *StreamModel) ToDomain() *invoices.Stream {
	return &invoices.Stream{
		ID:               m.ID,
		InvoiceID:        m.InvoiceID,
		SenderAddress:    m.SenderAddress,
		RecipientAddress: m.RecipientAddress,
		RatePerSecond:    m.RatePerSecond,
		StartTime:        m.StartTime,
		StopTime:         m.StopTime,
		Status:           invoices.StreamStatus(m.Status),
		CancelledAt:      m.CancelledAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *StreamModel) FromDomain(s *invoices.Stream) {
	m.ID = s.ID
	m.InvoiceID = s.InvoiceID
	m.SenderAddress = s.SenderAddress
	m.RecipientAddress = s.RecipientAddress
	m.RatePerSecond = s.RatePerSecond
	m.StartTime = s.StartTime
	m.StopTime = s.StopTime
	m.Status = string(s.Status)
	m.CancelledAt = s.CancelledAt
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}
