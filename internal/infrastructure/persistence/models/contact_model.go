package models

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
)

// ContactModel is the GORM database model for contacts.
// WalletAddress is NULL when unset so the owner/address unique index only applies to set addresses.
type ContactModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	OwnerID       string    `gorm:"not null;index;uniqueIndex:idx_contacts_owner_wallet;type:uuid"`
	Name          string    `gorm:"not null;type:varchar(150)"`
	Email         string    `gorm:"type:varchar(255)"`
	WalletAddress *string   `gorm:"uniqueIndex:idx_contacts_owner_wallet;type:varchar(42)"`
	Company       string    `gorm:"type:varchar(150)"`
	Notes         string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts GORM model to domain entity
func (m *ContactModel) ToDomain() *contacts.Contact {
	c := &contacts.Contact{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Email:     m.Email,
		Company:   m.Company,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.WalletAddress != nil {
		c.WalletAddress = *m.WalletAddress
	}
	return c
}

// FromDomain converts domain entity to GORM model
func (m *ContactModel) FromDomain(c *contacts.Contact) {
	m.ID = c.ID
	m.OwnerID = c.OwnerID
	m.Name = c.Name
	m.Email = c.Email
	m.WalletAddress = nil
	if c.WalletAddress != "" {
		address := c.WalletAddress
		m.WalletAddress = &address
	}
	m.Company = c.Company
	m.Notes = c.Notes
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}
