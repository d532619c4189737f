package models

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
)

// InvoiceModel is the GORM database model for invoices
type InvoiceModel struct {
	ID               string    `gorm:"primaryKey;type:uuid"`
	IssuerID         string    `gorm:"not null;index;uniqueIndex:idx_invoices_issuer_sequence;uniqueIndex:idx_invoices_issuer_number;type:uuid"`
	IssuerAddress    string    `gorm:"not null;type:varchar(42)"`
	Sequence         int64     `gorm:"not null;uniqueIndex:idx_invoices_issuer_sequence"`
	Number           string    `gorm:"not null;uniqueIndex:idx_invoices_issuer_number;type:varchar(32)"`
	ContactID        *string   `gorm:"index;type:uuid"`
	RecipientName    string    `gorm:"not null;type:varchar(150)"`
	RecipientEmail   string    `gorm:"type:varchar(255)"`
	RecipientAddress string    `gorm:"type:varchar(42)"`
	Currency         string    `gorm:"not null;type:varchar(10)"`
	ChainID          int64     `gorm:"not null;default:0"`
	Status           string    `gorm:"not null;index;type:varchar(20)"`
	IssueDate        time.Time `gorm:"not null"`
	DueDate          time.Time `gorm:"not null;index"`
	Memo             string    `gorm:"type:text"`
	Subtotal         int64     `gorm:"not null"`
	TaxRateBps       int       `gorm:"not null;default:0"`
	Tax              int64     `gorm:"not null"`
	Total            int64     `gorm:"not null"`
	AmountPaid       int64     `gorm:"not null;default:0"`
	Hash             *string   `gorm:"type:varchar(80)"`
	HashedAt         *time.Time
	Items            []InvoiceItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time          `gorm:"not null"`
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is the GORM database model for invoice line items
type InvoiceItemModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	InvoiceID   string `gorm:"not null;index;type:uuid"`
	Position    int    `gorm:"not null"`
	Description string `gorm:"not null;type:varchar(500)"`
	Quantity    int64  `gorm:"not null"`
	UnitPrice   int64  `gorm:"not null"`
	Amount      int64  `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts GORM model to domain entity
func (m *InvoiceModel) ToDomain() *invoices.Invoice {
	items := make([]invoices.LineItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = invoices.LineItem{
			ID:          item.ID,
			InvoiceID:   item.InvoiceID,
			Position:    item.Position,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return &invoices.Invoice{
		ID:               m.ID,
		IssuerID:         m.IssuerID,
		IssuerAddress:    m.IssuerAddress,
		Sequence:         m.Sequence,
		Number:           m.Number,
		ContactID:        m.ContactID,
		RecipientName:    m.RecipientName,
		RecipientEmail:   m.RecipientEmail,
		RecipientAddress: m.RecipientAddress,
		Currency:         m.Currency,
		ChainID:          m.ChainID,
		Status:           invoices.Status(m.Status),
		IssueDate:        m.IssueDate,
		DueDate:          m.DueDate,
		Memo:             m.Memo,
		Items:            items,
		Subtotal:         m.Subtotal,
		TaxRateBps:       m.TaxRateBps,
		Tax:              m.Tax,
		Total:            m.Total,
		AmountPaid:       m.AmountPaid,
		Hash:             m.Hash,
		HashedAt:         m.HashedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *InvoiceModel) FromDomain(inv *invoices.Invoice) {
	m.ID = inv.ID
	m.IssuerID = inv.IssuerID
	m.IssuerAddress = inv.IssuerAddress
	m.Sequence = inv.Sequence
	m.Number = inv.Number
	m.ContactID = inv.ContactID
	m.RecipientName = inv.RecipientName
	m.RecipientEmail = inv.RecipientEmail
	m.RecipientAddress = inv.RecipientAddress
	m.Currency = inv.Currency
	m.ChainID = inv.ChainID
	m.Status = string(inv.Status)
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.Memo = inv.Memo
	m.Subtotal = inv.Subtotal
	m.TaxRateBps = inv.TaxRateBps
	m.Tax = inv.Tax
	m.Total = inv.Total
	m.AmountPaid = inv.AmountPaid
	m.Hash = inv.Hash
	m.HashedAt = inv.HashedAt
	m.CreatedAt = inv.CreatedAt
	m.UpdatedAt = inv.UpdatedAt

	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = InvoiceItemModel{
			ID:          item.ID,
			InvoiceID:   inv.ID,
			Position:    item.Position,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
}
