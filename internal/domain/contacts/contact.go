// Package contacts defines the address book of invoice recipients.
package contacts

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// Contact is an invoice recipient owned by one user.
type Contact struct {
	ID            string    `validate:"required,uuid4"`
	OwnerID       string    `validate:"required,uuid4"`
	Name          string    `validate:"required,min=1,max=150"`
	Email         string    `validate:"omitempty,email,max=255"`
	WalletAddress string    `validate:"omitempty,eth_addr"`
	Company       string    `validate:"max=150"`
	Notes         string    `validate:"max=2000"`
	CreatedAt     time.Time `validate:"required"`
	UpdatedAt     time.Time
}

// Validate for validating Contact struct
func (c *Contact) Validate() error {
	return validators.Struct(c)
}

// ContactInput carries the writable contact fields.
type ContactInput struct {
	Name          string
	Email         string
	WalletAddress string
	Company       string
	Notes         string
}

// ContactQuery represents the parameters used to query contacts
type ContactQuery struct {
	OwnerID   string `validate:"required"`
	Name      string `validate:"omitempty,max=150"`
	Limit     int    `validate:"omitempty,min=1,max=500"`
	Offset    int    `validate:"omitempty,min=0"`
	SortBy    string `validate:"omitempty,oneof=name created_at"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewContactQuery creates a ContactQuery for one owner with default values
func NewContactQuery(ownerID string) *ContactQuery {
	return &ContactQuery{
		OwnerID:   ownerID,
		Limit:     50,
		SortBy:    "name",
		SortOrder: "asc",
	}
}

// Validate for validating ContactQuery struct
func (q *ContactQuery) Validate() error {
	return validators.Struct(q)
}
