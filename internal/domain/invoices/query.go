package invoices

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// InvoiceQuery represents the parameters used to query invoices.
// A zero Limit returns every matching invoice.
type InvoiceQuery struct {
	IssuerID  string `validate:"required"`
	Status    Status `validate:"omitempty,oneof=draft pending partially_paid paid cancelled overdue"`
	ContactID string `validate:"omitempty,uuid4"`
	Limit     int    `validate:"omitempty,min=1,max=500"`
	Offset    int    `validate:"omitempty,min=0"`
	SortBy    string `validate:"omitempty,oneof=created_at due_date total number"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
	// AsOf decides which open invoices count as overdue when filtering by status
	AsOf time.Time
}

// NewInvoiceQuery creates an InvoiceQuery for one issuer with default values
func NewInvoiceQuery(issuerID string) *InvoiceQuery {
	return &InvoiceQuery{
		IssuerID:  issuerID,
		Limit:     50,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// Validate for validating InvoiceQuery struct
func (q *InvoiceQuery) Validate() error {
	return validators.Struct(q)
}
