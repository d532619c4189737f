// Package dashboard defines the aggregated figures shown on the billing dashboard.
package dashboard

import (
	"context"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// MonthsInSeries is the length of the monthly received series.
const MonthsInSeries = 12

// TopRecipientsLimit caps the recipient ranking.
const TopRecipientsLimit = 5

// StatsQuery selects the invoices aggregated into Stats.
type StatsQuery struct {
	UserID string `validate:"required,uuid4"`
	// Currency restricts the figures to one currency code when set
	Currency string `validate:"omitempty,currency"`
	Now      time.Time
}

// Validate for validating StatsQuery struct
func (q *StatsQuery) Validate() error {
	return validators.Struct(q)
}

// Stats is the dashboard summary of one user. Amounts are minor units.
type Stats struct {
	InvoiceCount   int64
	StatusCounts   map[invoices.Status]int64
	TotalInvoiced  int64
	TotalReceived  int64
	Outstanding    int64
	OverdueAmount  int64
	ContactCount   int64
	ActiveStreams  int64
	StreamedAmount int64
	Monthly        []MonthlyAmount
	TopRecipients  []RecipientTotal
	GeneratedAt    time.Time
}

// MonthlyAmount is the amount received in one calendar month (UTC), Month formatted as YYYY-MM.
type MonthlyAmount struct {
	Month  string
	Amount int64
}

// RecipientTotal ranks a recipient by invoiced amount.
type RecipientTotal struct {
	Name         string
	Address      string
	ContactID    *string
	InvoiceCount int64
	Invoiced     int64
}

// DashboardService computes Stats.
type DashboardService interface {
	Stats(ctx context.Context, query StatsQuery) (*Stats, error)
}
