package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/dashboard"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"
)

const monthLayout = "2006-01"

// dashboardService implements the DashboardService interface
type dashboardService struct {
	invoiceRepo invoices.InvoiceRepository
	paymentRepo invoices.PaymentRepository
	streamRepo  invoices.StreamRepository
	contactRepo contacts.ContactRepository
	logger      logger.Logger
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(
	invoiceRepo invoices.InvoiceRepository,
	paymentRepo invoices.PaymentRepository,
	streamRepo invoices.StreamRepository,
	contactRepo contacts.ContactRepository,
	logger logger.Logger,
) (dashboard.DashboardService, error) {
	return &dashboardService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		streamRepo:  streamRepo,
		contactRepo: contactRepo,
		logger:      logger,
	}, nil
}

// Stats aggregates in memory over the invoices of one user.
// Without a currency filter amounts of different currencies are summed as they are.
func (s *dashboardService) Stats(ctx context.Context, query dashboard.StatsQuery) (*dashboard.Stats, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stats query: %w", err)
	}
	now := query.Now.UTC()
	if query.Now.IsZero() {
		now = time.Now().UTC()
	}

	all, err := s.invoiceRepo.List(ctx, &invoices.InvoiceQuery{IssuerID: query.UserID, AsOf: now})
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	byID := make(map[string]*invoices.Invoice, len(all))
	for _, inv := range all {
		if query.Currency == "" || inv.Currency == query.Currency {
			byID[inv.ID] = inv
		}
	}

	stats := &dashboard.Stats{
		StatusCounts: make(map[invoices.Status]int64, len(invoices.AllStatuses)),
		GeneratedAt:  now,
	}
	for _, status := range invoices.AllStatuses {
		stats.StatusCounts[status] = 0
	}

	for _, inv := range byID {
		stats.InvoiceCount++
		status := inv.EffectiveStatus(now)
		stats.StatusCounts[status]++
		if inv.Status != invoices.StatusCancelled {
			stats.TotalInvoiced += inv.Total
		}
		stats.TotalReceived += inv.AmountPaid
		stats.Outstanding += inv.Outstanding()
		if status == invoices.StatusOverdue {
			stats.OverdueAmount += inv.Outstanding()
		}
	}

	if stats.ContactCount, err = s.contactRepo.CountByOwner(ctx, query.UserID); err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	streams, err := s.streamRepo.ListByIssuer(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list streams: %w", err)
	}
	for _, stream := range streams {
		if _, ok := byID[stream.InvoiceID]; !ok {
			continue
		}
		if stream.EffectiveStatus(now) == invoices.StreamActive {
			stats.ActiveStreams++
		}
		stats.StreamedAmount += stream.StreamedAmount(now)
	}

	if stats.Monthly, err = s.monthly(ctx, query.UserID, byID, now); err != nil {
		return nil, err
	}
	stats.TopRecipients = topRecipients(byID)

	s.logger.Info("Computed dashboard stats", "user_id", query.UserID, "invoices", stats.InvoiceCount)
	return stats, nil
}

// monthly buckets payments by UTC month of paid_at, oldest month first, including empty months.
func (s *dashboardService) monthly(ctx context.Context, userID string, byID map[string]*invoices.Invoice, now time.Time) ([]dashboard.MonthlyAmount, error) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(dashboard.MonthsInSeries - 1), 0)

	series := make([]dashboard.MonthlyAmount, dashboard.MonthsInSeries)
	index := make(map[string]int, dashboard.MonthsInSeries)
	for i := range series {
		month := first.AddDate(0, i, 0).Format(monthLayout)
		series[i].Month = month
		index[month] = i
	}

	payments, err := s.paymentRepo.ListByIssuer(ctx, userID, first)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	for _, p := range payments {
		if _, ok := byID[p.InvoiceID]; !ok {
			continue
		}
		if i, ok := index[p.PaidAt.UTC().Format(monthLayout)]; ok {
			series[i].Amount += p.Amount
		}
	}
	return series, nil
}

// topRecipients groups non-cancelled invoices by contact, else wallet address, else name.
func topRecipients(byID map[string]*invoices.Invoice) []dashboard.RecipientTotal {
	groups := make(map[string]*dashboard.RecipientTotal)
	for _, inv := range byID {
		if inv.Status == invoices.StatusCancelled {
			continue
		}
		var key string
		switch {
		case inv.ContactID != nil:
			key = "contact:" + *inv.ContactID
		case inv.RecipientAddress != "":
			key = "address:" + inv.RecipientAddress
		default:
			key = "name:" + inv.RecipientName
		}
		group, ok := groups[key]
		if !ok {
			group = &dashboard.RecipientTotal{
				Name:      inv.RecipientName,
				Address:   inv.RecipientAddress,
				ContactID: inv.ContactID,
			}
			groups[key] = group
		}
		group.InvoiceCount++
		group.Invoiced += inv.Total
	}

	ranked := make([]dashboard.RecipientTotal, 0, len(groups))
	for _, g := range groups {
		ranked = append(ranked, *g)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Invoiced != ranked[j].Invoiced {
			return ranked[i].Invoiced > ranked[j].Invoiced
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > dashboard.TopRecipientsLimit {
		ranked = ranked[:dashboard.TopRecipientsLimit]
	}
	return ranked
}
