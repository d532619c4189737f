package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/google/uuid"
)

// streamService implements the StreamService interface
type streamService struct {
	invoiceService invoices.InvoiceService
	streamRepo     invoices.StreamRepository
	logger         logger.Logger
	now            func() time.Time
}

// NewStreamService creates a new instance of StreamService
func NewStreamService(
	invoiceService invoices.InvoiceService,
	streamRepo invoices.StreamRepository,
	logger logger.Logger,
) (invoices.StreamService, error) {
	return &streamService{
		invoiceService: invoiceService,
		streamRepo:     streamRepo,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create attaches a stream to an open invoice. The full deposit may not exceed what is still owed.
func (s *streamService) Create(ctx context.Context, issuerID, invoiceID string, input invoices.StreamInput) (*invoices.Stream, error) {
	invoice, err := s.invoiceService.GetByID(ctx, issuerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.AcceptsPayments() {
		return nil, fmt.Errorf("%w: invoice %s is %s and does not accept streams", apperr.ErrInvalidState, invoice.Number, invoice.Status)
	}

	recipient := users.NormalizeAddress(input.RecipientAddress)
	if recipient == "" {
		recipient = invoice.IssuerAddress
	}

	now := s.now()
	start := input.StartTime.UTC()
	if input.StartTime.IsZero() {
		start = now
	}

	stream := &invoices.Stream{
		ID:               uuid.NewString(),
		InvoiceID:        invoice.ID,
		SenderAddress:    users.NormalizeAddress(input.SenderAddress),
		RecipientAddress: recipient,
		RatePerSecond:    input.RatePerSecond,
		StartTime:        start.Truncate(time.Second),
		StopTime:         input.StopTime.UTC().Truncate(time.Second),
		Status:           invoices.StreamActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := stream.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stream: %w", err)
	}
	if deposit := stream.Deposit(); deposit > invoice.Outstanding() {
		return nil, fmt.Errorf("%w: stream deposit %d exceeds outstanding amount %d", apperr.ErrValidation, deposit, invoice.Outstanding())
	}

	if err := s.streamRepo.Create(ctx, stream); err != nil {
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}
	s.logger.Info("Stream created", "id", stream.ID, "invoice_id", invoice.ID, "rate_per_second", stream.RatePerSecond, "deposit", stream.Deposit())
	return stream, nil
}

func (s *streamService) List(ctx context.Context, issuerID, invoiceID string) ([]*invoices.Stream, error) {
	if _, err := s.invoiceService.GetByID(ctx, issuerID, invoiceID); err != nil {
		return nil, err
	}
	streams, err := s.streamRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list streams: %w", err)
	}
	return streams, nil
}

// Cancel freezes a running or scheduled stream at the current time.
func (s *streamService) Cancel(ctx context.Context, issuerID, streamID string) (*invoices.Stream, error) {
	stream, err := s.streamRepo.GetByID(ctx, streamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream: %w", err)
	}
	if _, err := s.invoiceService.GetByID(ctx, issuerID, stream.InvoiceID); err != nil {
		return nil, err
	}

	if err := stream.Cancel(s.now()); err != nil {
		return nil, err
	}
	if err := s.streamRepo.UpdateByID(ctx, stream); err != nil {
		return nil, fmt.Errorf("failed to cancel stream: %w", err)
	}
	s.logger.Info("Stream cancelled", "id", stream.ID, "streamed", stream.StreamedAmount(*stream.CancelledAt))
	return stream, nil
}
