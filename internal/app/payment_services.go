package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/google/uuid"
)

// maxPaymentClockSkew bounds how far in the future a reported paid_at may lie.
const maxPaymentClockSkew = 5 * time.Minute

// paymentService implements the PaymentService interface
type paymentService struct {
	invoiceService invoices.InvoiceService
	paymentRepo    invoices.PaymentRepository
	observer       Observer
	logger         logger.Logger
	now            func() time.Time
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(
	invoiceService invoices.InvoiceService,
	paymentRepo invoices.PaymentRepository,
	observer Observer,
	logger logger.Logger,
) (invoices.PaymentService, error) {
	return &paymentService{
		invoiceService: invoiceService,
		paymentRepo:    paymentRepo,
		observer:       observerOrNoop(observer),
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}, nil
}

// Record stores an on-chain payment. Overpayment is accepted and settles the invoice as paid.
func (s *paymentService) Record(ctx context.Context, issuerID, invoiceID string, input invoices.PaymentInput) (*invoices.Payment, *invoices.Invoice, error) {
	invoice, err := s.invoiceService.GetByID(ctx, issuerID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if !invoice.AcceptsPayments() {
		return nil, nil, fmt.Errorf("%w: invoice %s is %s and does not accept payments", apperr.ErrInvalidState, invoice.Number, invoice.Status)
	}

	if _, err := invoices.AddAmounts(invoice.AmountPaid, input.Amount); err != nil {
		return nil, nil, fmt.Errorf("payment amount: %w", err)
	}

	now := s.now()
	paidAt := input.PaidAt.UTC()
	if input.PaidAt.IsZero() {
		paidAt = now
	}
	if paidAt.After(now.Add(maxPaymentClockSkew)) {
		return nil, nil, fmt.Errorf("%w: paid at lies in the future", apperr.ErrValidation)
	}
	chainID := input.ChainID
	if chainID == 0 {
		chainID = invoice.ChainID
	}

	payment := &invoices.Payment{
		ID:           uuid.NewString(),
		InvoiceID:    invoice.ID,
		PayerAddress: users.NormalizeAddress(input.PayerAddress),
		Amount:       input.Amount,
		TxHash:       strings.ToLower(strings.TrimSpace(input.TxHash)),
		ChainID:      chainID,
		PaidAt:       paidAt,
		CreatedAt:    now,
	}

	updated, err := s.paymentRepo.Record(ctx, payment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.observer.PaymentRecorded(updated.Currency)
	s.logger.Info("Payment recorded", "invoice_id", invoice.ID, "tx_hash", payment.TxHash, "amount", payment.Amount, "status", updated.Status)
	return payment, updated, nil
}

func (s *paymentService) List(ctx context.Context, issuerID, invoiceID string) ([]*invoices.Payment, error) {
	if _, err := s.invoiceService.GetByID(ctx, issuerID, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
