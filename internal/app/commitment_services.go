package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// commitmentService implements the CommitmentService interface
type commitmentService struct {
	invoiceService invoices.InvoiceService
	invoiceRepo    invoices.InvoiceRepository
	hasher         invoices.Hasher
	logger         logger.Logger
	now            func() time.Time
}

// NewCommitmentService creates a new instance of CommitmentService
func NewCommitmentService(
	invoiceService invoices.InvoiceService,
	invoiceRepo invoices.InvoiceRepository,
	hasher invoices.Hasher,
	logger logger.Logger,
) (invoices.CommitmentService, error) {
	return &commitmentService{
		invoiceService: invoiceService,
		invoiceRepo:    invoiceRepo,
		hasher:         hasher,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}, nil
}

// Commit hashes the committed invoice fields and stores the result on the invoice.
func (s *commitmentService) Commit(ctx context.Context, issuerID, invoiceID string) (*invoices.Invoice, error) {
	invoice, err := s.invoiceService.GetByID(ctx, issuerID, invoiceID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Commit(invoice.CommitmentFields())
	if err != nil {
		return nil, fmt.Errorf("failed to compute commitment: %w", err)
	}
	now := s.now()
	if err := s.invoiceRepo.SetCommitment(ctx, invoice.ID, hash, now); err != nil {
		return nil, fmt.Errorf("failed to store commitment: %w", err)
	}

	invoice.Hash = &hash
	invoice.HashedAt = &now
	s.logger.Info("Invoice committed", "id", invoice.ID, "hash", hash)
	return invoice, nil
}

// Verify recomputes the commitment and compares it with hash, or with the stored one when hash is empty.
func (s *commitmentService) Verify(ctx context.Context, issuerID, invoiceID, hash string) (*invoices.Verification, error) {
	invoice, err := s.invoiceService.GetByID(ctx, issuerID, invoiceID)
	if err != nil {
		return nil, err
	}

	candidate := strings.ToLower(strings.TrimSpace(hash))
	if candidate == "" && invoice.Hash != nil {
		candidate = *invoice.Hash
	}
	if candidate == "" {
		return nil, fmt.Errorf("%w: no hash given and none stored", apperr.ErrValidation)
	}
	if err := validators.Var(candidate, "hexadecimal,max=66"); err != nil {
		return nil, fmt.Errorf("invalid hash: %w", err)
	}

	expected, err := s.hasher.Commit(invoice.CommitmentFields())
	if err != nil {
		return nil, fmt.Errorf("failed to compute commitment: %w", err)
	}

	return &invoices.Verification{
		Valid:    candidate == expected,
		Expected: expected,
		Stored:   invoice.Hash,
	}, nil
}
