package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

// invoiceService implements the InvoiceService interface
type invoiceService struct {
	invoiceRepo invoices.InvoiceRepository
	contactRepo contacts.ContactRepository
	userRepo    users.UserRepository
	observer    Observer
	logger      logger.Logger
	now         func() time.Time
}

// NewInvoiceService creates a new instance of InvoiceService
func NewInvoiceService(
	invoiceRepo invoices.InvoiceRepository,
	contactRepo contacts.ContactRepository,
	userRepo users.UserRepository,
	observer Observer,
	logger logger.Logger,
) (invoices.InvoiceService, error) {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		userRepo:    userRepo,
		observer:    observerOrNoop(observer),
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create computes totals, allocates the next number and stores the invoice as draft,
// or pending when input.Send is set.
func (s *invoiceService) Create(ctx context.Context, issuerID string, input invoices.InvoiceInput) (*invoices.Invoice, error) {
	issuer, err := s.userRepo.GetByID(ctx, issuerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load issuer: %w", err)
	}

	now := s.now()
	invoice := &invoices.Invoice{
		ID:            uuid.NewString(),
		IssuerID:      issuer.ID,
		IssuerAddress: issuer.WalletAddress,
		Status:        invoices.StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.applyInput(ctx, invoice, input); err != nil {
		return nil, err
	}
	if input.Send {
		invoice.Status = invoices.StatusPending
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.observer.InvoiceCreated()
	s.logger.Info("Invoice created", "id", invoice.ID, "number", invoice.Number, "total", invoice.Total, "currency", invoice.Currency, "status", invoice.Status)
	return invoice, nil
}

// applyInput copies the request onto invoice, resolving the contact and recomputing totals.
func (s *invoiceService) applyInput(ctx context.Context, invoice *invoices.Invoice, input invoices.InvoiceInput) error {
	if input.ContactID != nil && *input.ContactID != "" {
		contact, err := s.contactRepo.GetByID(ctx, *input.ContactID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("failed to load contact: %w", err)
		}
		if err != nil || contact.OwnerID != invoice.IssuerID {
			return fmt.Errorf("%w: unknown contact %s", apperr.ErrValidation, *input.ContactID)
		}
		input.ApplyRecipientDefaults(invoices.Recipient{
			Name:          contact.Name,
			Email:         contact.Email,
			WalletAddress: contact.WalletAddress,
		})
		contactID := contact.ID
		invoice.ContactID = &contactID
	} else {
		invoice.ContactID = nil
	}

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = s.now()
	}

	invoice.RecipientName = strings.TrimSpace(input.RecipientName)
	invoice.RecipientEmail = strings.TrimSpace(input.RecipientEmail)
	invoice.RecipientAddress = users.NormalizeAddress(input.RecipientAddress)
	invoice.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))
	invoice.ChainID = input.ChainID
	invoice.IssueDate = issueDate.UTC().Truncate(day)
	invoice.DueDate = input.DueDate.UTC().Truncate(day)
	invoice.Memo = input.Memo
	invoice.TaxRateBps = input.TaxRateBps

	items := make([]invoices.LineItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, invoices.LineItem{
			ID:          uuid.NewString(),
			InvoiceID:   invoice.ID,
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		})
	}
	invoice.Items = items
	return invoice.Recalculate()
}

func (s *invoiceService) List(ctx context.Context, query *invoices.InvoiceQuery) ([]*invoices.Invoice, error) {
	if query.AsOf.IsZero() {
		query.AsOf = s.now()
	}
	list, err := s.invoiceRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return list, nil
}

// GetByID returns the invoice when it was issued by issuerID.
func (s *invoiceService) GetByID(ctx context.Context, issuerID, invoiceID string) (*invoices.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice.IssuerID != issuerID {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperr.ErrNotFound)
	}
	return invoice, nil
}

func (s *invoiceService) Update(ctx context.Context, issuerID, invoiceID string, input invoices.InvoiceInput) (*invoices.Invoice, error) {
	invoice, err := s.GetByID(ctx, issuerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.CanEdit() {
		return nil, fmt.Errorf("%w: invoice %s is %s and can no longer be edited", apperr.ErrInvalidState, invoice.Number, invoice.Status)
	}

	hadCommitment := invoice.Hash != nil
	if err := s.applyInput(ctx, invoice, input); err != nil {
		return nil, err
	}
	now := s.now()
	if input.Send && invoice.Status == invoices.StatusDraft {
		if err := invoice.Send(now); err != nil {
			return nil, err
		}
	}
	// committed fields may have changed
	invoice.Hash = nil
	invoice.HashedAt = nil
	invoice.UpdatedAt = now

	if err := s.invoiceRepo.UpdateByID(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	s.logger.Info("Invoice updated", "id", invoice.ID, "number", invoice.Number, "commitment_cleared", hadCommitment)
	return invoice, nil
}

func (s *invoiceService) DeleteByID(ctx context.Context, issuerID, invoiceID string) error {
	invoice, err := s.GetByID(ctx, issuerID, invoiceID)
	if err != nil {
		return err
	}
	if !invoice.CanDelete() {
		return fmt.Errorf("%w: only draft invoices can be deleted, invoice is %s", apperr.ErrInvalidState, invoice.Status)
	}
	if err := s.invoiceRepo.DeleteByID(ctx, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	s.logger.Info("Invoice deleted", "id", invoiceID, "number", invoice.Number)
	return nil
}

func (s *invoiceService) Send(ctx context.Context, issuerID, invoiceID string) (*invoices.Invoice, error) {
	return s.transition(ctx, issuerID, invoiceID, "sent", (*invoices.Invoice).Send)
}

func (s *invoiceService) Cancel(ctx context.Context, issuerID, invoiceID string) (*invoices.Invoice, error) {
	return s.transition(ctx, issuerID, invoiceID, "cancelled", (*invoices.Invoice).Cancel)
}

func (s *invoiceService) transition(ctx context.Context, issuerID, invoiceID, event string, apply func(*invoices.Invoice, time.Time) error) (*invoices.Invoice, error) {
	invoice, err := s.GetByID(ctx, issuerID, invoiceID)
	if err != nil {
		return nil, err
	}
	from := invoice.Status
	if err := apply(invoice, s.now()); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Transition(ctx, invoice.ID, from, invoice.Status, invoice.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	s.logger.Info("Invoice "+event, "id", invoice.ID, "number", invoice.Number)
	return invoice, nil
}

// GetPublic hides drafts so unsent invoices cannot be discovered by id.
func (s *invoiceService) GetPublic(ctx context.Context, invoiceID string) (*invoices.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if !invoice.IsPublic() {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperr.ErrNotFound)
	}
	return invoice, nil
}
