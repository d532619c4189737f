package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"
)

// documentService implements the DocumentService interface
type documentService struct {
	invoiceService invoices.InvoiceService
	paymentRepo    invoices.PaymentRepository
	profileRepo    users.ProfileRepository
	renderer       invoices.Renderer
	logger         logger.Logger
	now            func() time.Time
}

// NewDocumentService creates a new instance of DocumentService
func NewDocumentService(
	invoiceService invoices.InvoiceService,
	paymentRepo invoices.PaymentRepository,
	profileRepo users.ProfileRepository,
	renderer invoices.Renderer,
	logger logger.Logger,
) (invoices.DocumentService, error) {
	return &documentService{
		invoiceService: invoiceService,
		paymentRepo:    paymentRepo,
		profileRepo:    profileRepo,
		renderer:       renderer,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *documentService) RenderPDF(ctx context.Context, issuerID, invoiceID string) (*invoices.RenderedDocument, error) {
	invoice, err := s.invoiceService.GetByID(ctx, issuerID, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, invoice)
}

// RenderPublicPDF renders a non-draft invoice for its payer.
func (s *documentService) RenderPublicPDF(ctx context.Context, invoiceID string) (*invoices.RenderedDocument, error) {
	invoice, err := s.invoiceService.GetPublic(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, invoice)
}

func (s *documentService) render(ctx context.Context, invoice *invoices.Invoice) (*invoices.RenderedDocument, error) {
	issuer := invoices.Issuer{WalletAddress: invoice.IssuerAddress}
	profile, err := s.profileRepo.GetByUserID(ctx, invoice.IssuerID)
	switch {
	case err == nil:
		issuer.DisplayName = profile.DisplayName
		issuer.Company = profile.Company
		issuer.Email = profile.Email
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, fmt.Errorf("failed to load issuer profile: %w", err)
	}

	payments, err := s.paymentRepo.ListByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	doc, err := s.renderer.Render(&invoices.Document{
		Invoice:     invoice,
		Issuer:      issuer,
		Payments:    payments,
		GeneratedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return doc, nil
}
