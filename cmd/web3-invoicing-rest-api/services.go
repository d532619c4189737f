package main

import (
	"fmt"

	v1 "github.com/MGTheTrain/web3-invoicing/internal/api/rest/v1"
	"github.com/MGTheTrain/web3-invoicing/internal/app"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/imaging"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/metrics"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/pdf"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/token"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/zkhash"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"gorm.io/gorm"
)

type repositories struct {
	user    users.UserRepository
	profile users.ProfileRepository
	nonce   auth.NonceRepository
	contact contacts.ContactRepository
	invoice invoices.InvoiceRepository
	payment invoices.PaymentRepository
	stream  invoices.StreamRepository
}

// initializeRepositories sets up the GORM repositories
func initializeRepositories(db *gorm.DB, log logger.Logger) (*repositories, error) {
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	profileRepo, err := persistence.NewGormProfileRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile repository: %w", err)
	}
	nonceRepo, err := persistence.NewGormNonceRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create nonce repository: %w", err)
	}
	contactRepo, err := persistence.NewGormContactRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact repository: %w", err)
	}
	invoiceRepo, err := persistence.NewGormInvoiceRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice repository: %w", err)
	}
	paymentRepo, err := persistence.NewGormPaymentRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment repository: %w", err)
	}
	streamRepo, err := persistence.NewGormStreamRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream repository: %w", err)
	}

	return &repositories{
		user:    userRepo,
		profile: profileRepo,
		nonce:   nonceRepo,
		contact: contactRepo,
		invoice: invoiceRepo,
		payment: paymentRepo,
		stream:  streamRepo,
	}, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.RestConfig,
	repos *repositories,
	blobConnector users.BlobConnector,
	m *metrics.Metrics,
	log logger.Logger,
) (*v1.Services, error) {
	wallet, err := cryptography.NewWalletProcessor(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet processor: %w", err)
	}

	tokens, err := token.NewJWTIssuer(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	authService, err := app.NewAuthService(&cfg.Auth, repos.user, repos.nonce, wallet, tokens, m, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	profileService, err := app.NewProfileService(repos.profile, imaging.NewAvatarProcessor(log), blobConnector, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	contactService, err := app.NewContactService(repos.contact, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact service: %w", err)
	}

	invoiceService, err := app.NewInvoiceService(repos.invoice, repos.contact, repos.user, m, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice service: %w", err)
	}

	documentService, err := app.NewDocumentService(invoiceService, repos.payment, repos.profile, pdf.NewInvoiceRenderer(log), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document service: %w", err)
	}

	paymentService, err := app.NewPaymentService(invoiceService, repos.payment, m, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment service: %w", err)
	}

	streamService, err := app.NewStreamService(invoiceService, repos.stream, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream service: %w", err)
	}

	commitmentService, err := app.NewCommitmentService(invoiceService, repos.invoice, zkhash.NewPoseidonHasher(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create commitment service: %w", err)
	}

	dashboardService, err := app.NewDashboardService(repos.invoice, repos.payment, repos.stream, repos.contact, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &v1.Services{
		Auth:       authService,
		Profile:    profileService,
		Contact:    contactService,
		Invoice:    invoiceService,
		Document:   documentService,
		Payment:    paymentService,
		Stream:     streamService,
		Commitment: commitmentService,
		Dashboard:  dashboardService,
	}, nil
}
