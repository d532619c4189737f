//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/dashboard"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/connector"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/imaging"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/pdf"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/token"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/zkhash"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/testutil"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	TestDomain    = "invoices.test"
	TestJWTSecret = "integration-secret-that-is-long-enough"
	TestCurrency  = "USDC"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AuthService       auth.AuthService
	ProfileService    users.ProfileService
	ContactService    contacts.ContactService
	InvoiceService    invoices.InvoiceService
	DocumentService   invoices.DocumentService
	PaymentService    invoices.PaymentService
	StreamService     invoices.StreamService
	CommitmentService invoices.CommitmentService
	DashboardService  dashboard.DashboardService

	Wallet       cryptography.WalletProcessor
	AuthSettings *config.AuthSettings

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	blobConnector, err := connector.NewLocalBlobConnector(&config.BlobConnectorSettings{
		CloudProvider: config.LocalStorageProvider,
		LocalPath:     t.TempDir(),
	}, logger)
	require.NoError(t, err, "Failed to create blob connector")

	wallet, err := cryptography.NewWalletProcessor(logger)
	require.NoError(t, err, "Failed to create wallet processor")

	authSettings := &config.AuthSettings{
		Domain:    TestDomain,
		JWTSecret: TestJWTSecret,
		Issuer:    "web3-invoicing-test",
		TokenTTL:  time.Hour,
		NonceTTL:  5 * time.Minute,
	}
	tokens, err := token.NewJWTIssuer(authSettings)
	require.NoError(t, err, "Failed to create token issuer")

	authService, err := NewAuthService(authSettings, dbContext.UserRepo, dbContext.NonceRepo, wallet, tokens, nil, logger)
	require.NoError(t, err, "Failed to create AuthService")

	profileService, err := NewProfileService(dbContext.ProfileRepo, imaging.NewAvatarProcessor(logger), blobConnector, logger)
	require.NoError(t, err, "Failed to create ProfileService")

	contactService, err := NewContactService(dbContext.ContactRepo, logger)
	require.NoError(t, err, "Failed to create ContactService")

	invoiceService, err := NewInvoiceService(dbContext.InvoiceRepo, dbContext.ContactRepo, dbContext.UserRepo, nil, logger)
	require.NoError(t, err, "Failed to create InvoiceService")

	documentService, err := NewDocumentService(invoiceService, dbContext.PaymentRepo, dbContext.ProfileRepo, pdf.NewInvoiceRenderer(logger), logger)
	require.NoError(t, err, "Failed to create DocumentService")

	paymentService, err := NewPaymentService(invoiceService, dbContext.PaymentRepo, nil, logger)
	require.NoError(t, err, "Failed to create PaymentService")

	streamService, err := NewStreamService(invoiceService, dbContext.StreamRepo, logger)
	require.NoError(t, err, "Failed to create StreamService")

	commitmentService, err := NewCommitmentService(invoiceService, dbContext.InvoiceRepo, zkhash.NewPoseidonHasher(), logger)
	require.NoError(t, err, "Failed to create CommitmentService")

	dashboardService, err := NewDashboardService(dbContext.InvoiceRepo, dbContext.PaymentRepo, dbContext.StreamRepo, dbContext.ContactRepo, logger)
	require.NoError(t, err, "Failed to create DashboardService")

	return &TestServices{
		AuthService:       authService,
		ProfileService:    profileService,
		ContactService:    contactService,
		InvoiceService:    invoiceService,
		DocumentService:   documentService,
		PaymentService:    paymentService,
		StreamService:     streamService,
		CommitmentService: commitmentService,
		DashboardService:  dashboardService,
		Wallet:            wallet,
		AuthSettings:      authSettings,
		DBContext:         dbContext,
	}
}

// NewTestWallet generates a key and returns it with its lower-case address
func NewTestWallet(t *testing.T, ts *TestServices) (*secp256k1.PrivateKey, string) {
	t.Helper()

	key, err := ts.Wallet.GenerateKey()
	require.NoError(t, err)
	return key, cryptography.PublicKeyToAddress(key.PubKey())
}

// SignInTestUser runs the complete wallet sign-in for a fresh key
func SignInTestUser(t *testing.T, ts *TestServices) *auth.Session {
	t.Helper()

	ctx := context.Background()
	key, address := NewTestWallet(t, ts)
	challenge, err := ts.AuthService.Challenge(ctx, address)
	require.NoError(t, err)
	signature, err := ts.Wallet.Sign([]byte(challenge.Message), key)
	require.NoError(t, err)
	session, err := ts.AuthService.SignIn(ctx, address, challenge.Message, signature)
	require.NoError(t, err)
	return session
}

// TestInvoiceInput returns a valid one item invoice request due in a week
func TestInvoiceInput(unitPrice int64) invoices.InvoiceInput {
	now := time.Now().UTC()
	return invoices.InvoiceInput{
		RecipientName:    "Acme Corp",
		RecipientAddress: persistence.TestRecipientAddress,
		Currency:         TestCurrency,
		ChainID:          1,
		IssueDate:        now,
		DueDate:          now.Add(7 * 24 * time.Hour),
		Items: []invoices.LineItemInput{
			{Description: "Consulting", Quantity: 1, UnitPrice: unitPrice},
		},
	}
}
