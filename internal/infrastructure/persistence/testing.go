//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestIssuerAddress    = "0x52908400098527886e0f7030069857d2e4169ee7"
	TestRecipientAddress = "0x8617e340b3d01fa5f11f306f4090fd50e238070d"
	TestCurrency         = "USDC"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB          *gorm.DB
	UserRepo    users.UserRepository
	ProfileRepo users.ProfileRepository
	NonceRepo   auth.NonceRepository
	ContactRepo contacts.ContactRepository
	InvoiceRepo invoices.InvoiceRepository
	PaymentRepo invoices.PaymentRepository
	StreamRepo  invoices.StreamRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)

	userRepo, err := NewGormUserRepository(db, log)
	require.NoError(t, err)
	profileRepo, err := NewGormProfileRepository(db, log)
	require.NoError(t, err)
	nonceRepo, err := NewGormNonceRepository(db, log)
	require.NoError(t, err)
	contactRepo, err := NewGormContactRepository(db, log)
	require.NoError(t, err)
	invoiceRepo, err := NewGormInvoiceRepository(db, log)
	require.NoError(t, err)
	paymentRepo, err := NewGormPaymentRepository(db, log)
	require.NoError(t, err)
	streamRepo, err := NewGormStreamRepository(db, log)
	require.NoError(t, err)

	return &TestContext{
		DB:          db,
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		NonceRepo:   nonceRepo,
		ContactRepo: contactRepo,
		InvoiceRepo: invoiceRepo,
		PaymentRepo: paymentRepo,
		StreamRepo:  streamRepo,
	}
}

// CreateTestUser persists a user with an empty profile
func CreateTestUser(t *testing.T, tc *TestContext, address string) *users.User {
	t.Helper()

	now := time.Now().UTC()
	user := &users.User{
		ID:            uuid.NewString(),
		WalletAddress: users.NormalizeAddress(address),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	profile := &users.Profile{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, tc.UserRepo.Create(context.Background(), user, profile))
	return user
}

// CreateTestContact builds an unsaved contact for owner
func CreateTestContact(t *testing.T, ownerID, name, wallet string) *contacts.Contact {
	t.Helper()

	now := time.Now().UTC()
	return &contacts.Contact{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          name,
		WalletAddress: wallet,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CreateTestInvoice builds an unsaved invoice with one line item of the given unit price
func CreateTestInvoice(t *testing.T, issuer *users.User, status invoices.Status, unitPrice int64, due time.Time) *invoices.Invoice {
	t.Helper()

	now := time.Now().UTC()
	id := uuid.NewString()
	inv := &invoices.Invoice{
		ID:               id,
		IssuerID:         issuer.ID,
		IssuerAddress:    issuer.WalletAddress,
		RecipientName:    "Acme Corp",
		RecipientAddress: TestRecipientAddress,
		Currency:         TestCurrency,
		Status:           status,
		IssueDate:        due.Add(-30 * 24 * time.Hour),
		DueDate:          due,
		Items: []invoices.LineItem{
			{ID: uuid.NewString(), InvoiceID: id, Description: "Consulting", Quantity: 1, UnitPrice: unitPrice},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, inv.Recalculate())
	return inv
}

// CreateTestPayment builds an unsaved payment for invoiceID
func CreateTestPayment(t *testing.T, invoiceID string, amount int64) *invoices.Payment {
	t.Helper()

	now := time.Now().UTC()
	return &invoices.Payment{
		ID:           uuid.NewString(),
		InvoiceID:    invoiceID,
		PayerAddress: TestRecipientAddress,
		Amount:       amount,
		TxHash:       "0x" + strings.Repeat(strings.ReplaceAll(uuid.NewString(), "-", ""), 2),
		PaidAt:       now,
		CreatedAt:    now,
	}
}
