//go:build unit
// +build unit

package v1

import (
	"context"
	"io"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/dashboard"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Challenge(ctx context.Context, address string) (*auth.Challenge, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Challenge), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, address, message, signature string) (*auth.Session, error) {
	args := m.Called(ctx, address, message, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*users.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*users.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Profile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, userID string, update users.ProfileUpdate) (*users.Profile, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Profile), args.Error(1)
}

func (m *MockProfileService) UploadAvatar(ctx context.Context, userID string, image io.Reader, crop *users.CropRect) (*users.Profile, error) {
	args := m.Called(ctx, userID, image, crop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Profile), args.Error(1)
}

func (m *MockProfileService) DownloadAvatar(ctx context.Context, userID string) (*users.Avatar, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Avatar), args.Error(1)
}

// MockContactService is a mock implementation of ContactService
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Create(ctx context.Context, ownerID string, input contacts.ContactInput) (*contacts.Contact, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contacts.Contact), args.Error(1)
}

func (m *MockContactService) List(ctx context.Context, query *contacts.ContactQuery) ([]*contacts.Contact, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contacts.Contact), args.Error(1)
}

func (m *MockContactService) GetByID(ctx context.Context, ownerID, contactID string) (*contacts.Contact, error) {
	args := m.Called(ctx, ownerID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contacts.Contact), args.Error(1)
}

func (m *MockContactService) Update(ctx context.Context, ownerID, contactID string, input contacts.ContactInput) (*contacts.Contact, error) {
	args := m.Called(ctx, ownerID, contactID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contacts.Contact), args.Error(1)
}

func (m *MockContactService) DeleteByID(ctx context.Context, ownerID, contactID string) error {
	args := m.Called(ctx, ownerID, contactID)
	return args.Error(0)
}

// MockInvoiceService is a mock implementation of InvoiceService
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoice(args mock.Arguments) (*invoices.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoices.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Create(ctx context.Context, issuerID string, input invoices.InvoiceInput) (*invoices.Invoice, error) {
	return m.invoice(m.Called(ctx, issuerID, input))
}

func (m *MockInvoiceService) List(ctx context.Context, query *invoices.InvoiceQuery) ([]*invoices.Invoice, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoices.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, issuerID, invoiceID string) (*invoices.Invoice, error) {
	return m.invoice(m.Called(ctx, issuerID, invoiceID))
}

func (m *MockInvoiceService) Update(ctx context.Context, issuerID, invoiceID string, input invoices.InvoiceInput) (*invoices.Invoice, error) {
	return m.invoice(m.Called(ctx, issuerID, invoiceID, input))
}

func (m *MockInvoiceService) DeleteByID(ctx context.Context, issuerID, invoiceID string) error {
	args := m.Called(ctx, issuerID, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceService) Send(ctx context.Context, issuerID, invoiceID string) (*invoices.Invoice, error) {
	return m.invoice(m.Called(ctx, issuerID, invoiceID))
}

func (m *MockInvoiceService) Cancel(ctx context.Context, issuerID, invoiceID string) (*invoices.Invoice, error) {
	return m.invoice(m.Called(ctx, issuerID, invoiceID))
}

func (m *MockInvoiceService) GetPublic(ctx context.Context, invoiceID string) (*invoices.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID))
}

// MockDocumentService is a mock implementation of DocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) RenderPDF(ctx context.Context, issuerID, invoiceID string) (*invoices.RenderedDocument, error) {
	args := m.Called(ctx, issuerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoices.RenderedDocument), args.Error(1)
}

func (m *MockDocumentService) RenderPublicPDF(ctx context.Context, invoiceID string) (*invoices.RenderedDocument, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoices.RenderedDocument), args.Error(1)
}

// MockPaymentService is a mock implementation of PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Record(ctx context.Context, issuerID, invoiceID string, input invoices.PaymentInput) (*invoices.Payment, *invoices.Invoice, error) {
	args := m.Called(ctx, issuerID, invoiceID, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*invoices.Payment), args.Get(1).(*invoices.Invoice), args.Error(2)
}

func (m *MockPaymentService) List(ctx context.Context, issuerID, invoiceID string) ([]*invoices.Payment, error) {
	args := m.Called(ctx, issuerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoices.Payment), args.Error(1)
}

// MockStreamService is a mock implementation of StreamService
type MockStreamService struct {
	mock.Mock
}

func (m *MockStreamService) Create(ctx context.Context, issuerID, invoiceID string, input invoices.StreamInput) (*invoices.Stream, error) {
	args := m.Called(ctx, issuerID, invoiceID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoices.Stream), args.Error(1)
}

func (m *MockStreamService) List(ctx context.Context, issuerID, invoiceID string) ([]*invoices.Stream, error) {
	args := m.Called(ctx, issuerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoices.Stream), args.Error(1)
}

func (m *MockStreamService) Cancel(ctx context.Context, issuerID, streamID string) (*invoices.Stream, error) {
	args := m.Called(ctx, issuerID, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoices.Stream), args.Error(1)
}

// MockCommitmentService is a mock implementation of CommitmentService
type MockCommitmentService struct {
	mock.Mock
}

func (m *MockCommitmentService) Commit(ctx context.Context, issuerID, invoiceID string) (*invoices.Invoice, error) {
	args := m.Called(ctx, issuerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoices.Invoice), args.Error(1)
}

func (m *MockCommitmentService) Verify(ctx context.Context, issuerID, invoiceID, hash string) (*invoices.Verification, error) {
	args := m.Called(ctx, issuerID, invoiceID, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoices.Verification), args.Error(1)
}

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context, query dashboard.StatsQuery) (*dashboard.Stats, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Stats), args.Error(1)
}

// newMockServices returns Services backed by fresh mocks
func newMockServices() (*Services, *mockSet) {
	set := &mockSet{
		auth:       new(MockAuthService),
		profile:    new(MockProfileService),
		contact:    new(MockContactService),
		invoice:    new(MockInvoiceService),
		document:   new(MockDocumentService),
		payment:    new(MockPaymentService),
		stream:     new(MockStreamService),
		commitment: new(MockCommitmentService),
		dashboard:  new(MockDashboardService),
	}
	return &Services{
		Auth:       set.auth,
		Profile:    set.profile,
		Contact:    set.contact,
		Invoice:    set.invoice,
		Document:   set.document,
		Payment:    set.payment,
		Stream:     set.stream,
		Commitment: set.commitment,
		Dashboard:  set.dashboard,
	}, set
}

type mockSet struct {
	auth       *MockAuthService
	profile    *MockProfileService
	contact    *MockContactService
	invoice    *MockInvoiceService
	document   *MockDocumentService
	payment    *MockPaymentService
	stream     *MockStreamService
	commitment *MockCommitmentService
	dashboard  *MockDashboardService
}
