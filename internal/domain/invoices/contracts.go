package invoices

import (
	"context"
	"time"
)

// InvoiceService manages the invoices of an issuer.
// Invoices of other issuers are reported as not found.
type InvoiceService interface {
	Create(ctx context.Context, issuerID string, input InvoiceInput) (*Invoice, error)
	List(ctx context.Context, query *InvoiceQuery) ([]*Invoice, error)
	GetByID(ctx context.Context, issuerID, invoiceID string) (*Invoice, error)
	Update(ctx context.Context, issuerID, invoiceID string, input InvoiceInput) (*Invoice, error)
	DeleteByID(ctx context.Context, issuerID, invoiceID string) error
	Send(ctx context.Context, issuerID, invoiceID string) (*Invoice, error)
	Cancel(ctx context.Context, issuerID, invoiceID string) (*Invoice, error)

	// GetPublic returns a non-draft invoice to an unauthenticated payer.
	GetPublic(ctx context.Context, invoiceID string) (*Invoice, error)
}

// DocumentService renders invoices as downloadable documents.
type DocumentService interface {
	RenderPDF(ctx context.Context, issuerID, invoiceID string) (*RenderedDocument, error)
	RenderPublicPDF(ctx context.Context, invoiceID string) (*RenderedDocument, error)
}

// PaymentService records on-chain payments.
type PaymentService interface {
	// Record stores the payment and advances the invoice to paid or partially paid.
	Record(ctx context.Context, issuerID, invoiceID string, input PaymentInput) (*Payment, *Invoice, error)
	List(ctx context.Context, issuerID, invoiceID string) ([]*Payment, error)
}

// StreamService manages payment streams attached to invoices.
type StreamService interface {
	Create(ctx context.Context, issuerID, invoiceID string, input StreamInput) (*Stream, error)
	List(ctx context.Context, issuerID, invoiceID string) ([]*Stream, error)
	Cancel(ctx context.Context, issuerID, streamID string) (*Stream, error)
}

// CommitmentService computes and checks invoice commitment hashes.
type CommitmentService interface {
	Commit(ctx context.Context, issuerID, invoiceID string) (*Invoice, error)
	Verify(ctx context.Context, issuerID, invoiceID, hash string) (*Verification, error)
}

// InvoiceRepository defines the interface for Invoice-related operations
type InvoiceRepository interface {
	// Create assigns the next per-issuer sequence and number, then stores invoice and items.
	Create(ctx context.Context, invoice *Invoice) error
	List(ctx context.Context, query *InvoiceQuery) ([]*Invoice, error)
	GetByID(ctx context.Context, invoiceID string) (*Invoice, error)
	// UpdateByID stores the editable fields and replaces the line items of a draft or
	// pending invoice without payments. Other invoices fail with apperr.ErrInvalidState.
	UpdateByID(ctx context.Context, invoice *Invoice) error
	// Transition moves an invoice without payments from one status to another.
	Transition(ctx context.Context, invoiceID string, from, to Status, at time.Time) error
	// SetCommitment stores the commitment hash of an invoice.
	SetCommitment(ctx context.Context, invoiceID, hash string, at time.Time) error
	DeleteByID(ctx context.Context, invoiceID string) error
}

// PaymentRepository defines the interface for Payment-related operations
type PaymentRepository interface {
	// Record stores the payment and adds its amount to the invoice in one transaction.
	// It returns the updated invoice.
	Record(ctx context.Context, payment *Payment) (*Invoice, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*Payment, error)
	ListByIssuer(ctx context.Context, issuerID string, since time.Time) ([]*Payment, error)
}

// StreamRepository defines the interface for Stream-related operations
type StreamRepository interface {
	Create(ctx context.Context, stream *Stream) error
	GetByID(ctx context.Context, streamID string) (*Stream, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*Stream, error)
	ListByIssuer(ctx context.Context, issuerID string) ([]*Stream, error)
	UpdateByID(ctx context.Context, stream *Stream) error
}

// Hasher produces a commitment over invoice fields.
type Hasher interface {
	Commit(fields CommitmentFields) (string, error)
}

// Issuer is the sender block printed on invoice documents.
type Issuer struct {
	WalletAddress string
	DisplayName   string
	Company       string
	Email         string
}

// Document bundles everything a renderer prints.
type Document struct {
	Invoice     *Invoice
	Issuer      Issuer
	Payments    []*Payment
	GeneratedAt time.Time
}

// RenderedDocument is a rendered file ready for download.
type RenderedDocument struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Renderer turns a Document into a downloadable file.
type Renderer interface {
	Render(doc *Document) (*RenderedDocument, error)
}
