package v1

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/dashboard"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
)

// ChallengeResponse is the sign-in challenge a wallet has to sign
type ChallengeResponse struct {
	Address   string    `json:"address"`
	Nonce     string    `json:"nonce"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse carries the bearer token of a successful sign-in
type SessionResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse describes a wallet user
type UserResponse struct {
	ID            string     `json:"id"`
	WalletAddress string     `json:"wallet_address"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// ProfileResponse describes the profile of a user
type ProfileResponse struct {
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Company     string    `json:"company"`
	Bio         string    `json:"bio"`
	HasAvatar   bool      `json:"has_avatar"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MeResponse is the authenticated user together with the profile
type MeResponse struct {
	User    UserResponse    `json:"user"`
	Profile ProfileResponse `json:"profile"`
}

// ContactResponse describes a contact
type ContactResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	WalletAddress string    `json:"wallet_address"`
	Company       string    `json:"company"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LineItemResponse is one invoice position
type LineItemResponse struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Amount      int64  `json:"amount"`
}

// InvoiceResponse describes an invoice. Status is the effective status, so open
// invoices past their due date are reported as overdue.
type InvoiceResponse struct {
	ID               string             `json:"id"`
	Number           string             `json:"number"`
	IssuerAddress    string             `json:"issuer_address"`
	ContactID        *string            `json:"contact_id,omitempty"`
	RecipientName    string             `json:"recipient_name"`
	RecipientEmail   string             `json:"recipient_email"`
	RecipientAddress string             `json:"recipient_address"`
	Currency         string             `json:"currency"`
	ChainID          int64              `json:"chain_id"`
	Status           invoices.Status    `json:"status"`
	IssueDate        string             `json:"issue_date"`
	DueDate          string             `json:"due_date"`
	Memo             string             `json:"memo"`
	Items            []LineItemResponse `json:"items"`
	Subtotal         int64              `json:"subtotal"`
	TaxRateBps       int                `json:"tax_rate_bps"`
	Tax              int64              `json:"tax"`
	Total            int64              `json:"total"`
	AmountPaid       int64              `json:"amount_paid"`
	Outstanding      int64              `json:"outstanding"`
	Hash             *string            `json:"hash,omitempty"`
	HashedAt         *time.Time         `json:"hashed_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// PaymentResponse describes a recorded payment
type PaymentResponse struct {
	ID           string    `json:"id"`
	InvoiceID    string    `json:"invoice_id"`
	PayerAddress string    `json:"payer_address"`
	Amount       int64     `json:"amount"`
	TxHash       string    `json:"tx_hash"`
	ChainID      int64     `json:"chain_id"`
	PaidAt       time.Time `json:"paid_at"`
}

// RecordPaymentResponse returns the payment and the invoice it settled
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

// StreamResponse describes a payment stream evaluated at the time of the request
type StreamResponse struct {
	ID               string                `json:"id"`
	InvoiceID        string                `json:"invoice_id"`
	SenderAddress    string                `json:"sender_address"`
	RecipientAddress string                `json:"recipient_address"`
	RatePerSecond    int64                 `json:"rate_per_second"`
	StartTime        time.Time             `json:"start_time"`
	StopTime         time.Time             `json:"stop_time"`
	Status           invoices.StreamStatus `json:"status"`
	Deposit          int64                 `json:"deposit"`
	StreamedAmount   int64                 `json:"streamed_amount"`
	CancelledAt      *time.Time            `json:"cancelled_at,omitempty"`
}

// CommitmentResponse carries the stored commitment of an invoice
type CommitmentResponse struct {
	InvoiceID string     `json:"invoice_id"`
	Hash      *string    `json:"hash"`
	HashedAt  *time.Time `json:"hashed_at"`
}

// VerificationResponse is the outcome of a commitment check
type VerificationResponse struct {
	Valid    bool    `json:"valid"`
	Expected string  `json:"expected"`
	Stored   *string `json:"stored,omitempty"`
}

// StatsResponse is the dashboard summary
type StatsResponse struct {
	InvoiceCount   int64                     `json:"invoice_count"`
	StatusCounts   map[invoices.Status]int64 `json:"status_counts"`
	TotalInvoiced  int64                     `json:"total_invoiced"`
	TotalReceived  int64                     `json:"total_received"`
	Outstanding    int64                     `json:"outstanding"`
	OverdueAmount  int64                     `json:"overdue_amount"`
	ContactCount   int64                     `json:"contact_count"`
	ActiveStreams  int64                     `json:"active_streams"`
	StreamedAmount int64                     `json:"streamed_amount"`
	Monthly        []MonthlyAmountResponse   `json:"monthly"`
	TopRecipients  []RecipientTotalResponse  `json:"top_recipients"`
	GeneratedAt    time.Time                 `json:"generated_at"`
}

// MonthlyAmountResponse is the amount received in one month, formatted YYYY-MM
type MonthlyAmountResponse struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
}

// RecipientTotalResponse ranks a recipient by invoiced amount
type RecipientTotalResponse struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	ContactID    *string `json:"contact_id,omitempty"`
	InvoiceCount int64   `json:"invoice_count"`
	Invoiced     int64   `json:"invoiced"`
}

// HealthResponse is returned by the liveness probe
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func newChallengeResponse(c *auth.Challenge) ChallengeResponse {
	return ChallengeResponse{
		Address:   c.Address,
		Nonce:     c.Nonce,
		Message:   c.Message,
		ExpiresAt: c.ExpiresAt,
	}
}

func newUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		WalletAddress: u.WalletAddress,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}

func newProfileResponse(p *users.Profile) ProfileResponse {
	return ProfileResponse{
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Company:     p.Company,
		Bio:         p.Bio,
		HasAvatar:   p.HasAvatar(),
		UpdatedAt:   p.UpdatedAt,
	}
}

func newContactResponse(c *contacts.Contact) ContactResponse {
	return ContactResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		WalletAddress: c.WalletAddress,
		Company:       c.Company,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func newInvoiceResponse(inv *invoices.Invoice, now time.Time) InvoiceResponse {
	items := make([]LineItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, LineItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}
	return InvoiceResponse{
		ID:               inv.ID,
		Number:           inv.Number,
		IssuerAddress:    inv.IssuerAddress,
		ContactID:        inv.ContactID,
		RecipientName:    inv.RecipientName,
		RecipientEmail:   inv.RecipientEmail,
		RecipientAddress: inv.RecipientAddress,
		Currency:         inv.Currency,
		ChainID:          inv.ChainID,
		Status:           inv.EffectiveStatus(now),
		IssueDate:        inv.IssueDate.UTC().Format(dateLayout),
		DueDate:          inv.DueDate.UTC().Format(dateLayout),
		Memo:             inv.Memo,
		Items:            items,
		Subtotal:         inv.Subtotal,
		TaxRateBps:       inv.TaxRateBps,
		Tax:              inv.Tax,
		Total:            inv.Total,
		AmountPaid:       inv.AmountPaid,
		Outstanding:      inv.Outstanding(),
		Hash:             inv.Hash,
		HashedAt:         inv.HashedAt,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}

func newPaymentResponse(p *invoices.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		InvoiceID:    p.InvoiceID,
		PayerAddress: p.PayerAddress,
		Amount:       p.Amount,
		TxHash:       p.TxHash,
		ChainID:      p.ChainID,
		PaidAt:       p.PaidAt,
	}
}

func newStreamResponse(s *invoices.Stream, now time.Time) StreamResponse {
	return StreamResponse{
		ID:               s.ID,
		InvoiceID:        s.InvoiceID,
		SenderAddress:    s.SenderAddress,
		RecipientAddress: s.RecipientAddress,
		RatePerSecond:    s.RatePerSecond,
		StartTime:        s.StartTime,
		StopTime:         s.StopTime,
		Status:           s.EffectiveStatus(now),
		Deposit:          s.Deposit(),
		StreamedAmount:   s.StreamedAmount(now),
		CancelledAt:      s.CancelledAt,
	}
}

func newStatsResponse(s *dashboard.Stats) StatsResponse {
	monthly := make([]MonthlyAmountResponse, 0, len(s.Monthly))
	for _, m := range s.Monthly {
		monthly = append(monthly, MonthlyAmountResponse{Month: m.Month, Amount: m.Amount})
	}
	top := make([]RecipientTotalResponse, 0, len(s.TopRecipients))
	for _, r := range s.TopRecipients {
		top = append(top, RecipientTotalResponse{
			Name:         r.Name,
			Address:      r.Address,
			ContactID:    r.ContactID,
			InvoiceCount: r.InvoiceCount,
			Invoiced:     r.Invoiced,
		})
	}
	return StatsResponse{
		InvoiceCount:   s.InvoiceCount,
		StatusCounts:   s.StatusCounts,
		TotalInvoiced:  s.TotalInvoiced,
		TotalReceived:  s.TotalReceived,
		Outstanding:    s.Outstanding,
		OverdueAmount:  s.OverdueAmount,
		ContactCount:   s.ContactCount,
		ActiveStreams:  s.ActiveStreams,
		StreamedAmount: s.StreamedAmount,
		Monthly:        monthly,
		TopRecipients:  top,
		GeneratedAt:    s.GeneratedAt,
	}
}
