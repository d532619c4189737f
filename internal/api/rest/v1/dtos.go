package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// dateLayout is the wire format of calendar dates such as issue and due dates
const dateLayout = "2006-01-02"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// SignInRequest carries a signed sign-in challenge
type SignInRequest struct {
	Address   string `json:"address" validate:"required"`
	Message   string `json:"message" validate:"required,max=2048"`
	Signature string `json:"signature" validate:"required,max=256"`
}

// Validate for validating SignInRequest struct
func (r *SignInRequest) Validate() error {
	return validators.Struct(r)
}

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"max=100"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	Company     string `json:"company" validate:"max=150"`
	Bio         string `json:"bio" validate:"max=1000"`
}

// Validate for validating UpdateProfileRequest struct
func (r *UpdateProfileRequest) Validate() error {
	return validators.Struct(r)
}

// ToUpdate converts the request into a users.ProfileUpdate
func (r *UpdateProfileRequest) ToUpdate() users.ProfileUpdate {
	return users.ProfileUpdate{
		DisplayName: r.DisplayName,
		Email:       r.Email,
		Company:     r.Company,
		Bio:         r.Bio,
	}
}

// AvatarCropForm holds the optional crop rectangle sent next to an avatar upload
type AvatarCropForm struct {
	X      *int `form:"x"`
	Y      *int `form:"y"`
	Width  *int `form:"width"`
	Height *int `form:"height"`
}

// ToCropRect returns nil when no crop was requested. A partial rectangle is rejected.
func (f *AvatarCropForm) ToCropRect() (*users.CropRect, error) {
	set := 0
	for _, v := range []*int{f.X, f.Y, f.Width, f.Height} {
		if v != nil {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case 4:
		return &users.CropRect{X: *f.X, Y: *f.Y, Width: *f.Width, Height: *f.Height}, nil
	default:
		return nil, fmt.Errorf("%w: crop needs x, y, width and height", apperr.ErrValidation)
	}
}

// ContactRequest carries the writable contact fields
type ContactRequest struct {
	Name          string `json:"name" validate:"required,max=150"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	WalletAddress string `json:"wallet_address" validate:"omitempty,eth_addr"`
	Company       string `json:"company" validate:"max=150"`
	Notes         string `json:"notes" validate:"max=2000"`
}

// Validate for validating ContactRequest struct
func (r *ContactRequest) Validate() error {
	return validators.Struct(r)
}

// ToInput converts the request into a contacts.ContactInput
func (r *ContactRequest) ToInput() contacts.ContactInput {
	return contacts.ContactInput{
		Name:          r.Name,
		Email:         r.Email,
		WalletAddress: r.WalletAddress,
		Company:       r.Company,
		Notes:         r.Notes,
	}
}

// LineItemRequest is one invoice position; unit prices are minor units
type LineItemRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	Quantity    int64  `json:"quantity" validate:"min=1,max=1000000000000"`
	UnitPrice   int64  `json:"unit_price" validate:"min=0,max=1000000000000"`
}

// InvoiceRequest is the body of invoice create and update requests
type InvoiceRequest struct {
	ContactID        *string           `json:"contact_id" validate:"omitempty,uuid4"`
	RecipientName    string            `json:"recipient_name" validate:"max=150"`
	RecipientEmail   string            `json:"recipient_email" validate:"omitempty,email,max=255"`
	RecipientAddress string            `json:"recipient_address" validate:"omitempty,eth_addr"`
	Currency         string            `json:"currency" validate:"required,alphanum,min=3,max=10"`
	ChainID          int64             `json:"chain_id" validate:"min=0"`
	IssueDate        string            `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate          string            `json:"due_date" validate:"required,datetime=2006-01-02"`
	Memo             string            `json:"memo" validate:"max=2000"`
	TaxRateBps       int               `json:"tax_rate_bps" validate:"min=0,max=10000"`
	Items            []LineItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
	Send             bool              `json:"send"`
}

// Validate for validating InvoiceRequest struct
func (r *InvoiceRequest) Validate() error {
	return validators.Struct(r)
}

// ToInput converts a validated request into an invoices.InvoiceInput
func (r *InvoiceRequest) ToInput() (invoices.InvoiceInput, error) {
	issueDate, err := time.Parse(dateLayout, r.IssueDate)
	if err != nil {
		return invoices.InvoiceInput{}, fmt.Errorf("%w: invalid issue date", apperr.ErrValidation)
	}
	dueDate, err := time.Parse(dateLayout, r.DueDate)
	if err != nil {
		return invoices.InvoiceInput{}, fmt.Errorf("%w: invalid due date", apperr.ErrValidation)
	}

	items := make([]invoices.LineItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, invoices.LineItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return invoices.InvoiceInput{
		ContactID:        r.ContactID,
		RecipientName:    r.RecipientName,
		RecipientEmail:   r.RecipientEmail,
		RecipientAddress: r.RecipientAddress,
		Currency:         strings.ToUpper(r.Currency),
		ChainID:          r.ChainID,
		IssueDate:        issueDate,
		DueDate:          dueDate,
		Memo:             r.Memo,
		TaxRateBps:       r.TaxRateBps,
		Items:            items,
		Send:             r.Send,
	}, nil
}

// PaymentRequest reports an on-chain payment of an invoice. PaidAt defaults to now.
type PaymentRequest struct {
	PayerAddress string     `json:"payer_address" validate:"required,eth_addr"`
	Amount       int64      `json:"amount" validate:"min=1,max=1000000000000"`
	TxHash       string     `json:"tx_hash" validate:"required,txhash"`
	ChainID      int64      `json:"chain_id" validate:"min=0"`
	PaidAt       *time.Time `json:"paid_at"`
}

// Validate for validating PaymentRequest struct
func (r *PaymentRequest) Validate() error {
	return validators.Struct(r)
}

// ToInput converts the request into an invoices.PaymentInput
func (r *PaymentRequest) ToInput() invoices.PaymentInput {
	input := invoices.PaymentInput{
		PayerAddress: r.PayerAddress,
		Amount:       r.Amount,
		TxHash:       r.TxHash,
		ChainID:      r.ChainID,
	}
	if r.PaidAt != nil {
		input.PaidAt = *r.PaidAt
	}
	return input
}

// StreamRequest opens a payment stream. StartTime defaults to now and the
// recipient defaults to the issuer wallet.
type StreamRequest struct {
	SenderAddress    string     `json:"sender_address" validate:"required,eth_addr"`
	RecipientAddress string     `json:"recipient_address" validate:"omitempty,eth_addr"`
	RatePerSecond    int64      `json:"rate_per_second" validate:"min=1,max=1000000000000"`
	StartTime        *time.Time `json:"start_time"`
	StopTime         time.Time  `json:"stop_time" validate:"required"`
}

// Validate for validating StreamRequest struct
func (r *StreamRequest) Validate() error {
	return validators.Struct(r)
}

// ToInput converts the request into an invoices.StreamInput
func (r *StreamRequest) ToInput() invoices.StreamInput {
	input := invoices.StreamInput{
		SenderAddress:    r.SenderAddress,
		RecipientAddress: r.RecipientAddress,
		RatePerSecond:    r.RatePerSecond,
		StopTime:         r.StopTime,
	}
	if r.StartTime != nil {
		input.StartTime = *r.StartTime
	}
	return input
}

// VerifyHashRequest carries the commitment to check. An empty hash checks the stored one.
type VerifyHashRequest struct {
	Hash string `json:"hash" validate:"omitempty,hexadecimal,max=66"`
}

// Validate for validating VerifyHashRequest struct
func (r *VerifyHashRequest) Validate() error {
	return validators.Struct(r)
}
