package invoices

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// Payment is an on-chain transfer settling (part of) an invoice.
type Payment struct {
	ID           string    `validate:"required,uuid4"`
	InvoiceID    string    `validate:"required,uuid4"`
	PayerAddress string    `validate:"required,eth_addr"`
	Amount       int64     `validate:"min=1,max=1000000000000"`
	TxHash       string    `validate:"required,txhash"`
	ChainID      int64     `validate:"min=0"`
	PaidAt       time.Time `validate:"required"`
	CreatedAt    time.Time `validate:"required"`
}

// Validate for validating Payment struct
func (p *Payment) Validate() error {
	return validators.Struct(p)
}
