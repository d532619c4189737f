package pdf

import (
	"strings"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"

	"github.com/gosimple/slug"
)

// ContentType of rendered documents.
const ContentType = "application/pdf"

// FileName builds the attachment name for an invoice, e.g. invoice-inv-000042-acme-corp.pdf.
func FileName(inv *invoices.Invoice) string {
	parts := []string{"invoice", slug.Make(inv.Number)}
	if recipient := slug.Make(inv.RecipientName); recipient != "" {
		parts = append(parts, recipient)
	}
	name := strings.Join(parts, "-")
	if len(name) > 96 {
		name = strings.TrimRight(name[:96], "-")
	}
	return name + ".pdf"
}
