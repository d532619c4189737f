// Package pdf renders invoices as PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
	dateLayout = "2006-01-02"
)

// column widths of the items table in mm, summing to the A4 content width
var itemColumns = []float64{95, 20, 35, 40}

type invoiceRenderer struct {
	logger logger.Logger
}

// NewInvoiceRenderer returns an invoices.Renderer producing A4 PDFs with the core fonts.
func NewInvoiceRenderer(logger logger.Logger) invoices.Renderer {
	return &invoiceRenderer{logger: logger}
}

// Render lays out issuer, recipient, items, totals, payments and the commitment hash.
func (r *invoiceRenderer) Render(doc *invoices.Document) (*invoices.RenderedDocument, error) {
	if doc == nil || doc.Invoice == nil {
		return nil, fmt.Errorf("document has no invoice")
	}
	inv := doc.Invoice
	generatedAt := doc.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Invoice "+inv.Number), false)
	pdf.SetCreator("web3-invoicing", false)
	pdf.SetAuthor(tr(issuerName(doc.Issuer)), false)
	pdf.SetCreationDate(generatedAt)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s - page %d - generated %s", inv.Number, pdf.PageNo(), generatedAt.UTC().Format(time.RFC3339)), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// header
	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(120, 10, "INVOICE", "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(0, 10, tr(inv.Number), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, lineHeight, "Status: "+strings.ToUpper(string(inv.EffectiveStatus(generatedAt))), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// parties
	top := pdf.GetY()
	r.partyBlock(pdf, tr, 10, top, "From", []string{
		issuerName(doc.Issuer),
		doc.Issuer.Company,
		doc.Issuer.Email,
		doc.Issuer.WalletAddress,
	})
	r.partyBlock(pdf, tr, 110, top, "Bill to", []string{
		inv.RecipientName,
		inv.RecipientEmail,
		inv.RecipientAddress,
	})
	pdf.SetXY(10, top+lineHeight*5+4)

	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(60, lineHeight, "Issue date: "+inv.IssueDate.UTC().Format(dateLayout), "", 0, "L", false, 0, "")
	pdf.CellFormat(60, lineHeight, "Due date: "+inv.DueDate.UTC().Format(dateLayout), "", 0, "L", false, 0, "")
	chain := "-"
	if inv.ChainID > 0 {
		chain = strconv.FormatInt(inv.ChainID, 10)
	}
	pdf.CellFormat(0, lineHeight, "Chain ID: "+chain, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// items
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, title := range []string{"Description", "Qty", "Unit price", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(itemColumns[i], 8, title, "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(itemColumns[0], 7, tr(truncate(item.Description, 60)), "", 0, "L", false, 0, "")
		pdf.CellFormat(itemColumns[1], 7, strconv.FormatInt(item.Quantity, 10), "", 0, "R", false, 0, "")
		pdf.CellFormat(itemColumns[2], 7, invoices.FormatAmount(item.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(itemColumns[3], 7, invoices.FormatAmount(item.Amount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// totals
	r.totalLine(pdf, "Subtotal", invoices.FormatAmount(inv.Subtotal)+" "+inv.Currency, false)
	r.totalLine(pdf, fmt.Sprintf("Tax (%s%%)", formatBps(inv.TaxRateBps)), invoices.FormatAmount(inv.Tax)+" "+inv.Currency, false)
	r.totalLine(pdf, "Total", invoices.FormatAmount(inv.Total)+" "+inv.Currency, true)
	if inv.AmountPaid > 0 {
		r.totalLine(pdf, "Paid", invoices.FormatAmount(inv.AmountPaid)+" "+inv.Currency, false)
		r.totalLine(pdf, "Outstanding", invoices.FormatAmount(inv.Outstanding())+" "+inv.Currency, true)
	}

	if len(doc.Payments) > 0 {
		pdf.Ln(4)
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(0, lineHeight, "Payments", "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 8)
		for _, p := range doc.Payments {
			line := fmt.Sprintf("%s  %s %s  tx %s", p.PaidAt.UTC().Format(dateLayout), invoices.FormatAmount(p.Amount), inv.Currency, p.TxHash)
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}

	if inv.Memo != "" {
		pdf.Ln(4)
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(0, lineHeight, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(0, 5, tr(inv.Memo), "", "L", false)
	}

	if inv.Hash != nil {
		pdf.Ln(4)
		pdf.SetFont(fontFamily, "B", 9)
		pdf.CellFormat(0, 5, "Poseidon commitment", "", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 8)
		pdf.CellFormat(0, 5, *inv.Hash, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", inv.ID, err)
	}

	r.logger.Info("Rendered invoice PDF", "invoice_id", inv.ID, "bytes", buf.Len())
	return &invoices.RenderedDocument{
		FileName:    FileName(inv),
		ContentType: ContentType,
		Content:     buf.Bytes(),
	}, nil
}

func (r *invoiceRenderer) partyBlock(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, title string, lines []string) {
	pdf.SetXY(x, y)
	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(90, lineHeight, title, "", 2, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	for _, line := range lines {
		if line == "" {
			continue
		}
		pdf.CellFormat(90, lineHeight-1, tr(line), "", 2, "L", false, 0, "")
	}
}

func (r *invoiceRenderer) totalLine(pdf *fpdf.Fpdf, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont(fontFamily, style, 10)
	pdf.CellFormat(itemColumns[0]+itemColumns[1]+itemColumns[2], 7, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(itemColumns[3], 7, value, "", 1, "R", false, 0, "")
}

func issuerName(issuer invoices.Issuer) string {
	if issuer.DisplayName != "" {
		return issuer.DisplayName
	}
	return issuer.WalletAddress
}

func formatBps(bps int) string {
	return strconv.FormatFloat(float64(bps)/100, 'f', -1, 64)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
