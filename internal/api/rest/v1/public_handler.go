package v1

import (
	"net/http"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the payer view of sent invoices without authentication
type PublicHandler interface {
	GetInvoice(ctx *gin.Context)
	DownloadPDF(ctx *gin.Context)
}

type publicHandler struct {
	invoiceService  invoices.InvoiceService
	documentService invoices.DocumentService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(invoiceService invoices.InvoiceService, documentService invoices.DocumentService) PublicHandler {
	return &publicHandler{
		invoiceService:  invoiceService,
		documentService: documentService,
	}
}

// GetInvoice handles the GET request of the payer view
// @Summary Public invoice
// @Description Drafts are reported as not found.
// @Tags Public
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /public/invoices/{id} [get]
func (handler *publicHandler) GetInvoice(ctx *gin.Context) {
	invoice, err := handler.invoiceService.GetPublic(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceResponse(invoice, clock()))
}

// DownloadPDF handles the GET request of the payer PDF
// @Summary Public invoice PDF
// @Tags Public
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /public/invoices/{id}/pdf [get]
func (handler *publicHandler) DownloadPDF(ctx *gin.Context) {
	doc, err := handler.documentService.RenderPublicPDF(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	writeDocument(ctx, doc)
}
