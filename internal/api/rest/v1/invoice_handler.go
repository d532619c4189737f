package v1

import (
	"mime"
	"net/http"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler defines the interface for handling invoice operations
type InvoiceHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Send(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	DownloadPDF(ctx *gin.Context)
}

type invoiceHandler struct {
	invoiceService  invoices.InvoiceService
	documentService invoices.DocumentService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService invoices.InvoiceService, documentService invoices.DocumentService) InvoiceHandler {
	return &invoiceHandler{
		invoiceService:  invoiceService,
		documentService: documentService,
	}
}

// Create handles the POST request creating an invoice
// @Summary Create invoice
// @Description Totals are computed from the line items. With send set the invoice starts pending instead of draft.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param requestBody body InvoiceRequest true "Invoice"
// @Success 201 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Router /invoices [post]
func (handler *invoiceHandler) Create(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	input, ok := bindInvoiceRequest(ctx)
	if !ok {
		return
	}

	invoice, err := handler.invoiceService.Create(ctx.Request.Context(), user.ID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newInvoiceResponse(invoice, clock()))
}

// List handles the GET request listing invoices with optional query parameters
// @Summary List invoices
// @Tags Invoice
// @Produce json
// @Param status query string false "draft, pending, partially_paid, paid, cancelled or overdue"
// @Param contactId query string false "Contact ID"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "created_at, due_date, total or number"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {array} InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Router /invoices [get]
func (handler *invoiceHandler) List(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	query := invoices.NewInvoiceQuery(user.ID)
	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = invoices.Status(status)
	}
	if contactID := ctx.Query("contactId"); len(contactID) > 0 {
		query.ContactID = contactID
	}
	if err := bindPage(ctx, &query.Limit, &query.Offset); err != nil {
		respondError(ctx, err)
		return
	}
	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	list, err := handler.invoiceService.List(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	now := clock()
	listResponse := make([]InvoiceResponse, 0, len(list))
	for _, invoice := range list {
		listResponse = append(listResponse, newInvoiceResponse(invoice, now))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request for one invoice
// @Summary Read invoice
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /invoices/{id} [get]
func (handler *invoiceHandler) GetByID(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	invoice, err := handler.invoiceService.GetByID(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceResponse(invoice, clock()))
}

// Update handles the PUT request replacing an editable invoice
// @Summary Update invoice
// @Description Only draft and pending invoices without payments can be edited.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param requestBody body InvoiceRequest true "Invoice"
// @Success 200 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{id} [put]
func (handler *invoiceHandler) Update(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	input, ok := bindInvoiceRequest(ctx)
	if !ok {
		return
	}

	invoice, err := handler.invoiceService.Update(ctx.Request.Context(), user.ID, ctx.Param("id"), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceResponse(invoice, clock()))
}

// DeleteByID handles the DELETE request of a draft invoice
// @Summary Delete invoice
// @Tags Invoice
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{id} [delete]
func (handler *invoiceHandler) DeleteByID(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	if err := handler.invoiceService.DeleteByID(ctx.Request.Context(), user.ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Send handles the POST request moving a draft invoice to pending
// @Summary Send invoice
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{id}/send [post]
func (handler *invoiceHandler) Send(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	invoice, err := handler.invoiceService.Send(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceResponse(invoice, clock()))
}

// Cancel handles the POST request cancelling an unpaid invoice
// @Summary Cancel invoice
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{id}/cancel [post]
func (handler *invoiceHandler) Cancel(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	invoice, err := handler.invoiceService.Cancel(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newInvoiceResponse(invoice, clock()))
}

// DownloadPDF handles the GET request rendering the invoice as PDF
// @Summary Download invoice PDF
// @Tags Invoice
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /invoices/{id}/pdf [get]
func (handler *invoiceHandler) DownloadPDF(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	doc, err := handler.documentService.RenderPDF(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	writeDocument(ctx, doc)
}

func bindInvoiceRequest(ctx *gin.Context) (invoices.InvoiceInput, bool) {
	var request InvoiceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid invoice data", err)
		return invoices.InvoiceInput{}, false
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "validation failed", err)
		return invoices.InvoiceInput{}, false
	}
	input, err := request.ToInput()
	if err != nil {
		respondError(ctx, err)
		return invoices.InvoiceInput{}, false
	}
	return input, true
}

func writeDocument(ctx *gin.Context, doc *invoices.RenderedDocument) {
	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, doc.ContentType, doc.Content)
}
