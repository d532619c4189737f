package v1

import (
	"net/http"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"

	"github.com/gin-gonic/gin"
)

// PaymentHandler defines the interface for handling invoice payments
type PaymentHandler interface {
	Record(ctx *gin.Context)
	List(ctx *gin.Context)
}

type paymentHandler struct {
	paymentService invoices.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService invoices.PaymentService) PaymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

// Record handles the POST request reporting an on-chain payment
// @Summary Record payment
// @Description Adds the amount to the invoice, which becomes partially_paid or paid.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param requestBody body PaymentRequest true "Payment"
// @Success 201 {object} RecordPaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{id}/payments [post]
func (handler *paymentHandler) Record(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	var request PaymentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid payment data", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "validation failed", err)
		return
	}

	payment, invoice, err := handler.paymentService.Record(ctx.Request.Context(), user.ID, ctx.Param("id"), request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, RecordPaymentResponse{
		Payment: newPaymentResponse(payment),
		Invoice: newInvoiceResponse(invoice, clock()),
	})
}

// List handles the GET request listing the payments of an invoice
// @Summary List payments
// @Tags Payment
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {array} PaymentResponse
// @Failure 404 {object} ErrorResponse
// @Router /invoices/{id}/payments [get]
func (handler *paymentHandler) List(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	payments, err := handler.paymentService.List(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	listResponse := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		listResponse = append(listResponse, newPaymentResponse(payment))
	}
	ctx.JSON(http.StatusOK, listResponse)
}
