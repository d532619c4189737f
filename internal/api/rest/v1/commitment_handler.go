package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"

	"github.com/gin-gonic/gin"
)

// CommitmentHandler defines the interface for the invoice hash endpoints
type CommitmentHandler interface {
	Commit(ctx *gin.Context)
	Verify(ctx *gin.Context)
}

type commitmentHandler struct {
	commitmentService invoices.CommitmentService
}

// NewCommitmentHandler creates a new CommitmentHandler
func NewCommitmentHandler(commitmentService invoices.CommitmentService) CommitmentHandler {
	return &commitmentHandler{commitmentService: commitmentService}
}

// Commit handles the POST request computing and storing the invoice commitment
// @Summary Compute invoice commitment
// @Description Poseidon hash over issuer, recipient, total, currency, due date and number.
// @Tags Hash
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} CommitmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /invoices/{id}/hash [post]
func (handler *commitmentHandler) Commit(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	invoice, err := handler.commitmentService.Commit(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, CommitmentResponse{
		InvoiceID: invoice.ID,
		Hash:      invoice.Hash,
		HashedAt:  invoice.HashedAt,
	})
}

// Verify handles the POST request checking a commitment against the current invoice
// @Summary Verify invoice commitment
// @Description An empty body checks the stored commitment.
// @Tags Hash
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param requestBody body VerifyHashRequest false "Commitment"
// @Success 200 {object} VerificationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /invoices/{id}/hash/verify [post]
func (handler *commitmentHandler) Verify(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	var request VerifyHashRequest
	if ctx.Request.Body != nil && ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
			respondBadRequest(ctx, "invalid hash data", err)
			return
		}
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "validation failed", err)
		return
	}

	verification, err := handler.commitmentService.Verify(ctx.Request.Context(), user.ID, ctx.Param("id"), request.Hash)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, VerificationResponse{
		Valid:    verification.Valid,
		Expected: verification.Expected,
		Stored:   verification.Stored,
	})
}
