package v1

import (
	"errors"
	"net/http"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain sentinel errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the ErrorResponse for err and attaches err to the context for the request log.
// Internal errors are reported without details.
func respondError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)

	status := statusFor(err)
	var errorResponse ErrorResponse
	if status == http.StatusInternalServerError {
		errorResponse.Message = "internal server error"
	} else {
		errorResponse.Message = err.Error()
	}
	ctx.AbortWithStatusJSON(status, errorResponse)
}

// respondBadRequest writes a 400 with the given message prefix
func respondBadRequest(ctx *gin.Context, prefix string, err error) {
	var errorResponse ErrorResponse
	errorResponse.Message = prefix + ": " + err.Error()
	ctx.AbortWithStatusJSON(http.StatusBadRequest, errorResponse)
}
