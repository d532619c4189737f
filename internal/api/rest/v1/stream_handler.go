package v1

import (
	"net/http"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"

	"github.com/gin-gonic/gin"
)

// StreamHandler defines the interface for handling payment streams
type StreamHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	Cancel(ctx *gin.Context)
}

type streamHandler struct {
	streamService invoices.StreamService
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(streamService invoices.StreamService) StreamHandler {
	return &streamHandler{streamService: streamService}
}

// Create handles the POST request opening a stream on an invoice
// @Summary Create stream
// @Tags Stream
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param requestBody body StreamRequest true "Stream"
// @Success 201 {object} StreamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{id}/streams [post]
func (handler *streamHandler) Create(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	var request StreamRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid stream data", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "validation failed", err)
		return
	}

	stream, err := handler.streamService.Create(ctx.Request.Context(), user.ID, ctx.Param("id"), request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newStreamResponse(stream, clock()))
}

// List handles the GET request listing the streams of an invoice
// @Summary List streams
// @Tags Stream
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {array} StreamResponse
// @Failure 404 {object} ErrorResponse
// @Router /invoices/{id}/streams [get]
func (handler *streamHandler) List(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	streams, err := handler.streamService.List(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	now := clock()
	listResponse := make([]StreamResponse, 0, len(streams))
	for _, stream := range streams {
		listResponse = append(listResponse, newStreamResponse(stream, now))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// Cancel handles the POST request freezing a running stream
// @Summary Cancel stream
// @Tags Stream
// @Produce json
// @Param id path string true "Stream ID"
// @Success 200 {object} StreamResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /streams/{id}/cancel [post]
func (handler *streamHandler) Cancel(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	stream, err := handler.streamService.Cancel(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newStreamResponse(stream, clock()))
}
