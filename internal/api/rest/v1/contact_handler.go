package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"

	"github.com/gin-gonic/gin"
)

// ContactHandler defines the interface for handling contact operations
type ContactHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type contactHandler struct {
	contactService contacts.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService contacts.ContactService) ContactHandler {
	return &contactHandler{contactService: contactService}
}

// Create handles the POST request adding a contact
// @Summary Create contact
// @Tags Contact
// @Accept json
// @Produce json
// @Param requestBody body ContactRequest true "Contact"
// @Success 201 {object} ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contacts [post]
func (handler *contactHandler) Create(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	var request ContactRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid contact data", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "validation failed", err)
		return
	}

	contact, err := handler.contactService.Create(ctx.Request.Context(), user.ID, request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newContactResponse(contact))
}

// List handles the GET request listing contacts with optional query parameters
// @Summary List contacts
// @Tags Contact
// @Produce json
// @Param name query string false "Name contains"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "name or created_at"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {array} ContactResponse
// @Failure 400 {object} ErrorResponse
// @Router /contacts [get]
func (handler *contactHandler) List(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	query := contacts.NewContactQuery(user.ID)
	query.Name = ctx.Query("name")
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

	list, err := handler.contactService.List(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	listResponse := make([]ContactResponse, 0, len(list))
	for _, contact := range list {
		listResponse = append(listResponse, newContactResponse(contact))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request for one contact
// @Summary Read contact
// @Tags Contact
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} ContactResponse
// @Failure 404 {object} ErrorResponse
// @Router /contacts/{id} [get]
func (handler *contactHandler) GetByID(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	contact, err := handler.contactService.GetByID(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newContactResponse(contact))
}

// Update handles the PUT request replacing the contact fields
// @Summary Update contact
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param requestBody body ContactRequest true "Contact"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contacts/{id} [put]
func (handler *contactHandler) Update(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	var request ContactRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid contact data", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "validation failed", err)
		return
	}

	contact, err := handler.contactService.Update(ctx.Request.Context(), user.ID, ctx.Param("id"), request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newContactResponse(contact))
}

// DeleteByID handles the DELETE request of a contact
// @Summary Delete contact
// @Tags Contact
// @Param id path string true "Contact ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /contacts/{id} [delete]
func (handler *contactHandler) DeleteByID(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	if err := handler.contactService.DeleteByID(ctx.Request.Context(), user.ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// bindPage reads the optional limit and offset query parameters
func bindPage(ctx *gin.Context, limit, offset *int) error {
	if value := ctx.Query("limit"); len(value) > 0 {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: limit must be an integer", apperr.ErrValidation)
		}
		*limit = parsed
	}
	if value := ctx.Query("offset"); len(value) > 0 {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: offset must be an integer", apperr.ErrValidation)
		}
		*offset = parsed
	}
	return nil
}
