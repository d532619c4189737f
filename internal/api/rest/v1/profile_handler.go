package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the avatar itself
const multipartOverhead = 1 << 20

// ProfileHandler defines the interface for handling profile operations
type ProfileHandler interface {
	Get(ctx *gin.Context)
	Update(ctx *gin.Context)
	UploadAvatar(ctx *gin.Context)
	DownloadAvatar(ctx *gin.Context)
}

type profileHandler struct {
	profileService users.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService users.ProfileService) ProfileHandler {
	return &profileHandler{profileService: profileService}
}

// Get handles the GET request for the profile of the authenticated user
// @Summary Read profile
// @Tags Profile
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Router /profile [get]
func (handler *profileHandler) Get(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	profile, err := handler.profileService.Get(ctx.Request.Context(), user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}

// Update handles the PUT request overwriting the editable profile fields
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param requestBody body UpdateProfileRequest true "Profile"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Router /profile [put]
func (handler *profileHandler) Update(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	var request UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid profile data", err)
		return
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "validation failed", err)
		return
	}

	profile, err := handler.profileService.Update(ctx.Request.Context(), user.ID, request.ToUpdate())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}

// UploadAvatar handles the multipart POST request of an avatar image
// @Summary Upload avatar
// @Description Upload a png, jpeg or gif image. An optional crop rectangle (x, y, width, height) is applied before the image is squared.
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Avatar image"
// @Param x formData int false "Crop x"
// @Param y formData int false "Crop y"
// @Param width formData int false "Crop width"
// @Param height formData int false "Crop height"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /profile/avatar [post]
func (handler *profileHandler) UploadAvatar(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, users.MaxAvatarBytes+multipartOverhead)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{Message: "avatar exceeds 5 MiB"})
			return
		}
		respondBadRequest(ctx, "invalid avatar upload", err)
		return
	}
	if fileHeader.Size > users.MaxAvatarBytes {
		ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{Message: "avatar exceeds 5 MiB"})
		return
	}

	var form AvatarCropForm
	if err := ctx.ShouldBind(&form); err != nil {
		respondBadRequest(ctx, "invalid crop", err)
		return
	}
	crop, err := form.ToCropRect()
	if err != nil {
		respondError(ctx, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(ctx, fmt.Errorf("%w: cannot read avatar", apperr.ErrValidation))
		return
	}
	defer file.Close()

	profile, err := handler.profileService.UploadAvatar(ctx.Request.Context(), user.ID, file, crop)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}

// DownloadAvatar handles the GET request for the stored avatar
// @Summary Download avatar
// @Tags Profile
// @Produce png
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /profile/avatar [get]
func (handler *profileHandler) DownloadAvatar(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	avatar, err := handler.profileService.DownloadAvatar(ctx.Request.Context(), user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Cache-Control", "private, max-age=60")
	ctx.Data(http.StatusOK, avatar.ContentType, avatar.Content)
}
