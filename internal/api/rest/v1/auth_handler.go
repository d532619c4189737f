package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// clock is the time source for effective statuses in responses
var clock = func() time.Time { return time.Now().UTC() }

// AuthHandler defines the interface for handling wallet sign-in
type AuthHandler interface {
	Nonce(ctx *gin.Context)
	SignIn(ctx *gin.Context)
	Me(ctx *gin.Context)
}

type authHandler struct {
	authService    auth.AuthService
	profileService users.ProfileService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService auth.AuthService, profileService users.ProfileService) AuthHandler {
	return &authHandler{
		authService:    authService,
		profileService: profileService,
	}
}

// Nonce handles the GET request for a sign-in challenge
// @Summary Issue a sign-in challenge
// @Description Create a single-use nonce for the wallet and return the message it has to sign.
// @Tags Auth
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} ChallengeResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/nonce [get]
func (handler *authHandler) Nonce(ctx *gin.Context) {
	address := ctx.Query("address")
	if address == "" {
		respondBadRequest(ctx, "invalid request", fmt.Errorf("address is required"))
		return
	}

	challenge, err := handler.authService.Challenge(ctx.Request.Context(), address)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newChallengeResponse(challenge))
}

// SignIn handles the POST request verifying a signed challenge
// @Summary Sign in with a wallet signature
// @Description Verify the EIP-191 signature of the challenge message and issue a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body SignInRequest true "Signed challenge"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth [post]
func (handler *authHandler) SignIn(ctx *gin.Context) {
	var request SignInRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid sign-in data", err)
		return
	}

	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "validation failed", err)
		return
	}

	session, err := handler.authService.SignIn(ctx.Request.Context(), request.Address, request.Message, request.Signature)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SessionResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt,
		User:      newUserResponse(session.User),
	})
}

// Me handles the GET request for the authenticated user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (handler *authHandler) Me(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	profile, err := handler.profileService.Get(ctx.Request.Context(), user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, MeResponse{
		User:    newUserResponse(user),
		Profile: newProfileResponse(profile),
	})
}
