package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"

	"github.com/google/uuid"
)

// errSignInFailed is the only error a caller sees for a rejected sign-in.
var errSignInFailed = fmt.Errorf("%w: invalid wallet signature", apperr.ErrUnauthorized)

// authService implements the AuthService interface for wallet sign-in
type authService struct {
	settings  *config.AuthSettings
	userRepo  users.UserRepository
	nonceRepo auth.NonceRepository
	verifier  auth.SignatureVerifier
	tokens    auth.TokenIssuer
	observer  Observer
	logger    logger.Logger
	now       func() time.Time
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	settings *config.AuthSettings,
	userRepo users.UserRepository,
	nonceRepo auth.NonceRepository,
	verifier auth.SignatureVerifier,
	tokens auth.TokenIssuer,
	observer Observer,
	logger logger.Logger,
) (auth.AuthService, error) {
	if settings == nil {
		return nil, fmt.Errorf("auth settings are required")
	}
	return &authService{
		settings:  settings,
		userRepo:  userRepo,
		nonceRepo: nonceRepo,
		verifier:  verifier,
		tokens:    tokens,
		observer:  observerOrNoop(observer),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// Challenge stores a fresh nonce for address and returns the message to sign.
func (s *authService) Challenge(ctx context.Context, address string) (*auth.Challenge, error) {
	address = users.NormalizeAddress(address)
	if err := validators.Var(address, "required,eth_addr"); err != nil {
		return nil, fmt.Errorf("invalid wallet address: %w", err)
	}

	now := s.now().Truncate(time.Second)
	value := strings.ReplaceAll(uuid.NewString(), "-", "")
	message := auth.Message{
		Domain:    s.settings.Domain,
		Address:   address,
		Nonce:     value,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.settings.NonceTTL),
	}

	nonce := &auth.Nonce{
		ID:            uuid.NewString(),
		WalletAddress: address,
		Value:         value,
		Message:       message.String(),
		ExpiresAt:     message.ExpiresAt,
		CreatedAt:     now,
	}
	if err := s.nonceRepo.Create(ctx, nonce); err != nil {
		return nil, fmt.Errorf("failed to store nonce: %w", err)
	}

	s.logger.Info("Issued sign-in challenge", "wallet_address", address, "expires_at", nonce.ExpiresAt)
	return &auth.Challenge{
		Address:   address,
		Nonce:     value,
		Message:   nonce.Message,
		ExpiresAt: nonce.ExpiresAt,
	}, nil
}

// SignIn verifies the signed challenge, consumes its nonce and issues a token.
func (s *authService) SignIn(ctx context.Context, address, message, signature string) (*auth.Session, error) {
	address = users.NormalizeAddress(address)
	now := s.now()

	nonce, err := s.verifyChallenge(ctx, address, message, signature, now)
	if err != nil {
		s.logger.Warn("Rejected sign-in", "wallet_address", address, "reason", err.Error())
		s.observer.SignIn(false)
		return nil, errSignInFailed
	}

	if err := s.nonceRepo.MarkUsed(ctx, nonce.ID, now); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			s.logger.Warn("Rejected sign-in", "wallet_address", address, "reason", "nonce consumed concurrently")
			s.observer.SignIn(false)
			return nil, errSignInFailed
		}
		return nil, fmt.Errorf("failed to consume nonce: %w", err)
	}

	user, err := s.upsertUser(ctx, address, now)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.WalletAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.observer.SignIn(true)
	s.logger.Info("Signed in", "user_id", user.ID, "wallet_address", user.WalletAddress)
	return &auth.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) verifyChallenge(ctx context.Context, address, message, signature string, now time.Time) (*auth.Nonce, error) {
	if err := validators.Var(address, "required,eth_addr"); err != nil {
		return nil, fmt.Errorf("invalid address")
	}
	parsed, err := auth.ParseMessage(message)
	if err != nil {
		return nil, err
	}
	if parsed.Domain != s.settings.Domain {
		return nil, fmt.Errorf("domain mismatch")
	}
	if users.NormalizeAddress(parsed.Address) != address {
		return nil, fmt.Errorf("message address mismatch")
	}

	nonce, err := s.nonceRepo.GetByValue(ctx, parsed.Nonce)
	if err != nil {
		return nil, fmt.Errorf("unknown nonce: %w", err)
	}
	if nonce.WalletAddress != address {
		return nil, fmt.Errorf("nonce issued for another wallet")
	}
	if !nonce.Usable(now) {
		return nil, fmt.Errorf("nonce used or expired")
	}
	if nonce.Message != message {
		return nil, fmt.Errorf("message was altered")
	}

	signer, err := s.verifier.RecoverAddress([]byte(message), signature)
	if err != nil {
		return nil, err
	}
	if users.NormalizeAddress(signer) != address {
		return nil, fmt.Errorf("signed by %s", signer)
	}
	return nonce, nil
}

func (s *authService) upsertUser(ctx context.Context, address string, now time.Time) (*users.User, error) {
	user, err := s.userRepo.GetByWalletAddress(ctx, address)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		user = &users.User{
			ID:            uuid.NewString(),
			WalletAddress: address,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		profile := &users.Profile{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.userRepo.Create(ctx, user, profile); err != nil {
			if !errors.Is(err, apperr.ErrConflict) {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}
			// first sign-in raced with another one for the same wallet
			if user, err = s.userRepo.GetByWalletAddress(ctx, address); err != nil {
				return nil, fmt.Errorf("failed to load user: %w", err)
			}
		} else {
			s.logger.Info("Registered wallet", "user_id", user.ID, "wallet_address", address)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := s.userRepo.UpdateByID(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Authenticate resolves the user of a bearer token.
func (s *authService) Authenticate(ctx context.Context, token string) (*users.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", apperr.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.WalletAddress != users.NormalizeAddress(claims.WalletAddress) {
		return nil, fmt.Errorf("%w: token wallet mismatch", apperr.ErrUnauthorized)
	}
	return user, nil
}

// PurgeExpiredNonces deletes nonces that expired before now and returns how many were removed.
func PurgeExpiredNonces(ctx context.Context, repo auth.NonceRepository, now time.Time) (int64, error) {
	removed, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge nonces: %w", err)
	}
	return removed, nil
}
