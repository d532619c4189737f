// Package token issues and verifies the bearer tokens handed out after wallet sign-in.
package token

import (
	"fmt"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines JWT payload.
type Claims struct {
	WalletAddress string `json:"wallet"`
	jwtlib.RegisteredClaims
}

type jwtIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer creates an HS256 auth.TokenIssuer from settings.
func NewJWTIssuer(settings *config.AuthSettings) (auth.TokenIssuer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &jwtIssuer{
		secret: []byte(settings.JWTSecret),
		issuer: settings.Issuer,
		ttl:    settings.TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the user; the subject is the user ID.
func (j *jwtIssuer) Issue(userID, walletAddress string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)
	claims := Claims{
		WalletAddress: walletAddress,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.issuer,
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates signature, algorithm, issuer and expiry and extracts the claims.
func (j *jwtIssuer) Parse(token string) (*auth.Claims, error) {
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(j.issuer))
	}

	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		return j.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token claims", apperr.ErrUnauthorized)
	}

	return &auth.Claims{
		UserID:        claims.Subject,
		WalletAddress: claims.WalletAddress,
		ExpiresAt:     claims.ExpiresAt.Time,
	}, nil
}
