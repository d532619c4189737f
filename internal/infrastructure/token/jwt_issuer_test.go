//go:build unit
// +build unit

package token

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettings() *config.AuthSettings {
	return &config.AuthSettings{
		Domain:    "localhost",
		JWTSecret: strings.Repeat("s", 32),
		Issuer:    "web3-invoicing",
		TokenTTL:  time.Hour,
		NonceTTL:  time.Minute,
	}
}

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestSettings())
	require.NoError(t, err)

	token, expiresAt, err := issuer.Issue("user-1", "0x52908400098527886e0f7030069857d2e4169ee7")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "0x52908400098527886e0f7030069857d2e4169ee7", claims.WalletAddress)
}

func TestJWTIssuer_RejectsForeignAndExpiredTokens(t *testing.T) {
	settings := newTestSettings()
	issuer, err := NewJWTIssuer(settings)
	require.NoError(t, err)

	other := newTestSettings()
	other.JWTSecret = strings.Repeat("x", 32)
	otherIssuer, err := NewJWTIssuer(other)
	require.NoError(t, err)

	foreign, _, err := otherIssuer.Issue("user-1", "0x52908400098527886e0f7030069857d2e4169ee7")
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	expiring := issuer.(*jwtIssuer)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiring.Issue("user-1", "0x52908400098527886e0f7030069857d2e4169ee7")
	require.NoError(t, err)
	expiring.now = time.Now
	_, err = issuer.Parse(expired)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestJWTIssuer_RejectsNoneAlgorithm(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestSettings())
	require.NoError(t, err)

	claims := Claims{RegisteredClaims: jwtlib.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "web3-invoicing",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestNewJWTIssuer_ShortSecret(t *testing.T) {
	settings := newTestSettings()
	settings.JWTSecret = "short"
	_, err := NewJWTIssuer(settings)
	assert.Error(t, err)
}
