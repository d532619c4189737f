//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordedScopes []string

func (r *recordedScopes) RateLimited(scope string) {
	*r = append(*r, scope)
}

func newLimitedEngine(t *testing.T, limit int, recorder RateLimitRecorder) *gin.Engine {
	t.Helper()

	limiter := ratelimit.NewMemoryLimiter()
	t.Cleanup(func() { _ = limiter.Close() })

	r := gin.New()
	require.NoError(t, TrustProxies(r, nil))
	r.Use(RateLimit(limiter, AuthScope, limit, time.Minute, recorder))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func pingForwarded(r *gin.Engine, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ping(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := newLimitedEngine(t, 1, nil)

	allowed := 0
	for i := 0; i < 5; i++ {
		w := pingForwarded(r, "10.0.0.1:1234", fmt.Sprintf("203.0.113.%d", i+1))
		if w.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}

func TestRateLimit_HonoursForwardedForFromTrustedProxy(t *testing.T) {
	r := newLimitedEngine(t, 1, nil)
	require.NoError(t, TrustProxies(r, []string{"10.0.0.1"}))

	assert.Equal(t, http.StatusOK, pingForwarded(r, "10.0.0.1:1234", "203.0.113.1").Code)
	assert.Equal(t, http.StatusOK, pingForwarded(r, "10.0.0.1:1234", "203.0.113.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, pingForwarded(r, "10.0.0.1:1234", "203.0.113.1").Code)
}

func TestTrustProxies_RejectsInvalidEntry(t *testing.T) {
	assert.Error(t, TrustProxies(gin.New(), []string{"not-an-ip"}))
}

func TestRateLimit_RejectsAfterLimit(t *testing.T) {
	var recorded recordedScopes
	r := newLimitedEngine(t, 3, &recorded)

	for i := 0; i < 3; i++ {
		w := ping(r, "10.0.0.1:1234")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(2-i), w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}

	w := ping(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, recordedScopes{AuthScope}, recorded)

	// other clients keep their own window
	assert.Equal(t, http.StatusOK, ping(r, "10.0.0.2:1234").Code)
}

func TestRateLimit_ZeroLimitDisables(t *testing.T) {
	r := newLimitedEngine(t, 0, nil)

	for i := 0; i < 10; i++ {
		w := ping(r, "10.0.0.1:1234")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		setup  func(m *MockAuthService)
		want   int
	}{
		{"missing header", "", func(m *MockAuthService) {}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", func(m *MockAuthService) {}, http.StatusUnauthorized},
		{"rejected token", "Bearer expired", func(m *MockAuthService) {
			m.On("Authenticate", mock.Anything, "expired").Return(nil, fmt.Errorf("%w: token expired", apperr.ErrUnauthorized))
		}, http.StatusUnauthorized},
		{"valid token", "Bearer good", func(m *MockAuthService) {
			m.On("Authenticate", mock.Anything, "good").Return(testUser(), nil)
		}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			tt.setup(authService)

			r := gin.New()
			r.GET("/me", RequireAuth(authService), func(c *gin.Context) {
				user, ok := currentUser(c)
				require.True(t, ok)
				c.String(http.StatusOK, user.ID)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, testUserID, w.Body.String())
			}
			authService.AssertExpectations(t)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", apperr.ErrNotFound), http.StatusNotFound},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.ErrConflict, http.StatusConflict},
		{apperr.ErrInvalidState, http.StatusConflict},
		{fmt.Errorf("validation error: %w", apperr.ErrValidation), http.StatusBadRequest},
		{apperr.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
