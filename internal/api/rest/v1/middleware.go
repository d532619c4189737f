package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/metrics"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/ratelimit"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const userContextKey = "web3-invoicing.user"

// Rate limit scopes
const (
	GlobalScope = "global"
	AuthScope   = "auth"
)

// RateLimitRecorder is notified about rejected requests
type RateLimitRecorder interface {
	RateLimited(scope string)
}

// RequestLogger writes one structured log line per request
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		args := []interface{}{
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", ctx.ClientIP(),
		}
		if len(ctx.Errors) > 0 {
			args = append(args, "error", ctx.Errors.String())
		}

		if status >= http.StatusInternalServerError {
			log.Error(append([]interface{}{"HTTP request failed"}, args...)...)
			return
		}
		log.Info(append([]interface{}{"HTTP request"}, args...)...)
	}
}

// RequestMetrics records count, latency and in-flight requests per route template
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		done := m.RequestStarted()
		ctx.Next()
		done(ctx.Request.Method, ctx.FullPath(), ctx.Writer.Status())
	}
}

// TrustProxies restricts which peers may set X-Forwarded-For and X-Real-IP.
// Without proxies ClientIP is always the remote address of the connection.
func TrustProxies(r *gin.Engine, proxies []string) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}
	return nil
}

// RateLimit admits limit requests per window and client IP within scope.
// Every response carries the X-RateLimit-* headers; rejected requests get 429.
func RateLimit(limiter ratelimit.Limiter, scope string, limit int, window time.Duration, recorder RateLimitRecorder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if limit <= 0 {
			ctx.Next()
			return
		}

		key := fmt.Sprintf("%s:ip:%s", scope, ctx.ClientIP())
		decision := limiter.Allow(ctx.Request.Context(), key, limit, window)

		ctx.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		ctx.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		ctx.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retryAfter := int(time.Until(decision.ResetAt).Seconds()) + 1
			if retryAfter < 1 {
				retryAfter = 1
			}
			ctx.Header("Retry-After", strconv.Itoa(retryAfter))
			if recorder != nil {
				recorder.RateLimited(scope)
			}
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Message: "rate limit exceeded"})
			return
		}
		ctx.Next()
	}
}

// RequireAuth resolves the bearer token of the Authorization header into the current user
func RequireAuth(authService auth.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			respondError(ctx, fmt.Errorf("%w: missing bearer token", apperr.ErrUnauthorized))
			return
		}

		user, err := authService.Authenticate(ctx.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			respondError(ctx, err)
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// currentUser returns the user stored by RequireAuth
func currentUser(ctx *gin.Context) (*users.User, bool) {
	value, ok := ctx.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*users.User)
	return user, ok && user != nil
}

// mustUser aborts with 401 when no user is attached to the context
func mustUser(ctx *gin.Context) (*users.User, bool) {
	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, fmt.Errorf("%w: not signed in", apperr.ErrUnauthorized))
		return nil, false
	}
	return user, true
}
