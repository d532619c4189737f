package v1

import (
	"context"
	"net/http"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/dashboard"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/metrics"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/ratelimit"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// Services bundles the application services behind the routes
type Services struct {
	Auth       auth.AuthService
	Profile    users.ProfileService
	Contact    contacts.ContactService
	Invoice    invoices.InvoiceService
	Document   invoices.DocumentService
	Payment    invoices.PaymentService
	Stream     invoices.StreamService
	Commitment invoices.CommitmentService
	Dashboard  dashboard.DashboardService
}

// RouterOptions configures the operational parts of the router. Zero values disable them.
type RouterOptions struct {
	Limiter   ratelimit.Limiter
	RateLimit config.RateLimitSettings
	Metrics   *metrics.Metrics
	// Ping reports whether the database is reachable
	Ping func(ctx context.Context) error
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services *Services, opts RouterOptions) {
	var recorder RateLimitRecorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	health := healthHandler(opts.Ping)
	r.GET("/health", health)

	v1 := r.Group(BasePath) // lookup in version file
	v1.GET("/health", health)

	if opts.Limiter != nil {
		v1.Use(RateLimit(opts.Limiter, GlobalScope, opts.RateLimit.GlobalLimit, opts.RateLimit.Window, recorder))
	}

	requireAuth := RequireAuth(services.Auth)

	// Auth Routes
	authHandler := NewAuthHandler(services.Auth, services.Profile)
	authGroup := v1.Group("/auth")
	if opts.Limiter != nil {
		authGroup.Use(RateLimit(opts.Limiter, AuthScope, opts.RateLimit.AuthLimit, opts.RateLimit.Window, recorder))
	}
	authGroup.GET("/nonce", authHandler.Nonce)
	authGroup.POST("", authHandler.SignIn)
	authGroup.GET("/me", requireAuth, authHandler.Me)

	// Public Routes
	publicHandler := NewPublicHandler(services.Invoice, services.Document)
	v1.GET("/public/invoices/:id", publicHandler.GetInvoice)
	v1.GET("/public/invoices/:id/pdf", publicHandler.DownloadPDF)

	protected := v1.Group("", requireAuth)

	// Profile Routes
	profileHandler := NewProfileHandler(services.Profile)
	protected.GET("/profile", profileHandler.Get)
	protected.PUT("/profile", profileHandler.Update)
	protected.POST("/profile/avatar", profileHandler.UploadAvatar)
	protected.GET("/profile/avatar", profileHandler.DownloadAvatar)

	// Contacts Routes
	contactHandler := NewContactHandler(services.Contact)
	protected.POST("/contacts", contactHandler.Create)
	protected.GET("/contacts", contactHandler.List)
	protected.GET("/contacts/:id", contactHandler.GetByID)
	protected.PUT("/contacts/:id", contactHandler.Update)
	protected.DELETE("/contacts/:id", contactHandler.DeleteByID)

	// Invoices Routes
	invoiceHandler := NewInvoiceHandler(services.Invoice, services.Document)
	protected.POST("/invoices", invoiceHandler.Create)
	protected.GET("/invoices", invoiceHandler.List)
	protected.GET("/invoices/:id", invoiceHandler.GetByID)
	protected.PUT("/invoices/:id", invoiceHandler.Update)
	protected.DELETE("/invoices/:id", invoiceHandler.DeleteByID)
	protected.POST("/invoices/:id/send", invoiceHandler.Send)
	protected.POST("/invoices/:id/cancel", invoiceHandler.Cancel)
	protected.GET("/invoices/:id/pdf", invoiceHandler.DownloadPDF)

	commitmentHandler := NewCommitmentHandler(services.Commitment)
	protected.POST("/invoices/:id/hash", commitmentHandler.Commit)
	protected.POST("/invoices/:id/hash/verify", commitmentHandler.Verify)

	paymentHandler := NewPaymentHandler(services.Payment)
	protected.POST("/invoices/:id/payments", paymentHandler.Record)
	protected.GET("/invoices/:id/payments", paymentHandler.List)

	// Streams Routes
	streamHandler := NewStreamHandler(services.Stream)
	protected.POST("/invoices/:id/streams", streamHandler.Create)
	protected.GET("/invoices/:id/streams", streamHandler.List)
	protected.POST("/streams/:id/cancel", streamHandler.Cancel)

	// Dashboard Routes
	dashboardHandler := NewDashboardHandler(services.Dashboard)
	protected.GET("/dashboard/stats", dashboardHandler.Stats)
}

// healthHandler reports liveness, and database reachability when ping is set
func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ping != nil {
			if err := ping(ctx.Request.Context()); err != nil {
				_ = ctx.Error(err)
				ctx.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Time: clock()})
				return
			}
		}
		ctx.JSON(http.StatusOK, HealthResponse{Status: "ok", Time: clock()})
	}
}
