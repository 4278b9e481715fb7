// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/config"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/http/handlers"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/http/middleware"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/invoice"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/notify"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/services"
)

// invoiceNodeID seeds the snowflake generator behind invoice numbers. A
// single-writer deployment only needs one node; multi-node deployments must
// assign distinct ids per instance.
const invoiceNodeID = 1

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, the health and metrics endpoints, the static invoice
// directory, and then mounts the insurance and admin APIs.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) error {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB); webhook payloads are small JSON
	r.Use(limitBody(1 << 20))

	// 6) Compress responses (listing endpoints, swagger)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Rendered invoices are served statically, named by invoice number.
	r.Static("/invoices", cfg.InvoiceDir)

	// API documentation (flag-gated; off in production by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db + invoice + notify
	gen, err := invoice.NewNumberGenerator(invoiceNodeID)
	if err != nil {
		return err
	}
	// An unconfigured gateway disables outbound messages entirely instead of
	// logging a failed send per decision.
	var notifier services.Notifier
	if cfg.Notify.URL != "" {
		notifier = notify.NewWhatsAppNotifier(cfg.Notify)
	}

	reqSvc := &services.RequestService{DB: db}
	decSvc := &services.DecisionService{
		DB:       db,
		Invoices: gen,
		Renderer: &invoice.Renderer{
			Company: cfg.Company,
			OutDir:  cfg.InvoiceDir,
			Images:  invoice.NewImageFetcher(cfg.ImageDir, cfg.ImageFetchTimeout),
		},
		Notifier:      notifier,
		PublicBaseURL: cfg.PublicBaseURL,
	}
	h := handlers.New(reqSvc, decSvc, cfg.IsProduction())

	// Webhook-facing API
	ins := r.Group("/insurance")
	{
		ins.POST("/request", h.SubmitRequest)
		ins.GET("/request/:id", h.GetRequest)
		ins.GET("/status/:phone", h.GetStatus)
	}

	// Admin console API
	admin := r.Group("/admin")
	{
		admin.GET("/pending", h.ListPending)
		admin.GET("/requests", h.ListRequests)
		admin.POST("/approve/:id", h.Approve)
		admin.POST("/reject/:id", h.Reject)
	}

	return nil
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
