// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/docs"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/config"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/http/handlers"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/http/middleware"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/search"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/services"
)

// faqSource adapts the FAQ repository to the matcher's candidate pool
// interface. The matchers stay decoupled from GORM while reusing the existing
// repository functions.
type faqSource struct{ db *gorm.DB }

// All returns every FAQ as a match entry.
func (s faqSource) All(ctx context.Context) ([]search.Entry, error) {
	faqs, err := repo.ListFAQs(ctx, s.db, "")
	if err != nil {
		return nil, err
	}
	out := make([]search.Entry, len(faqs))
	for i, f := range faqs {
		out[i] = search.Entry{ID: f.ID, Question: f.Question, Answer: f.Answer}
	}
	return out, nil
}

// newMatcher builds the configured FAQ matcher. The semantic matcher needs a
// stemmer for the configured language; when none is available (or the
// semantic pipeline is disabled) it degrades to the lexical matcher with a
// startup warning. The returned invalidate func drops any cached results
// after FAQ mutations.
func newMatcher(db *gorm.DB, cfg config.Config) (search.Matcher, func()) {
	src := faqSource{db: db}
	if !cfg.Match.SemanticEnabled {
		return search.NewLexical(src), nil
	}
	an, err := search.NewAnalyzer(cfg.Match.Language)
	if err != nil {
		log.Warn().Err(err).Str("language", cfg.Match.Language).
			Msg("semantic matcher unavailable, falling back to lexical")
		return search.NewLexical(src), nil
	}
	sem := search.NewSemantic(src, an, cfg.Match.CacheSize, cfg.Match.CacheTTL)
	return sem, sem.InvalidateAll
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, cookie sessions for the chat state, and
// then mounts the public API.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (covers multipart FAQ imports)
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS and Security headers
//  10. Gzip and cookie sessions
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	maxBody := cfg.UploadMaxBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Use(limitBody(maxBody))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "X-Import-Created"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "X-Import-Created"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 10) Compression and the cookie session backing the chat state machine
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(sessions.Sessions("sdesk_session", cookie.NewStore([]byte(cfg.Auth.SessionSecret))))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db/matcher
	matcher, invalidate := newMatcher(db, cfg)
	faqSvc := services.NewFAQService(db, invalidate)
	chatSvc := services.NewChatService(
		db,
		services.NewCommandChain(db),
		matcher,
		&services.Formatter{BasePath: cfg.APIBasePath},
		cfg.Match.MaxOptions,
	)
	authSvc := services.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	gameSvc := services.NewGamificationService(db)
	importSvc := services.NewImportService(faqSvc)

	h := handlers.New(db, authSvc, chatSvc, faqSvc, importSvc, gameSvc, cfg.IdempotencyTTL)

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := groupWithPrefix(r, cfg.APIBasePath)

	// Public: account bootstrap only
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	// Authenticated surface
	user := api.Group("", middleware.RequireAuth(authSvc))
	{
		user.GET("/me", h.Me)

		// Chat
		user.POST("/chat", h.PostChat)
		user.GET("/chat-page", h.ChatPage)
		user.POST("/chat/feedback", h.ChatFeedback)
		user.GET("/chat/history", h.ChatHistory)

		// FAQ browsing
		user.GET("/faqs", h.ListFAQs)
		user.GET("/faqs/:id", h.GetFAQ)
		user.GET("/faqs/:id/file", h.DownloadFAQFile)
		user.GET("/categories", h.ListCategories)

		// Gamification
		user.GET("/challenges", h.ListChallenges)
		user.POST("/challenges/:id/complete", h.CompleteChallenge)
		user.GET("/ranking", h.Ranking)
		user.GET("/teams", h.ListTeams)
		user.GET("/teams/ranking", h.TeamRanking)
		user.POST("/teams/:id/join", h.JoinTeam)
		user.GET("/levels", h.ListLevels)
	}

	// Admin surface
	admin := api.Group("/admin", middleware.RequireAuth(authSvc), middleware.RequireAdmin())
	{
		admin.POST("/faqs", h.CreateFAQ)
		admin.PUT("/faqs/:id", h.UpdateFAQ)
		admin.DELETE("/faqs/:id", h.DeleteFAQ)
		admin.POST("/faqs/import", h.ImportFAQs)
		admin.POST("/categories", h.CreateCategory)

		admin.POST("/tickets", h.CreateTicket)
		admin.GET("/tickets", h.ListTickets)

		admin.POST("/challenges", h.CreateChallenge)
		admin.PUT("/challenges/:id", h.SetChallengeActive)

		admin.PUT("/users/:id/admin", h.SetUserAdmin)
		admin.POST("/teams", h.CreateTeam)
	}
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

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
