// Package server contains the HTTP and WebSocket handlers of the dashboard API.
package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "matchboard/docs" // swagger docs
	"matchboard/internal/bootstrap"
	"matchboard/internal/config"
	"matchboard/internal/dashboard"
	"matchboard/internal/featureflags"
	"matchboard/internal/middleware"
	"matchboard/internal/models"
	"matchboard/internal/notifications"
	"matchboard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
)

const (
	sessionSweepInterval = 5 * time.Minute
	sessionMaxIdle       = 2 * time.Hour
)

// Per-session budgets for the mutating dashboard routes.
var (
	refreshLimit      = middleware.Limit{Name: "refresh", Max: 30, Window: time.Minute}
	matchRespondLimit = middleware.Limit{Name: "match_respond", Max: 60, Window: time.Minute}
	sendMessageLimit  = middleware.Limit{Name: "send_message", Max: 15, Window: time.Minute}
	profileSaveLimit  = middleware.Limit{Name: "profile_save", Max: 10, Window: time.Minute}
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// httpMetrics returns the process-wide HTTP metrics middleware. Its
// collectors live in the default registry and can only be registered once.
func httpMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = middleware.InitMetrics("matchboard-api")
	})
	return prom
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	runtime        *bootstrap.Runtime
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	sessions       *dashboard.Sessions
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	featureFlags   *featureflags.Manager
	matchService   *service.MatchService
	chatService    *service.ChatService
	profileService *service.ProfileService
}

// NewServer selects the data backend, connects Redis and builds the server.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return nil, fmt.Errorf("runtime initialization failed: %w", err)
	}
	return NewServerWithDeps(cfg, rt)
}

// NewServerWithDeps creates a Server from an already-initialized runtime.
// Use this in tests or when the caller owns backend selection.
func NewServerWithDeps(cfg *config.Config, rt *bootstrap.Runtime) (*Server, error) {
	if rt == nil || rt.Backend == nil {
		return nil, fmt.Errorf("runtime without a data backend")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:         cfg,
		runtime:        rt,
		redis:          rt.Redis,
		promMiddleware: httpMetrics(),
		shutdownCtx:    ctx,
		shutdownFn:     cancel,
		notifier:       notifications.NewNotifier(rt.Redis),
		hub:            notifications.NewHub(),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}
	s.sessions = dashboard.NewSessions(dashboard.SessionsOptions{
		Backend:      rt.Backend,
		MessageLimit: cfg.MessageFetchLimit,
		Sink:         s.notifier,
	})
	s.matchService = service.NewMatchService()
	s.chatService = service.NewChatService(s.featureFlags)
	s.profileService = service.NewProfileService()

	if err := s.hub.StartWiring(ctx, s.notifier); err != nil {
		cancel()
		return nil, fmt.Errorf("notification wiring failed: %w", err)
	}
	go s.sessions.RunSweeper(ctx, sessionSweepInterval, sessionMaxIdle)

	return s, nil
}

// NewApp builds the Fiber app with the shared error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   "Matchboard API",
		BodyLimit: 1 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return models.RespondWithError(c, fe.Code, fe)
			}
			var appErr *models.AppError
			if errors.As(err, &appErr) {
				return models.RespondWithError(c, appErr.Status(), appErr)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "Unhandled error", "error", err.Error())
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Session cookie before the context middleware so the session ID is logged
	app.Use(middleware.Session(s.config.IsProduction()))

	// Context Middleware to propagate request and session IDs
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before the limiter so error responses carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (300 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	api.Get("/feature-flags", s.GetFeatureFlags)
	api.Get("/toasts", s.GetToasts)

	// Dashboard shell
	dash := api.Group("/dashboard")
	dash.Get("/", s.GetDashboard)
	dash.Post("/refresh", middleware.RateLimit(s.redis, refreshLimit), s.RefreshDashboard)
	dash.Post("/navigate", s.NavigateDashboard)
	api.Get("/views/:view", s.GetView)

	// Match recommendations
	matches := api.Group("/matches")
	matches.Get("/", s.GetPendingMatches)
	matches.Post("/:id/accept", middleware.RateLimit(s.redis, matchRespondLimit), s.AcceptMatch)
	matches.Post("/:id/decline", middleware.RateLimit(s.redis, matchRespondLimit), s.DeclineMatch)

	// Chat. Specific routes before the generic /:counterpartId route.
	conversations := api.Group("/conversations")
	conversations.Get("/", s.GetConversations)
	conversations.Post("/select", s.SelectConversation)
	conversations.Post("/:counterpartId/messages", middleware.RateLimit(s.redis, sendMessageLimit), s.SendMessage)
	conversations.Get("/:counterpartId", s.GetConversation)

	// Profile editor
	profile := api.Group("/profile")
	profile.Get("/", s.GetProfile)
	profile.Post("/edit", s.BeginProfileEdit)
	profile.Put("/draft", s.UpdateProfileDraft)
	profile.Get("/changes", s.GetProfileChanges)
	profile.Post("/cancel", s.CancelProfileEdit)
	profile.Post("/save", middleware.RateLimit(s.redis, profileSaveLimit), s.SaveProfile)

	api.Get("/analytics", s.GetAnalytics)

	// WebSocket stream of session events
	api.Get("/ws", s.UpgradeRequired(), s.WebsocketHandler())
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so
// only an unreachable database makes the service unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "not_used"
	if s.runtime.DB != nil {
		dbStatus = "healthy"
		sqlDB, err := s.runtime.DB.DB()
		if err != nil {
			dbStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
		}
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":       overallStatus,
		"backend_mode": s.runtime.Backend.Mode,
		"preview":      s.runtime.Backend.Preview(),
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"sessions": s.sessions.Len(),
		"time":     time.Now(),
	})
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app := NewApp()
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop wiring and the sweeper
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("Error shutting down HTTP server", "error", err.Error())
		}
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("Error shutting down notification hub", "error", err.Error())
	}

	if err := s.runtime.Close(); err != nil {
		middleware.Logger.Error("Error closing runtime connections", "error", err.Error())
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
