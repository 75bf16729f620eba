package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

// Services bundles the application services the handlers call.
type Services struct {
	Users         *services.UserService
	Transactions  *services.TransactionService
	Budgets       *services.BudgetService
	Bills         *services.BillService
	Categories    *services.CategoryService
	Notifications *services.NotificationService
}

// Config holds what the server needs besides the services.
type Config struct {
	Addr               string
	Logger             *log.Logger
	Tokens             *auth.Issuer
	Clock              core.Clock
	RateLimitPerMinute int
	// Ready backs /readyz, typically the store's Ping.
	Ready func(context.Context) error
}

// Server is the API http.Server with its middleware state.
type Server struct {
	http.Server
	svc      Services
	logger   *log.Logger
	clock    core.Clock
	ready    func(context.Context) error
	started  time.Time
	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(cfg Config, svc Services) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)
	clock := cfg.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}

	detector := security.NewDetector()
	s := &Server{
		svc:      svc,
		logger:   logger,
		clock:    clock,
		ready:    cfg.Ready,
		started:  time.Now(),
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),
		detector: detector,
		tracer:   trace.NewMiddleware(logger, detector.ExtractClientIP),
	}
	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(cfg.Tokens),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes(tokens *auth.Issuer) http.Handler {
	r := chi.NewRouter()

	r.Use(s.tracer.Handler)
	r.Use(log.Middleware(s.logger), log.RequestIDMiddleware(trace.GetRequestID))
	r.Use(middleware.Recoverer)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.detector.Middleware(s.logger))
	r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, ratelimit.MutatingOnly, handleRateLimited))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("Route not found").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed").Write(w)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", s.handleListTransactions)
				r.Post("/", s.handleCreateTransaction)
				r.Get("/{id}", s.handleGetTransaction)
				r.Put("/{id}", s.handleUpdateTransaction)
				r.Delete("/{id}", s.handleDeleteTransaction)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", s.handleListCategories)
				r.Post("/", s.handleCreateCategory)
				r.Put("/{id}", s.handleUpdateCategory)
				r.Delete("/{id}", s.handleDeleteCategory)
			})
			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", s.handleListBudgets)
				r.Post("/", s.handleCreateBudget)
				r.Get("/{id}", s.handleGetBudget)
				r.Put("/{id}", s.handleUpdateBudget)
				r.Delete("/{id}", s.handleDeleteBudget)
			})
			r.Route("/bills", func(r chi.Router) {
				r.Get("/", s.handleListBills)
				r.Post("/", s.handleCreateBill)
				r.Get("/{id}", s.handleGetBill)
				r.Put("/{id}", s.handleUpdateBill)
				r.Put("/{id}/pay", s.handlePayBill)
				r.Delete("/{id}", s.handleDeleteBill)
			})
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", s.handleListNotifications)
				r.Put("/read-all", s.handleMarkAllNotificationsRead)
				r.Put("/{id}/read", s.handleMarkNotificationRead)
				r.Delete("/{id}", s.handleDeleteNotification)
			})
			r.Get("/dashboard/summary", s.handleDashboardSummary)
		})
	})

	return r
}

func handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).Warn("Rate limit exceeded", log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.").Write(w)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().
		With("status", "ok").
		With("timestamp", time.Now().UTC().Format(time.RFC3339)).
		With("uptime", time.Since(s.started).Round(time.Second).String()).
		Write(w)
}

// handleReady checks the store and reports middleware counters.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status, code := "ready", http.StatusOK
	checks := map[string]any{
		"rate_limiter": map[string]any{
			"active_clients": s.limiter.ActiveClients(),
			"rejected":       s.limiter.Rejected(),
		},
		"requests": map[string]any{
			"total":         s.tracer.Metrics().TotalRequests,
			"server_errors": s.tracer.Metrics().ServerErrors,
			"suspicious":    s.detector.Suspicious(),
		},
	}

	switch {
	case s.ready == nil:
		checks["store"] = "not_configured"
		status, code = "not_ready", http.StatusServiceUnavailable
	default:
		if err := s.ready(ctx); err != nil {
			s.logger.Warn("Readiness check failed", log.FieldError, err)
			checks["store"] = "failed"
			status, code = "not_ready", http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
		}
	}

	NewJSONResponse().
		Status(code).
		With("status", status).
		With("timestamp", time.Now().UTC().Format(time.RFC3339)).
		With("checks", checks).
		Write(w)
}

// Shutdown stops accepting requests and releases the rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// location is the timezone date-only inputs are interpreted in.
func (s *Server) location() *time.Location {
	return s.clock.Now().Location()
}
