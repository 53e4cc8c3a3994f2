package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/webjhones/requirements-intake/internal/catalog"
	"github.com/webjhones/requirements-intake/internal/config"
	"github.com/webjhones/requirements-intake/internal/db"
	"github.com/webjhones/requirements-intake/internal/export"
	"github.com/webjhones/requirements-intake/internal/intake"
	"github.com/webjhones/requirements-intake/internal/rendering"
	"github.com/webjhones/requirements-intake/internal/server/middleware"
	"github.com/webjhones/requirements-intake/internal/server/ratelimit"
)

// DBClient is the storage used for finished intakes and admin accounts.
type DBClient interface {
	Ping(ctx context.Context) error
	Close()
	SaveSubmission(ctx context.Context, c intake.Completion) (*db.Submission, error)
	GetSubmission(ctx context.Context, id uuid.UUID) (*db.Submission, error)
	ListSubmissions(ctx context.Context, filter db.SubmissionFilter) ([]db.Submission, error)
	GetAdminByEmail(ctx context.Context, email string) (*db.Admin, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*db.Admin, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	catalog     *catalog.Catalog
	renderer    *rendering.Renderer
	exporter    *export.Exporter
	db          DBClient
	sessions    *sessionRegistry
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler
	adminSvc    *AdminService
	origins     []string
	now         func() time.Time
}

// Config holds server configuration
type Config struct {
	Port           int
	AllowedOrigins []string
	SessionTTL     time.Duration
	MaxSessions    int
	RateLimit      *ratelimit.Config
}

// Dependencies are the collaborators a server is built from. DB may be nil,
// in which case finished intakes are not stored and the admin endpoints
// answer 503. JWT and Passwords are required together with DB.
type Dependencies struct {
	Catalog   *catalog.Catalog
	Renderer  *rendering.Renderer
	Exporter  *export.Exporter
	DB        DBClient
	JWT       *JWTService
	Passwords *config.PasswordConfig
}

// New creates a new server instance
func New(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Catalog == nil || deps.Renderer == nil || deps.Exporter == nil {
		return nil, errors.New("server: catalog, renderer and exporter are required")
	}
	if deps.DB != nil && (deps.JWT == nil || deps.Passwords == nil) {
		return nil, errors.New("server: admin authentication must be configured with a database")
	}

	s := &Server{
		catalog:     deps.Catalog,
		renderer:    deps.Renderer,
		exporter:    deps.Exporter,
		db:          deps.DB,
		sessions:    newSessionRegistry(deps.Catalog, cfg.MaxSessions, cfg.SessionTTL),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		jwtService:  deps.JWT,
		origins:     cfg.AllowedOrigins,
		now:         time.Now,
	}
	if deps.DB != nil {
		s.adminSvc = NewAdminService(deps.DB, deps.Passwords)
		s.authHandler = NewAuthHandler(s.adminSvc, deps.JWT)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Catalog
	mux.HandleFunc("GET /services", s.handleListServices)
	mux.HandleFunc("GET /services/{id}/questions", s.handleServiceQuestions)

	// Wizard sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /sessions/{id}/profile", s.handleSubmitProfile)
	mux.HandleFunc("POST /sessions/{id}/service", s.handleSelectService)
	mux.HandleFunc("DELETE /sessions/{id}/service", s.handleBackToServices)
	mux.HandleFunc("PUT /sessions/{id}/answers/{question_id}", s.handleAnswer)
	mux.HandleFunc("POST /sessions/{id}/answers/{question_id}/toggle", s.handleToggle)
	mux.HandleFunc("POST /sessions/{id}/advance", s.handleAdvance)
	mux.HandleFunc("POST /sessions/{id}/retreat", s.handleRetreat)
	mux.HandleFunc("POST /sessions/{id}/jump", s.handleJump)
	mux.HandleFunc("POST /sessions/{id}/restart", s.handleRestart)

	// Summary and exports
	mux.HandleFunc("GET /sessions/{id}/summary", s.handleSummary)
	mux.HandleFunc("GET /sessions/{id}/summary.html", s.handleSummaryHTML)
	mux.HandleFunc("GET /sessions/{id}/export", s.handleExportBundle)
	mux.HandleFunc("GET /sessions/{id}/export/pdf", s.handleExportPDF)
	mux.HandleFunc("GET /sessions/{id}/export/mailto", s.handleExportMailto)
	mux.HandleFunc("GET /sessions/{id}/export/whatsapp", s.handleExportWhatsApp)

	// Admin
	mux.HandleFunc("POST /admin/login", s.handleAdminLogin)
	mux.Handle("GET /admin/submissions", s.requireAdmin(s.handleListSubmissions))
	mux.Handle("GET /admin/submissions/{id}", s.requireAdmin(s.handleGetSubmission))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second, // PDF rendering
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.close()
		return fmt.Errorf("server error: %w", err)
	}
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.close()
	log.Info().Msg("server stopped")
	return nil
}

// close releases the rate limiter and the database pool.
func (s *Server) close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withCORS adds CORS headers. With no configured origins any origin is allowed.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.origins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.origins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		event := log.Info()
		if rec.status >= http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	database := "disabled"
	if s.db != nil {
		database = "ok"
		if err := s.db.Ping(r.Context()); err != nil {
			log.Warn().Err(err).Msg("database ping failed")
			database = "unavailable"
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"database":    database,
		"sessions":    s.sessions.len(),
		"pdf_enabled": s.exporter.PDFEnabled(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message)
}

// failure maps err to its status code and writes it. Server errors are
// logged and replaced by a generic message.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		if status == http.StatusInternalServerError {
			s.errorResponse(w, status, "internal server error")
			return
		}
	}

	var profileErr *intake.ProfileError
	if errors.As(err, &profileErr) {
		s.jsonResponse(w, status, map[string]any{
			"error":   err.Error(),
			"missing": profileErr.Missing,
			"invalid": profileErr.Invalid,
		})
		return
	}
	s.errorResponse(w, status, err.Error())
}

// requireAdmin guards an admin endpoint with bearer authentication and
// checks that the admin still exists.
func (s *Server) requireAdmin(next http.HandlerFunc) http.Handler {
	if s.db == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.failure(w, r, &ErrNotConfigured{Feature: "persistence"})
		})
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID, err := middleware.GetAdminID(r)
			if err != nil {
				s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, err := s.adminSvc.Authorize(r.Context(), adminID); err != nil {
				s.failure(w, r, err)
				return
			}
			next(w, r)
		}),
	)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Warn().
		Str("client", clientID).
		Int("limit", info.Limit).
		Time("reset_at", info.ResetTime).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
