package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/camila/resume-screener/internal/analysis"
	"github.com/camila/resume-screener/internal/db"
	"github.com/camila/resume-screener/internal/mailer"
	"github.com/camila/resume-screener/internal/server/middleware"
)

// Store is the persistence surface the HTTP layer needs.
type Store interface {
	CreateJobBundle(ctx context.Context, bundle db.JobBundle) (*db.JobBundleResult, error)
	GetClient(ctx context.Context, id int64) (*db.Client, error)
	ListJobsByClient(ctx context.Context, clientID int64) ([]db.Job, error)

	ListAnalyses(ctx context.Context, filter db.AnalysisFilter) ([]db.Analysis, error)

	InsertContact(ctx context.Context, c *db.Contact) error

	CreateCandidate(ctx context.Context, c *db.Candidate) (int64, error)
	GetCandidate(ctx context.Context, id int64) (*db.Candidate, error)
	GetCandidateByExternalID(ctx context.Context, externalUserID string) (*db.Candidate, error)
	UpdateCandidate(ctx context.Context, c *db.Candidate) error
	DeleteCandidate(ctx context.Context, id int64) error
	GetLevel(ctx context.Context, id int64) (*db.Level, error)
	ListLevels(ctx context.Context) ([]db.Level, error)

	EnsureUsage(ctx context.Context, candidateID int64, usageLimit int) error
	GetUsage(ctx context.Context, candidateID int64) (*db.Usage, error)
	IncreaseUsageLimit(ctx context.Context, candidateID int64, extra int) (int, error)
}

// Analyzer is the evaluation pipeline surface the HTTP layer needs.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.AnalyzeRequest) (*db.Analysis, error)
	CandidateFeedback(ctx context.Context, req analysis.CandidateFeedbackRequest) (string, error)
}

// Config holds server configuration.
type Config struct {
	Port              int
	AllowedOrigins    []string
	DefaultUsageLimit int
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	store      Store
	pipeline   Analyzer
	notifier   mailer.Notifier
	sessions   *SessionService
	logger     *zap.Logger

	allowedOrigins    []string
	defaultUsageLimit int
}

// New creates a new server instance.
func New(cfg Config, store Store, pipeline Analyzer, notifier mailer.Notifier, sessions *SessionService, logger *zap.Logger) *Server {
	s := &Server{
		store:             store,
		pipeline:          pipeline,
		notifier:          notifier,
		sessions:          sessions,
		logger:            logger,
		allowedOrigins:    cfg.AllowedOrigins,
		defaultUsageLimit: cfg.DefaultUsageLimit,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // analysis requests wait on the model provider
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler builds the full route set with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /contact", s.handleContact)

	// Protected routes
	auth := middleware.AuthMiddleware(s.sessions.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux.Handle("POST /jobs", protected(s.handleCreateJob))
	mux.Handle("GET /jobs/by-client/{id}", protected(s.handleListJobsByClient))

	mux.Handle("POST /analyze", protected(s.handleAnalyze))
	mux.Handle("GET /analyses", protected(s.handleListAnalyses))

	mux.Handle("POST /feedback", protected(s.handleCandidateFeedback))
	mux.Handle("POST /usage/upgrade", protected(s.handleUsageUpgrade))

	mux.Handle("POST /profiles", protected(s.handleCreateProfile))
	mux.Handle("PUT /profiles/{id}", protected(s.handleUpdateProfile))
	mux.Handle("DELETE /profiles/{id}", protected(s.handleDeleteProfile))
	mux.Handle("GET /levels", protected(s.handleListLevels))

	return s.withRequestID(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withRequestID tags every request with a UUID, exposed on the response
// and carried to the logging middleware.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		r.Header.Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// withLogging adds structured request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", r.Header.Get("X-Request-ID")))
	})
}

// withCORS adds CORS headers for configured origins.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response in the {"detail": message}
// wire format.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"detail": message})
}
