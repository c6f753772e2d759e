// Package server provides the HTTP API for resume analysis, interview practice
// and the optional persisted dashboard.
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
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/metrics"
	"github.com/jonathan/career-coach/internal/oracle"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store is the persistence used by the authenticated routes. *db.DB implements it.
type Store interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*db.Dashboard, error)
	CreateResume(ctx context.Context, userID uuid.UUID, input *db.ResumeInput) (*db.Resume, error)
	GetResume(ctx context.Context, userID, id uuid.UUID) (*db.Resume, error)
	CreateInterview(ctx context.Context, userID uuid.UUID, req *types.QuestionRequest, questions []types.GeneratedQuestion) (*db.Interview, error)
	GetInterview(ctx context.Context, userID, id uuid.UUID) (*db.Interview, error)
	GetQuestion(ctx context.Context, interviewID, questionID uuid.UUID) (*db.InterviewQuestion, error)
	CreateResponse(ctx context.Context, questionID uuid.UUID, responseText string, analysis *types.ResponseAnalysis) (*db.InterviewResponse, error)
	CompleteInterview(ctx context.Context, userID, id uuid.UUID) (*db.Interview, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*db.Profile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, input *db.ProfileInput) (*db.Profile, error)
}

// maxBodyBytes bounds request bodies; resumes are plain text or small HTML.
const maxBodyBytes = 2 << 20

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	oracle          oracle.Oracle
	store           Store
	jwtService      *JWTService
	rateLimiter     *ratelimit.Limiter
	logger          *zap.Logger
	shutdownTimeout time.Duration
	onShutdown      []func()
}

// Config holds server dependencies and listener settings
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	Oracle      oracle.Oracle
	Store       Store             // nil disables the authenticated routes
	JWT         *config.JWTConfig // required when Store is set
	RateLimiter *ratelimit.Limiter
	Logger      *zap.Logger

	// OnShutdown runs after the listener has drained, in order.
	OnShutdown []func()
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Oracle == nil {
		return nil, fmt.Errorf("server requires an oracle")
	}
	if cfg.Store != nil && cfg.JWT == nil {
		return nil, fmt.Errorf("server requires a JWT configuration when persistence is enabled")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}

	s := &Server{
		oracle:          cfg.Oracle,
		store:           cfg.Store,
		rateLimiter:     limiter,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
		onShutdown:      cfg.OnShutdown,
	}
	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Analysis endpoints
	mux.HandleFunc("POST /analyze-resume", s.handleAnalyzeResume)
	mux.HandleFunc("POST /analyze-interview-response", s.handleAnalyzeResponse)
	mux.HandleFunc("POST /generate-interview-questions", s.handleGenerateQuestions)
	mux.HandleFunc("POST /optimize-resume", s.handleOptimizeResume)

	// Authenticated persistence endpoints
	if s.store != nil {
		auth := middleware.RequireUser(s.jwtService, s.logger)
		mux.Handle("GET /dashboard", auth(http.HandlerFunc(s.handleDashboard)))
		mux.Handle("POST /resumes", auth(http.HandlerFunc(s.handleCreateResume)))
		mux.Handle("GET /resumes/{id}", auth(http.HandlerFunc(s.handleGetResume)))
		mux.Handle("POST /interviews", auth(http.HandlerFunc(s.handleCreateInterview)))
		mux.Handle("GET /interviews/{id}", auth(http.HandlerFunc(s.handleGetInterview)))
		mux.Handle("POST /interviews/{id}/responses", auth(http.HandlerFunc(s.handleCreateResponse)))
		mux.Handle("POST /interviews/{id}/complete", auth(http.HandlerFunc(s.handleCompleteInterview)))
		mux.Handle("GET /profile", auth(http.HandlerFunc(s.handleGetProfile)))
		mux.Handle("PUT /profile", auth(http.HandlerFunc(s.handleUpdateProfile)))
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      middleware.RequestID(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting",
			zap.String("addr", ln.Addr().String()),
			zap.String("oracle", s.oracle.Name()),
			zap.Bool("persistence", s.store != nil))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		err := s.httpServer.Shutdown(shutdownCtx)

		// Stop rate limiter cleanup goroutine
		s.rateLimiter.Stop()
		for _, fn := range s.onShutdown {
			fn()
		}

		if err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// Access-Control headers sent on every response.
const (
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
	corsAllowMethods = "GET, POST, PUT, OPTIONS"
)

// withCORS adds CORS headers and answers preflight requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
		w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)

		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(r.Context(), clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			// CORS headers are still needed for the browser to read the 429
			w.Header().Set("Access-Control-Allow-Origin", "*")
			metrics.RateLimited.WithLabelValues(info.Rule).Inc()
			s.rateLimitResponse(w, r, info)
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

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// withLogging logs each request and records HTTP metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(r.Method, route, rec.status, elapsed)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.String("remote", r.RemoteAddr))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "oracle": s.oracle.Name()})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
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
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("client", s.extractClientID(r)),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))

	s.errorResponse(w, http.StatusTooManyRequests, msgRateLimitBody)
}
