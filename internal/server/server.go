// Package server provides the HTTP REST API for the policy checker.
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

	"github.com/rs/zerolog/log"

	"github.com/jonathan/policy-card/internal/cache"
	"github.com/jonathan/policy-card/internal/card"
	"github.com/jonathan/policy-card/internal/fetch"
	"github.com/jonathan/policy-card/internal/llm"
	"github.com/jonathan/policy-card/internal/pipeline"
	"github.com/jonathan/policy-card/internal/resolver"
	"github.com/jonathan/policy-card/internal/summary"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	checker    *pipeline.Checker
	cards      *card.Store
	llmClient  llm.Client
}

// Config holds server configuration
type Config struct {
	Port       int
	APIKey     string
	CacheTTL   time.Duration
	UseBrowser bool
	UserAgent  string
}

// New creates a new server instance wired to the real resolver and Gemini
// summarizer.
func New(cfg Config) (*Server, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	fetchOpts := fetch.DefaultOptions()
	if cfg.UserAgent != "" {
		fetchOpts.UserAgent = cfg.UserAgent
	}

	res := resolver.New(&resolver.Options{
		Fetch:      fetchOpts,
		UseBrowser: cfg.UseBrowser,
	})

	client, err := llm.NewClient(context.Background(), nil, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	summarizer, err := summary.NewSummarizer(client)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}

	checker := pipeline.NewChecker(res, summarizer, cache.NewMemory[*pipeline.Result](cfg.CacheTTL))

	s := NewWithChecker(cfg, checker)
	s.llmClient = client
	return s, nil
}

// NewWithChecker creates a server around an existing checker. Used by New and
// by tests that substitute the summarization collaborator.
func NewWithChecker(cfg Config, checker *pipeline.Checker) *Server {
	s := &Server{
		checker: checker,
		cards:   card.NewStore(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /check", s.handleCheck)
	mux.HandleFunc("POST /check/stream", s.handleCheckStream)
	mux.HandleFunc("POST /cards", s.handleSaveCard)
	mux.HandleFunc("GET /cards/{id}", s.handleGetCard)
	mux.HandleFunc("GET /health", s.handleHealth)

	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.withLogging(s.withCORS(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}

	log.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
