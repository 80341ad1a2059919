// Package server provides the HTTP REST API for the CV tailoring service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/cv-tailor/internal/extraction"
	"github.com/jonathan/cv-tailor/internal/ingestion"
	"github.com/jonathan/cv-tailor/internal/ratelimit"
	"github.com/jonathan/cv-tailor/internal/rendering"
	"github.com/jonathan/cv-tailor/internal/tailoring"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Extractor is the keyword extraction surface the server depends on.
type Extractor interface {
	ExtractInto(ctx context.Context, job *types.JobDescription)
	ExtractBatch(ctx context.Context, items []extraction.BatchItem) []extraction.BatchResult
}

// Tailorer is the content tailoring surface the server depends on.
type Tailorer interface {
	TailorCV(ctx context.Context, profile *types.UserProfile, job *types.JobDescription) (*types.TailoredCV, error)
	Optimize(ctx context.Context, cv *types.TailoredCV, job *types.JobDescription, targetScore int) *tailoring.OptimizeResult
}

// DocumentRenderer is the rendering surface the server depends on.
type DocumentRenderer interface {
	Render(ctx context.Context, req *types.RenderRequest) (*types.RenderResult, error)
	RenderAll(ctx context.Context, req *types.RenderRequest, templates []string) []rendering.MultiResult
}

// Config holds server settings.
type Config struct {
	Addr string
	// ArtifactDir is where render jobs export PDFs, served by /artifacts.
	ArtifactDir string
	// TargetScore is the relevance score the optimize pass aims for.
	TargetScore int
}

// Server wires the pipeline stages behind a REST API.
type Server struct {
	httpServer  *http.Server
	extractor   Extractor
	tailor      Tailorer
	renderer    DocumentRenderer
	fetcher     ingestion.PostingFetcher
	limiter     *ratelimit.Limiter
	artifactDir string
	targetScore int
}

// New creates a server over the given pipeline stages. The fetcher may be
// nil, which disables URL ingestion.
func New(cfg Config, extractor Extractor, tailor Tailorer, renderer DocumentRenderer,
	fetcher ingestion.PostingFetcher, limiter *ratelimit.Limiter) *Server {

	s := &Server{
		extractor:   extractor,
		tailor:      tailor,
		renderer:    renderer,
		fetcher:     fetcher,
		limiter:     limiter,
		artifactDir: cfg.ArtifactDir,
		targetScore: cfg.TargetScore,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// routes builds the handler chain: rate limiting outermost, then logging and
// CORS, then the method-scoped mux.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /extract/batch", s.handleExtractBatch)
	mux.HandleFunc("POST /ingest/url", s.handleIngestURL)
	mux.HandleFunc("POST /tailor", s.handleTailor)
	mux.HandleFunc("POST /optimize", s.handleOptimize)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /render/multi", s.handleRenderMulti)
	mux.HandleFunc("GET /templates", s.handleTemplates)
	mux.HandleFunc("GET /artifacts/{id}", s.handleArtifact)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start listens for requests until an interrupt or SIGTERM arrives, then
// shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
