// Package server provides the HTTP server for the signtutor practice system.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/signtutor/internal/capture"
	"github.com/ayusman/signtutor/internal/metrics"
	"github.com/ayusman/signtutor/internal/refs"
	"github.com/ayusman/signtutor/internal/server/api"
	"github.com/ayusman/signtutor/internal/session"
	"github.com/ayusman/signtutor/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Library   *refs.Library
	Session   *session.Session
	Camera    capture.Camera
	Metrics   *metrics.Manager
	Scores    *ScoresHandler
}

// Server represents the HTTP server for the signtutor application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Library != nil {
		lettersHandler := api.NewLettersHandler(s.config.Store, s.config.Library)

		// Route /api/letters/{L}/samples and /api/letters/{L}/train to the
		// samples handler, everything else under /api/letters to letters.
		letterRouter := http.Handler(lettersHandler)
		if s.config.Store != nil {
			samplesHandler := api.NewSamplesHandler(s.config.Store, s.config.Library)
			letterRouter = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if strings.HasSuffix(r.URL.Path, "/samples") || strings.HasSuffix(r.URL.Path, "/train") {
					samplesHandler.ServeHTTP(w, r)
					return
				}
				lettersHandler.ServeHTTP(w, r)
			})
		}

		s.mux.Handle("/api/letters", letterRouter)
		s.mux.Handle("/api/letters/", letterRouter)
	}

	if s.config.Session != nil {
		sessionHandler := api.NewSessionHandler(s.config.Session, s.config.Store)
		s.mux.Handle("/api/session", sessionHandler)
		s.mux.Handle("/api/session/", sessionHandler)
	}

	// Live score feed over WebSocket
	if s.config.Scores != nil {
		s.mux.Handle("/api/scores", s.config.Scores)
	}

	// Camera preview stream
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	if s.config.Metrics != nil {
		s.mux.Handle("/metrics", s.config.Metrics.Handler())
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
