package proxy

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lepenai/lepen-backend/internal/config"
	"github.com/lepenai/lepen-backend/internal/gemini"
	"github.com/lepenai/lepen-backend/internal/health"
	"github.com/lepenai/lepen-backend/internal/relay"
)

// Server is the relay HTTP server.
type Server struct {
	httpServer *http.Server
}

// New constructs a Server from the given config.
func New(cfg *config.Config) *Server {
	client := gemini.NewClient(cfg.BaseURL, cfg.APIKey, cfg.RequestTimeout)
	tracker := health.NewTracker()

	healthHandler := health.NewHandler(tracker, cfg.ServiceName)
	relayHandler := relay.NewHandler(client, cfg.ChatModel, cfg.ImageModel)

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/ping", healthHandler.Ping).Methods(http.MethodGet)
	r.HandleFunc("/api/keepalive", healthHandler.Keepalive).Methods(http.MethodGet)
	r.HandleFunc("/api/chat", relayHandler.Chat).Methods(http.MethodPost)
	r.HandleFunc("/api/generate-image", relayHandler.GenerateImage).Methods(http.MethodPost)
	r.HandleFunc("/api/web-search", relayHandler.WebSearch).Methods(http.MethodPost)
	r.HandleFunc("/api/map-search", relayHandler.MapSearch).Methods(http.MethodPost)

	// corsMiddleware sits inside warmup/logging so that preflights are still
	// logged and counted as activity.
	var handler http.Handler = r
	handler = corsMiddleware(handler)
	handler = warmupMiddleware(tracker, handler)
	handler = loggingMiddleware(handler)
	handler = recoveryMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: handler,
			// No WriteTimeout: the chat endpoint holds the response open
			// for as long as the upstream keeps streaming.
			ReadTimeout: 30 * time.Second,
			IdleTimeout: 60 * time.Second,
		},
	}
}

// Start begins listening and blocks until the server is stopped.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Handler returns the underlying http.Handler (for use in tests with httptest.NewServer).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
