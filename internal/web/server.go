package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ingelean/docent/internal/conversation"
	"github.com/ingelean/docent/internal/processor"
)

// Server is the thin JSON surface over the conversation and analytics
// pipelines. Session identity travels as an opaque token header; cookies,
// templating, and chart rendering live outside this process.
type Server struct {
	router  *chi.Mux
	port    int
	store   conversation.Store
	proc    *processor.Processor
	logPath string
	logger  *slog.Logger
}

func NewServer(port int, store conversation.Store, proc *processor.Processor, logPath string, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		store:   store,
		proc:    proc,
		logPath: logPath,
		logger:  logger,
	}

	router.Get("/health", s.health)
	router.Post("/api/v1/session", s.startSession)
	router.Post("/api/v1/predict", s.predict)
	router.Post("/api/v1/rate", s.rate)
	router.Get("/api/v1/dashboard", s.dashboard)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("web server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}
