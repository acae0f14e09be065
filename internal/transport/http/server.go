package http

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"

	"gigtix/internal/service"
)

type Server struct {
	srv *http.Server
}

// NewRouter wires the ticket endpoints behind a permissive CORS allowance;
// the frontend is served from a different origin.
func NewRouter(svc service.TicketService) http.Handler {
	mux := http.NewServeMux()
	h := NewHandler(svc)
	h.Register(mux)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}

func NewServer(addr string, svc service.TicketService) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      NewRouter(svc),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
