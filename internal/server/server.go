// Package server is a small in-memory products API implementing the
// /api/products contract the catalog client consumes. It backs
// `catalog serve` and the end-to-end tests.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 5 * time.Second

// NewRouter wires the products routes on a chi router
func NewRouter(repo ProductRepository, logger *zap.Logger) http.Handler {
	products := NewProductHandler(repo, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", products.ListProducts)
		r.Post("/", products.CreateProduct)
		r.Get("/{productId}", products.GetProduct)
		r.Put("/{productId}", products.UpdateProduct)
		r.Delete("/{productId}", products.DeleteProduct)
	})

	return r
}

// Server represents the demo products server
type Server struct {
	addr       string
	logger     *zap.Logger
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{}
}

// New creates a server that will listen on addr (host:port; port 0 picks a free one)
func New(addr string, repo ProductRepository, logger *zap.Logger) *Server {
	return &Server{
		addr:   addr,
		logger: logger,
		httpServer: &http.Server{
			Handler:      NewRouter(repo, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.logger.Info("server listening", zap.String("address", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the server down and waits for the serve loop to exit
func (s *Server) Stop() error {
	if s.listener == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	<-s.done
	s.listener = nil
	s.logger.Info("server stopped")
	return err
}

// Run starts the server and blocks until ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.logger.Info("shutting down server")
	return s.Stop()
}

// URL returns the base URL of a started server
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}
