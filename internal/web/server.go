// Package web serves the task list as an HTML page and a small JSON API.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dohr-michael/tasklist/internal/tasks"
)

// Server is the tasklist HTTP server.
type Server struct {
	httpServer *http.Server
	ctrl       *tasks.Controller
	pages      *pages
}

// NewServer creates a server for ctrl listening on host:port.
func NewServer(ctrl *tasks.Controller, host string, port int) *Server {
	s := &Server{
		ctrl:  ctrl,
		pages: newPages(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	// HTML surface
	r.Get("/", s.handleIndex)
	r.Post("/tasks", s.handleCreate)
	r.Route("/tasks/{id}", func(r chi.Router) {
		r.Get("/edit", s.handleEditForm)
		r.Post("/edit", s.handleEdit)
		r.Get("/delete", s.handleDeleteConfirm)
		r.Post("/delete", s.handleDelete)
	})
	r.Get("/clear", s.handleClearConfirm)
	r.Post("/clear", s.handleClear)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/tasks", s.apiList)
		r.Post("/tasks", s.apiCreate)
		r.Delete("/tasks", s.apiClear)
		r.Put("/tasks/{id}", s.apiRename)
		r.Delete("/tasks/{id}", s.apiDelete)
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Listen binds the configured address without serving yet.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return ln, nil
}

// Serve handles requests on ln. It blocks until the server is stopped.
func (s *Server) Serve(ln net.Listener) error {
	slog.Info("tasklist web listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"tasks":  s.ctrl.Len(),
	})
}

// requestLogger logs one line per request with slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
