// Package server exposes the filtered list pages as a small JSON relay.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cristianoliveira/folio/internal/api"
	"github.com/cristianoliveira/folio/internal/contact"
	"github.com/cristianoliveira/folio/internal/core"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

const shutdownTimeout = 5 * time.Second

// Server holds the relay dependencies and router.
type Server struct {
	Pages  *core.Pages
	Repo   domain.ContentRepository
	Router chi.Router
}

// New creates a Server with a fully configured chi router.
func New(repo domain.ContentRepository, pages *core.Pages) *Server {
	s := &Server{Pages: pages, Repo: repo}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.ListPage(domain.PageProjects))
		r.Get("/projects/{slug}", s.GetProject)
		r.Get("/experience", s.ListPage(domain.PageExperience))
		r.Get("/education", s.ListPage(domain.PageEducation))
		r.Get("/maintenance", s.GetMaintenance)
		r.Post("/contact", s.PostContact)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, ErrorResponse(http.StatusNotFound, "route not found"))
	})

	s.Router = r
	return s
}

// ServeHTTP lets a Server be used as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.Info("relay listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info("relay shutting down", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	}
}

// Health returns a simple health-check response.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListPage returns the handler of a list endpoint. Query parameters are
// those of `folio list`: search (or q), type, technology, featured, sort, order.
func (s *Server) ListPage(page domain.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := domain.FiltersFromQuery(r.URL.Query())
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, ErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		listing, err := s.Pages.Listing(r.Context(), page, filters)
		if err != nil {
			writeError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, SuccessResponse(ListResult{
			Items:  listing.Items,
			Facets: listing.Facets,
			Total:  listing.Total,
		}))
	}
}

// GetProject returns a single project by slug.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.Repo.Project(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SuccessResponse(project))
}

// GetMaintenance returns the live maintenance status.
func (s *Server) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	status, err := s.Repo.Maintenance(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SuccessResponse(status))
}

// PostContact validates and forwards a contact message.
func (s *Server) PostContact(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := decodeJSON(r, &msg); err != nil {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}
	if err := contact.Submit(r.Context(), s.Repo, msg); err != nil {
		writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SuccessResponse(map[string]string{"message": contact.SuccessMessage}))
}

// writeError maps upstream and validation failures onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	var se *api.StatusError
	switch {
	case errors.Is(err, contact.ErrInvalid):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, api.ErrNotFound):
		status = http.StatusNotFound
		message = api.Detail(err, "not found")
	case errors.Is(err, api.ErrUnavailable):
		status = http.StatusBadGateway
		message = "portfolio API unavailable"
	case errors.As(err, &se):
		status = http.StatusBadGateway
		message = api.Detail(err, message)
	}
	logging.Warn("relay request failed",
		"request_id", middleware.GetReqID(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"err", err)
	WriteJSON(w, status, ErrorResponse(status, message))
}
