// Package api exposes table sessions over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mwantia/govportal/internal/session"
	"github.com/mwantia/govportal/pkg/db/store"
	"github.com/mwantia/govportal/pkg/log"
)

type Server struct {
	sessions *session.Manager
	store    store.PortalStore
	logger   log.LoggerService
}

func NewServer(sessions *session.Manager, s store.PortalStore, logger log.LoggerService) *Server {
	return &Server{
		sessions: sessions,
		store:    s,
		logger:   logger,
	}
}

// NewRouter mounts every route of the server on a chi router.
func NewRouter(srv *Server, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(srv.logRequests)

	if len(allowedOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
		})
		r.Use(c.Handler)
	}

	r.Get("/health", srv.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", srv.stats)
		r.Post("/tables/{table}/sessions", srv.createSession)

		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Get("/", srv.getSession)
			r.Delete("/", srv.deleteSession)

			r.Post("/filters", srv.applyFilters)
			r.Post("/sort", srv.sortBy)
			r.Post("/page", srv.changePage)
			r.Post("/entries", srv.setEntries)
			r.Post("/rows/{id}/select", srv.selectRow)
			r.Post("/rows/{id}/delete", srv.deleteRow)
			r.Post("/select-all", srv.selectAll)
			r.Post("/bulk", srv.bulk)
			r.Post("/reload", srv.reload)
		})
	})

	return r
}

func (srv *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		srv.logger.Debug("%s %s -> %d", r.Method, r.URL.Path, ww.Status())
	})
}
