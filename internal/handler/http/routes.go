package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-hds-keeper/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/version/info", h.getServerInfo)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/records/{recordType}", func(r chi.Router) {
			r.Post("/", h.createRecord)
			r.Get("/search", h.searchRecords)
			r.Put("/{id}", h.updateRecord)
			r.Get("/{id}", h.getRecord)
			r.Delete("/{id}", h.deleteRecord)
			r.Get("/{id}/diagnostics", h.diagnoseRecord)
		})

		r.Route("/api/compliance", func(r chi.Router) {
			r.Get("/status", h.complianceStatus)
			r.Get("/audit", h.auditTrail)
			r.Post("/audit/sync", h.syncAudit)
		})
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return router
}
