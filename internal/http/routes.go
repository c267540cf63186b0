package httpx

import (
	"log/slog"
	"net/http"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Services *service.Services
	// Health probes keyed by dependency name, reported on /healthz.
	Health map[string]HealthCheck
	Logger *slog.Logger
}

// NewRouter creates the JSON API router wrapped in the standard middleware.
func NewRouter(rs RouterServices) http.Handler {
	logger := rs.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	svc := rs.Services

	registerResourceRoutes(mux, "/api/jobs", &ResourceHandlers[*model.Job]{
		Name: "job", Svc: svc.Jobs, Logger: logger,
	})
	registerResourceRoutes(mux, "/api/invoices", &ResourceHandlers[*model.Invoice]{
		Name: "invoice", Svc: svc.Invoices, Logger: logger,
	})
	registerResourceRoutes(mux, "/api/transactions", &ResourceHandlers[*model.Transaction]{
		Name: "transaction", Svc: svc.Transactions, Logger: logger,
	})
	registerResourceRoutes(mux, "/api/gallery", &ResourceHandlers[*model.GalleryImage]{
		Name: "gallery image", Svc: svc.Gallery, Logger: logger,
	})

	dh := &DomainHandlers{Svc: svc, Logger: logger}
	mux.HandleFunc("POST /api/jobs/{id}/assignment", dh.JobAssignment)
	mux.HandleFunc("POST /api/invoices/{id}/payments", dh.RecordPayment)
	mux.HandleFunc("GET /api/invoices/stats", dh.InvoiceStats)
	mux.HandleFunc("GET /api/transactions/summary", dh.TransactionSummary)
	mux.HandleFunc("GET /api/gallery/categories", dh.GalleryCategories)
	mux.HandleFunc("GET /api/dashboard", dh.Dashboard)

	health := healthHandler(rs.Health)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)

	return Chain(mux, Recover(logger), RequestID(), Logging(logger))
}

func registerResourceRoutes[T model.Resource](mux *http.ServeMux, base string, h *ResourceHandlers[T]) {
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("POST "+base+"/validate", h.Validate)
	mux.HandleFunc("GET "+base+"/stream", h.Stream)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PATCH "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}
