package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jana-studio/taller/internal/budgets"
	"github.com/jana-studio/taller/internal/catalog/materials"
	"github.com/jana-studio/taller/internal/catalog/products"
	"github.com/jana-studio/taller/internal/clients"
	"github.com/jana-studio/taller/internal/document"
	"github.com/jana-studio/taller/internal/ledger"
	"github.com/jana-studio/taller/internal/observability"
	"github.com/jana-studio/taller/internal/settings"
	"github.com/jana-studio/taller/internal/storefront"
	"github.com/jana-studio/taller/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	MaterialsHandler  *materials.Handler
	ProductsHandler   *products.Handler
	ClientsHandler    *clients.Handler
	BudgetsHandler    *budgets.Handler
	LedgerHandler     *ledger.Handler
	DocumentHandler   *document.Handler
	SettingsHandler   *settings.Handler
	StorefrontHandler *storefront.Handler
	JobsHandler       *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/catalog/materials", params.MaterialsHandler.MountRoutes)
	r.Route("/catalog/products", params.ProductsHandler.MountRoutes)
	r.Route("/clients", params.ClientsHandler.MountRoutes)
	r.Route("/budgets", params.BudgetsHandler.MountRoutes)
	r.Route("/ledger", params.LedgerHandler.MountRoutes)
	r.Route("/documents", params.DocumentHandler.MountRoutes)
	r.Route("/settings", params.SettingsHandler.MountRoutes)
	r.Route("/store", params.StorefrontHandler.MountRoutes)

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
