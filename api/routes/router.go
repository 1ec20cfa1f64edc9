package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sgiordano/ventapos-backend/api/controllers"
	"github.com/sgiordano/ventapos-backend/api/middleware"
	"github.com/sgiordano/ventapos-backend/internal/registers"
	"github.com/sgiordano/ventapos-backend/internal/sales"
	"github.com/sgiordano/ventapos-backend/pkg/config"
	"github.com/sgiordano/ventapos-backend/pkg/db"
	"github.com/sgiordano/ventapos-backend/pkg/logger"
	"github.com/sgiordano/ventapos-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	salesService *sales.Service,
	registersService *registers.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.TenantContext(logg))

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.PostSale(salesService, logg))
			r.Get("/", controllers.ListSales(salesService, logg))
			r.Get("/{saleId}", controllers.GetSale(salesService, logg))
		})

		r.Route("/registers", func(r chi.Router) {
			r.Post("/open", controllers.OpenRegister(registersService, logg))
			r.Post("/{sessionId}/close", controllers.CloseRegister(registersService, logg))
		})
	})

	return r
}
