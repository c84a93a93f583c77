package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novamart/orderhub-backend/api/controllers"
	"github.com/novamart/orderhub-backend/api/middleware"
	internalauth "github.com/novamart/orderhub-backend/internal/auth"
	"github.com/novamart/orderhub-backend/internal/inventory"
	"github.com/novamart/orderhub-backend/internal/orders"
	"github.com/novamart/orderhub-backend/internal/search"
	pkgauth "github.com/novamart/orderhub-backend/pkg/auth"
	"github.com/novamart/orderhub-backend/pkg/config"
	"github.com/novamart/orderhub-backend/pkg/db"
	"github.com/novamart/orderhub-backend/pkg/logger"
	"github.com/novamart/orderhub-backend/pkg/metrics"
	"github.com/novamart/orderhub-backend/pkg/redis"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Metrics     *metrics.HTTPMetrics
	MetricsHTTP http.Handler

	AuthService      internalauth.Service
	OrdersService    orders.Service
	InventoryService inventory.Service
	SearchService    search.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})

	if d.MetricsHTTP == nil {
		d.MetricsHTTP = promhttp.Handler()
	}
	r.Handle("/metrics", d.MetricsHTTP)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
			Post("/login", controllers.Login(d.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(d.OrdersService, logg))
			r.Get("/{id}", controllers.GetOrder(d.OrdersService, logg))
			r.Patch("/{id}", controllers.UpdateOrder(d.OrdersService, logg))
			r.With(middleware.RequireRole(logg, pkgauth.RoleAdmin, pkgauth.RoleManager)).
				Delete("/{id}", controllers.DeleteOrder(d.OrdersService, logg))

			// stored-procedure surface
			r.Post("/proc", controllers.CreateOrderProc(d.OrdersService, logg))
			r.Get("/proc/{id}", controllers.GetOrderProc(d.OrdersService, logg))
			r.Post("/proc/{id}/status", controllers.UpdateOrderStatus(d.OrdersService, logg))
			r.With(middleware.RequireRole(logg, pkgauth.RoleAdmin)).
				Delete("/proc/{id}", controllers.DeleteOrderProc(d.OrdersService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Post("/", controllers.CreateInventoryItem(d.InventoryService, logg))
				r.Get("/", controllers.ListInventoryItems(d.InventoryService, logg))
				r.Get("/{id}", controllers.GetInventoryItem(d.InventoryService, logg))
				r.Put("/{id}", controllers.UpdateInventoryItem(d.InventoryService, logg))
				r.With(middleware.RequireRole(logg, pkgauth.RoleAdmin, pkgauth.RoleManager)).
					Delete("/{id}", controllers.DeleteInventoryItem(d.InventoryService, logg))
			})
			r.Route("/stocks", func(r chi.Router) {
				r.Post("/", controllers.CreateInventoryStock(d.InventoryService, logg))
				r.Get("/", controllers.ListInventoryStocks(d.InventoryService, logg))
				r.Get("/{id}", controllers.GetInventoryStock(d.InventoryService, logg))
				r.Put("/{id}", controllers.UpdateInventoryStock(d.InventoryService, logg))
				r.With(middleware.RequireRole(logg, pkgauth.RoleAdmin, pkgauth.RoleManager)).
					Delete("/{id}", controllers.DeleteInventoryStock(d.InventoryService, logg))
			})
		})

		r.Get("/search", controllers.SearchItems(d.SearchService, logg))
	})

	return r
}
