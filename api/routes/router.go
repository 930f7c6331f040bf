package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marqenbd/marqen-backend/api/controllers"
	"github.com/marqenbd/marqen-backend/api/middleware"
	cartsvc "github.com/marqenbd/marqen-backend/internal/cart"
	catalogsvc "github.com/marqenbd/marqen-backend/internal/catalog"
	checkoutsvc "github.com/marqenbd/marqen-backend/internal/checkout"
	dashboardsvc "github.com/marqenbd/marqen-backend/internal/dashboard"
	notifysvc "github.com/marqenbd/marqen-backend/internal/notify"
	ordersvc "github.com/marqenbd/marqen-backend/internal/orders"
	pixelsvc "github.com/marqenbd/marqen-backend/internal/pixel"
	"github.com/marqenbd/marqen-backend/pkg/config"
	"github.com/marqenbd/marqen-backend/pkg/logger"
)

// Services bundles everything the router hands to its controllers.
type Services struct {
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Catalog   catalogsvc.Service
	Dashboard dashboardsvc.Service
	Notify    notifysvc.Service
	Pixel     pixelsvc.Service
	Snapshots ordersvc.SnapshotService
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// The original email route path is kept as-is for the storefront.
	r.Post("/api/send-order-email", controllers.SendOrderEmail(svcs.Notify, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartToken(logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Patch("/items", controllers.CartUpdateQuantity(svcs.Cart, logg))
			r.Delete("/items", controllers.CartRemoveItem(svcs.Cart, logg))
			r.Put("/shipping-location", controllers.CartSetShipping(svcs.Cart, logg))
			r.Put("/direct-purchase", controllers.CartSetDirectPurchase(svcs.Cart, logg))
		})

		r.Post("/promo/apply", controllers.PromoApply(logg))
		r.Post("/checkout", controllers.CheckoutSubmit(svcs.Checkout, logg))
		r.Get("/orders/last", controllers.OrdersLast(svcs.Snapshots, logg))

		r.Get("/products", controllers.ProductsList(svcs.Catalog, logg))
		r.Get("/products/{slugID}", controllers.ProductDetail(svcs.Catalog, logg))
		r.Get("/flash-sale", controllers.FlashSaleList(svcs.Catalog, logg))
		r.Get("/bestsellers", controllers.BestsellersList(svcs.Catalog, logg))

		r.Get("/dashboard/order-stats", controllers.DashboardOrderStats(svcs.Dashboard, logg))

		r.Post("/track", controllers.TrackEvent(svcs.Pixel, logg))
	})

	return r
}
