package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tmekonnen/stockroom-backend/api/controllers"
	"github.com/tmekonnen/stockroom-backend/api/middleware"
	authsvc "github.com/tmekonnen/stockroom-backend/internal/auth"
	"github.com/tmekonnen/stockroom-backend/internal/bills"
	"github.com/tmekonnen/stockroom-backend/internal/catalog"
	"github.com/tmekonnen/stockroom-backend/internal/customers"
	"github.com/tmekonnen/stockroom-backend/internal/deliveries"
	"github.com/tmekonnen/stockroom-backend/internal/invoices"
	"github.com/tmekonnen/stockroom-backend/internal/purchases"
	"github.com/tmekonnen/stockroom-backend/internal/sales"
	"github.com/tmekonnen/stockroom-backend/internal/users"
	"github.com/tmekonnen/stockroom-backend/internal/vendors"
	"github.com/tmekonnen/stockroom-backend/pkg/config"
	"github.com/tmekonnen/stockroom-backend/pkg/db"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
	"github.com/tmekonnen/stockroom-backend/pkg/metrics"
	"github.com/tmekonnen/stockroom-backend/pkg/redis"
)

// Services bundles every domain service the router wires up.
type Services struct {
	Auth       authsvc.Service
	Users      users.Service
	Catalog    catalog.Service
	Customers  customers.Service
	Vendors    vendors.Service
	Sales      sales.Service
	Purchases  purchases.Service
	Deliveries deliveries.Service
	Invoices   invoices.Service
	Bills      bills.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	promRegistry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequirePrivileged(logg))
			r.Post("/", controllers.CreateUser(svcs.Users, logg))
			r.Get("/", controllers.ListUsers(svcs.Users, logg))
			r.Get("/{userId}", controllers.GetUser(svcs.Users, logg))
			r.Patch("/{userId}", controllers.UpdateUser(svcs.Users, logg))
			r.Delete("/{userId}", controllers.DeleteUser(svcs.Users, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CreateCategory(svcs.Catalog, logg))
			r.Get("/", controllers.ListCategories(svcs.Catalog, logg))
			r.Get("/{categoryId}", controllers.GetCategory(svcs.Catalog, logg))
			r.With(middleware.RequirePrivileged(logg)).Patch("/{categoryId}", controllers.UpdateCategory(svcs.Catalog, logg))
			r.With(middleware.RequirePrivileged(logg)).Delete("/{categoryId}", controllers.DeleteCategory(svcs.Catalog, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.CreateItem(svcs.Catalog, logg))
			r.Get("/", controllers.ListItems(svcs.Catalog, logg))
			r.Get("/{itemId}", controllers.GetItem(svcs.Catalog, logg))
			r.With(middleware.RequirePrivileged(logg)).Patch("/{itemId}", controllers.UpdateItem(svcs.Catalog, logg))
			r.With(middleware.RequirePrivileged(logg)).Delete("/{itemId}", controllers.DeleteItem(svcs.Catalog, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.CreateCustomer(svcs.Customers, logg))
			r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
			r.Get("/{customerId}", controllers.GetCustomer(svcs.Customers, logg))
			r.With(middleware.RequirePrivileged(logg)).Patch("/{customerId}", controllers.UpdateCustomer(svcs.Customers, logg))
			r.With(middleware.RequirePrivileged(logg)).Delete("/{customerId}", controllers.DeleteCustomer(svcs.Customers, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Post("/", controllers.CreateVendor(svcs.Vendors, logg))
			r.Get("/", controllers.ListVendors(svcs.Vendors, logg))
			r.Get("/{vendorId}", controllers.GetVendor(svcs.Vendors, logg))
			r.With(middleware.RequirePrivileged(logg)).Patch("/{vendorId}", controllers.UpdateVendor(svcs.Vendors, logg))
			r.With(middleware.RequirePrivileged(logg)).Delete("/{vendorId}", controllers.DeleteVendor(svcs.Vendors, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.CreateSale(svcs.Sales, logg))
			r.Get("/", controllers.ListSales(svcs.Sales, logg))
			r.Get("/{saleId}", controllers.GetSale(svcs.Sales, logg))
			r.With(middleware.RequirePrivileged(logg)).Delete("/{saleId}", controllers.DeleteSale(svcs.Sales, logg))
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Post("/", controllers.CreatePurchase(svcs.Purchases, logg))
			r.Get("/", controllers.ListPurchases(svcs.Purchases, logg))
			r.Get("/{purchaseId}", controllers.GetPurchase(svcs.Purchases, logg))
			r.With(middleware.RequirePrivileged(logg)).Patch("/{purchaseId}", controllers.UpdatePurchase(svcs.Purchases, logg))
			r.With(middleware.RequirePrivileged(logg)).Delete("/{purchaseId}", controllers.DeletePurchase(svcs.Purchases, logg))
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.Post("/", controllers.CreateDelivery(svcs.Deliveries, logg))
			r.Get("/", controllers.ListDeliveries(svcs.Deliveries, logg))
			r.Get("/{deliveryId}", controllers.GetDelivery(svcs.Deliveries, logg))
			r.Patch("/{deliveryId}", controllers.UpdateDelivery(svcs.Deliveries, logg))
			r.With(middleware.RequirePrivileged(logg)).Delete("/{deliveryId}", controllers.DeleteDelivery(svcs.Deliveries, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", controllers.CreateInvoice(svcs.Invoices, logg))
			r.Get("/", controllers.ListInvoices(svcs.Invoices, logg))
			r.Get("/{invoiceId}", controllers.GetInvoice(svcs.Invoices, logg))
			r.With(middleware.RequirePrivileged(logg)).Delete("/{invoiceId}", controllers.DeleteInvoice(svcs.Invoices, logg))
		})

		r.Route("/bills", func(r chi.Router) {
			r.Post("/", controllers.CreateBill(svcs.Bills, logg))
			r.Get("/", controllers.ListBills(svcs.Bills, logg))
			r.Get("/{billId}", controllers.GetBill(svcs.Bills, logg))
			r.With(middleware.RequirePrivileged(logg)).Patch("/{billId}", controllers.UpdateBill(svcs.Bills, logg))
			r.With(middleware.RequirePrivileged(logg)).Delete("/{billId}", controllers.DeleteBill(svcs.Bills, logg))
		})
	})

	return r
}
