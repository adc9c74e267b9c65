package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type AccountService interface {
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	Resolve(ctx context.Context, email string) (domain.Identity, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetDiscount(ctx context.Context, userID int64, percent decimal.Decimal) error
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID int64) error

	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

type CartService interface {
	Get(ctx context.Context, userID int64) (domain.CartView, error)
	AddLine(ctx context.Context, userID int64, productID uuid.UUID, qty int32) error
	RemoveLine(ctx context.Context, userID int64, productID uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID int64) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Receipt, error)
	CheckoutCart(ctx context.Context, userID int64) (domain.Receipt, error)
}

type OrderService interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	Items(ctx context.Context, caller domain.User, orderID int64) ([]domain.OrderItem, error)
}

type Services struct {
	Accounts AccountService
	Catalog  CatalogService
	Carts    CartService
	Checkout CheckoutService
	Orders   OrderService
}

type Handler struct {
	accounts AccountService
	catalog  CatalogService
	carts    CartService
	checkout CheckoutService
	orders   OrderService

	log      *zap.Logger
	metrics  *metrics.Metrics
	currency currency.Unit
	timeout  time.Duration
}

type Option func(*Handler)

// WithDefaultCurrency sets the currency of products created without one.
func WithDefaultCurrency(cur currency.Unit) Option {
	return func(h *Handler) { h.currency = cur }
}

func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) { h.timeout = d }
}

func NewHandler(services Services, log *zap.Logger, m *metrics.Metrics, opts ...Option) *Handler {
	h := &Handler{
		accounts: services.Accounts,
		catalog:  services.Catalog,
		carts:    services.Carts,
		checkout: services.Checkout,
		orders:   services.Orders,
		log:      log,
		metrics:  m,
		currency: currency.USD,
		timeout:  15 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)
	r.Use(middleware.Timeout(h.timeout))
	r.Use(h.identify)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.With(h.requireUser).Get("/me", h.Me)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)
				r.Post("/", h.CreateCategory)
				r.Put("/{categoryID}", h.UpdateCategory)
				r.Delete("/{categoryID}", h.DeleteCategory)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{productID}", h.GetProduct)
			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)
				r.Post("/", h.CreateProduct)
				r.Put("/{productID}", h.UpdateProduct)
				r.Delete("/{productID}", h.DeleteProduct)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddCartItem)
				r.Delete("/items/{productID}", h.RemoveCartItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.PlaceOrder)
				r.Get("/", h.ListOrders)
				r.Get("/{orderID}/items", h.OrderItems)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/", h.ListUsers)
			r.Put("/{userID}/discount", h.SetDiscount)
		})
	})

	return otelhttp.NewHandler(r, "storefront.http")
}
