// Package httpapi — JSON API магазина поверх chi.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/idempotency"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultMaxBodyBytes   = 1 << 20
	idempotencyKeyHeader  = "Idempotency-Key"
	replayedHeader        = "Idempotent-Replayed"
)

// CartService — операции корзины, которые нужны HTTP API.
type CartService interface {
	View(ctx context.Context, actor domain.Actor) (domain.Cart, error)
	Add(ctx context.Context, actor domain.Actor, productID string, qty int32) (domain.Cart, error)
	Update(ctx context.Context, actor domain.Actor, lineID string, qty int32) (domain.Cart, error)
	Remove(ctx context.Context, actor domain.Actor, lineID string) (domain.Cart, error)
	Clear(ctx context.Context, actor domain.Actor) (domain.Cart, error)
}

// CheckoutService оформляет заказ.
type CheckoutService interface {
	Checkout(ctx context.Context, actor domain.Actor, shippingAddress string) (domain.OrderDetails, error)
}

// OrderService — архив заказов и административные операции.
type OrderService interface {
	List(ctx context.Context, actor domain.Actor, limit int) ([]domain.OrderDetails, error)
	Get(ctx context.Context, actor domain.Actor, orderID string) (domain.OrderDetails, error)
	ListAll(ctx context.Context, actor domain.Actor, limit int) ([]domain.OrderDetails, error)
	SetStatus(ctx context.Context, actor domain.Actor, orderID, status string) (domain.OrderDetails, error)
	Stats(ctx context.Context, actor domain.Actor) (domain.OrderStats, error)
}

// Dependencies перечисляет сервисы, которые обслуживает роутер.
type Dependencies struct {
	Cart        CartService
	Checkout    CheckoutService
	Orders      OrderService
	Idempotency *idempotency.Guard
}

// Options настраивает HTTP-слой.
type Options struct {
	Currency       string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	Logger         *log.Entry
}

type handler struct {
	deps         Dependencies
	currency     string
	maxBodyBytes int64
	logger       *log.Entry
}

// NewRouter собирает chi-роутер с middleware и оборачивает его otelhttp.
func NewRouter(deps Dependencies, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "http-api")
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	h := &handler{
		deps:         deps,
		currency:     opts.Currency,
		maxBodyBytes: opts.MaxBodyBytes,
		logger:       opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(accessLog(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.requireActor)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.viewCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addCartItem)
			r.Patch("/items/{lineID}", h.updateCartItem)
			r.Delete("/items/{lineID}", h.removeCartItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.checkout)
			r.Get("/", h.listOrders)
			r.Get("/{orderID}", h.getOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/orders", h.listAllOrders)
			r.Patch("/orders/{orderID}/status", h.setOrderStatus)
			r.Get("/stats", h.stats)
		})
	})

	return otelhttp.NewHandler(r, "shop-http")
}
