// Package checkout превращает корзину покупателя в неизменяемый заказ.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
)

const (
	defaultCurrency = "EUR"
	defaultTimeout  = 10 * time.Second
)

// Engine выполняет checkout как одну транзакцию хранилища.
type Engine struct {
	store    domain.CheckoutStore
	displays domain.ProductDisplayReader
	timeline domain.TimelineRepository
	metrics  *metrics.CheckoutMetrics
	logger   *log.Entry

	currency string
	retry    RetryConfig
	timeout  time.Duration
	now      func() time.Time
	newID    func() string
}

// Option настраивает Engine.
type Option func(*Engine)

// WithCurrency задаёт валюту магазина для новых заказов.
func WithCurrency(currency string) Option {
	return func(e *Engine) {
		if c := strings.ToUpper(strings.TrimSpace(currency)); c != "" {
			e.currency = c
		}
	}
}

// WithRetryConfig задаёт политику повтора при конфликте.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(e *Engine) {
		e.retry = cfg
	}
}

// WithTimeout ограничивает время одной операции checkout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// WithMetrics подключает prometheus-метрики.
func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine создаёт движок checkout. displays и timeline могут быть nil.
func NewEngine(store domain.CheckoutStore, displays domain.ProductDisplayReader, timeline domain.TimelineRepository, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		displays: displays,
		timeline: timeline,
		logger:   log.WithField("component", "checkout"),
		currency: defaultCurrency,
		retry:    DefaultRetryConfig(),
		timeout:  defaultTimeout,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Checkout оформляет заказ из корзины actor.
//
// Либо заказ создан, остатки уменьшены и корзина очищена, либо ничего не изменилось.
// Отмена ctx вызывающим не прерывает начатую транзакцию: она работает на
// отвязанном контексте с собственным таймаутом.
func (e *Engine) Checkout(ctx context.Context, actor domain.Actor, shippingAddress string) (domain.OrderDetails, error) {
	if !actor.Valid() {
		return domain.OrderDetails{}, domain.ErrUnauthenticated
	}
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return domain.OrderDetails{}, domain.ErrShippingAddressRequired
	}

	started := time.Now()
	e.metrics.CheckoutStarted()

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	var order domain.Order
	err := retryOnConflict(opCtx, e.retry, func(attempt int, delay time.Duration, err error) {
		e.metrics.RecordRetry()
		e.logger.WithError(err).WithFields(log.Fields{
			"customer_id": actor.ID,
			"attempt":     attempt,
			"delay":       delay,
		}).Warn("checkout conflict, retrying")
	}, func() error {
		return e.store.RunInTx(opCtx, func(txCtx context.Context, tx domain.CheckoutTx) error {
			placed, err := e.placeOrder(txCtx, tx, actor.ID, address)
			if err != nil {
				return err
			}
			order = placed
			return nil
		})
	})

	e.metrics.CheckoutFinished(resultLabel(err), time.Since(started))
	if err != nil {
		e.logFailure(actor, err)
		return domain.OrderDetails{}, err
	}

	e.metrics.RecordOrderPlaced(len(order.Items), order.AmountMinor)
	e.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"amount_minor": order.AmountMinor,
		"items":        len(order.Items),
	}).Info("order placed")

	details := domain.OrderDetails{Order: order}
	details.Timeline = e.appendPlaced(opCtx, order)
	details.Products = e.loadDisplays(opCtx, order)
	return details, nil
}

// placeOrder выполняет тело транзакции. Все проверки выполняются до первой записи.
func (e *Engine) placeOrder(ctx context.Context, tx domain.CheckoutTx, customerID, address string) (domain.Order, error) {
	lines, err := tx.CartLines(ctx, customerID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := tx.LockProducts(ctx, ids)
	if err != nil {
		return domain.Order{}, err
	}

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok || !product.Active {
			return domain.Order{}, &domain.ProductUnavailableError{ProductID: line.ProductID}
		}
		if line.Qty > product.Stock {
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   line.Qty,
				Available:   product.Stock,
				Phase:       domain.StockPhaseCheckout,
			}
		}
	}

	now := e.now()
	order := domain.Order{
		ID:              e.newID(),
		CustomerID:      customerID,
		Status:          domain.OrderStatusPending,
		Currency:        e.currency,
		ShippingAddress: address,
		Items:           make([]domain.OrderItem, 0, len(lines)),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, line := range lines {
		product := products[line.ProductID]
		if err := tx.DecrementStock(ctx, line.ProductID, line.Qty); err != nil {
			return domain.Order{}, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:         e.newID(),
			ProductID:  line.ProductID,
			Qty:        line.Qty,
			PriceMinor: product.PriceMinor,
			CreatedAt:  now,
		})
	}
	order.AmountMinor = order.ItemsTotalMinor()

	if err := order.Validate(); err != nil {
		return domain.Order{}, fmt.Errorf("order invariants violated: %w", err)
	}

	if err := tx.InsertOrder(ctx, order); err != nil {
		return domain.Order{}, err
	}
	if err := tx.ClearCart(ctx, customerID); err != nil {
		return domain.Order{}, err
	}

	msg, err := domain.NewOrderCreatedMessage(order)
	if err != nil {
		return domain.Order{}, err
	}
	if err := tx.EnqueueOutbox(ctx, msg); err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (e *Engine) appendPlaced(ctx context.Context, order domain.Order) []domain.TimelineEvent {
	event := domain.PlacedTimelineEvent(order)
	if e.timeline == nil {
		return []domain.TimelineEvent{event}
	}
	if err := e.timeline.Append(ctx, event); err != nil {
		e.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to append timeline event")
		return []domain.TimelineEvent{event}
	}
	e.metrics.RecordTimelineEvent()
	return []domain.TimelineEvent{event}
}

// loadDisplays делает best-effort join с каталогом; ошибка не отменяет оформленный заказ.
func (e *Engine) loadDisplays(ctx context.Context, order domain.Order) map[string]domain.ProductDisplay {
	if e.displays == nil {
		return map[string]domain.ProductDisplay{}
	}
	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	displays, err := e.displays.Displays(ctx, ids)
	if err != nil {
		e.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to load product displays")
		return map[string]domain.ProductDisplay{}
	}
	return displays
}

func (e *Engine) logFailure(actor domain.Actor, err error) {
	entry := e.logger.WithError(err).WithField("customer_id", actor.ID)
	switch {
	case errors.Is(err, domain.ErrEmptyCart), domain.IsInsufficientStock(err), domain.IsNotFound(err):
		entry.Info("checkout rejected")
	case errors.Is(err, domain.ErrCheckoutConflict):
		entry.Warn("checkout gave up after conflicts")
	default:
		entry.Error("checkout failed")
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.CheckoutResultSuccess
	case errors.Is(err, domain.ErrEmptyCart):
		return metrics.CheckoutResultEmptyCart
	case domain.IsInsufficientStock(err):
		return metrics.CheckoutResultInsufficientStock
	case domain.IsNotFound(err):
		return metrics.CheckoutResultUnavailable
	case domain.IsConflict(err):
		return metrics.CheckoutResultConflict
	default:
		return metrics.CheckoutResultError
	}
}
