// Package orders — чтение архива заказов и административные операции над ним.
package orders

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
)

// Service отдаёт заказы владельцу и администратору. Создаются заказы только через checkout.
type Service struct {
	orders   domain.OrderRepository
	outbox   domain.OutboxRepository
	timeline domain.TimelineRepository
	displays domain.ProductDisplayReader
	metrics  *metrics.CheckoutMetrics
	logger   *log.Entry
	now      func() time.Time
}

// NewService создаёт сервис заказов. outbox, timeline, displays, metrics и logger могут быть nil.
func NewService(
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	timeline domain.TimelineRepository,
	displays domain.ProductDisplayReader,
	m *metrics.CheckoutMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "orders")
	}
	return &Service{
		orders:   orders,
		outbox:   outbox,
		timeline: timeline,
		displays: displays,
		metrics:  m,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List возвращает заказы actor, новые первыми. При limit <= 0 без ограничения.
func (s *Service) List(ctx context.Context, actor domain.Actor, limit int) ([]domain.OrderDetails, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	orders, err := s.orders.ListByCustomer(ctx, actor.ID, limit)
	if err != nil {
		return nil, err
	}
	return s.withDisplays(ctx, orders), nil
}

// Get возвращает заказ actor вместе с таймлайном.
// Чужой и несуществующий заказ неразличимы: оба дают ErrOrderNotFound.
func (s *Service) Get(ctx context.Context, actor domain.Actor, orderID string) (domain.OrderDetails, error) {
	if !actor.Valid() {
		return domain.OrderDetails{}, domain.ErrUnauthenticated
	}
	order, err := s.orders.GetForCustomer(ctx, orderID, actor.ID)
	if err != nil {
		return domain.OrderDetails{}, err
	}
	return s.details(ctx, order), nil
}

// ListAll возвращает заказы всех покупателей (только администратор).
func (s *Service) ListAll(ctx context.Context, actor domain.Actor, limit int) ([]domain.OrderDetails, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.withDisplays(ctx, orders), nil
}

// SetStatus меняет метку статуса. Сумма и позиции заказа не меняются;
// допустимость перехода между статусами не проверяется.
func (s *Service) SetStatus(ctx context.Context, actor domain.Actor, orderID, rawStatus string) (domain.OrderDetails, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.OrderDetails{}, err
	}
	status, err := domain.NormalizeStatus(rawStatus)
	if err != nil {
		return domain.OrderDetails{}, err
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status, s.now())
	if err != nil {
		return domain.OrderDetails{}, err
	}
	s.metrics.RecordStatusChange()

	logger := s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"status":   order.Status,
		"admin_id": actor.ID,
	})
	logger.Info("order status changed")

	if s.outbox != nil {
		msg, err := domain.NewOrderStatusChangedMessage(order)
		if err == nil {
			_, err = s.outbox.Enqueue(ctx, msg)
		}
		if err != nil {
			logger.WithError(err).Warn("failed to enqueue status change event")
		}
	}

	s.appendTimeline(ctx, domain.StatusTimelineEvent(order))

	return s.details(ctx, order), nil
}

// Stats возвращает количество заказов и выручку (только администратор).
func (s *Service) Stats(ctx context.Context, actor domain.Actor) (domain.OrderStats, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.OrderStats{}, err
	}
	return s.orders.Stats(ctx)
}

func requireAdmin(actor domain.Actor) error {
	if !actor.Valid() {
		return domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service) details(ctx context.Context, order domain.Order) domain.OrderDetails {
	details := domain.OrderDetails{
		Order:    order,
		Products: s.loadDisplays(ctx, []domain.Order{order}),
		Timeline: []domain.TimelineEvent{},
	}
	if s.timeline == nil {
		return details
	}
	events, err := s.timeline.List(ctx, order.ID)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to load order timeline")
		return details
	}
	details.Timeline = events
	return details
}

func (s *Service) withDisplays(ctx context.Context, orders []domain.Order) []domain.OrderDetails {
	displays := s.loadDisplays(ctx, orders)
	result := make([]domain.OrderDetails, 0, len(orders))
	for _, order := range orders {
		products := make(map[string]domain.ProductDisplay, len(order.Items))
		for _, item := range order.Items {
			if display, ok := displays[item.ProductID]; ok {
				products[item.ProductID] = display
			}
		}
		result = append(result, domain.OrderDetails{Order: order, Products: products})
	}
	return result
}

// loadDisplays делает один запрос на все товары заказов; ошибка не скрывает сами заказы.
func (s *Service) loadDisplays(ctx context.Context, orders []domain.Order) map[string]domain.ProductDisplay {
	if s.displays == nil {
		return map[string]domain.ProductDisplay{}
	}
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, order := range orders {
		for _, item := range order.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.ProductDisplay{}
	}

	displays, err := s.displays.Displays(ctx, ids)
	if err != nil {
		s.logger.WithError(err).Warn("failed to load product displays")
		return map[string]domain.ProductDisplay{}
	}
	return displays
}

func (s *Service) appendTimeline(ctx context.Context, event domain.TimelineEvent) {
	if s.timeline == nil {
		return
	}
	if err := s.timeline.Append(ctx, event); err != nil {
		s.logger.WithError(err).WithField("order_id", event.OrderID).Warn("failed to append timeline event")
		return
	}
	s.metrics.RecordTimelineEvent()
}
