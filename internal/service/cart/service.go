// Package cart реализует операции корзины покупателя.
package cart

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
)

// Service — операции над корзиной. Все методы возвращают актуальное состояние корзины.
type Service struct {
	carts   domain.CartRepository
	catalog domain.CatalogReader
	metrics *metrics.CheckoutMetrics
	logger  *log.Entry
}

// NewService создаёт сервис корзины. metrics и logger опциональны.
func NewService(carts domain.CartRepository, catalog domain.CatalogReader, m *metrics.CheckoutMetrics, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "cart")
	}
	return &Service{carts: carts, catalog: catalog, metrics: m, logger: logger}
}

// Add добавляет товар или увеличивает количество существующей строки.
// Проверка остатка здесь только подсказка: окончательно остаток проверяет checkout.
func (s *Service) Add(ctx context.Context, actor domain.Actor, productID string, qty int32) (domain.Cart, error) {
	if !actor.Valid() {
		return domain.Cart{}, domain.ErrUnauthenticated
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.Cart{}, domain.ErrProductIDRequired
	}
	if qty < 1 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !product.Active {
		return domain.Cart{}, domain.ErrProductNotFound
	}
	if qty > product.Stock {
		return domain.Cart{}, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   qty,
			Available:   product.Stock,
			Phase:       domain.StockPhaseAdd,
		}
	}

	if _, err := s.carts.AddItem(ctx, actor.ID, productID, qty); err != nil {
		return domain.Cart{}, err
	}
	s.metrics.RecordCartMutation("add")
	return s.View(ctx, actor)
}

// Update задаёт количество строки. qty < 1 удаляет строку; отсутствие строки
// в этом случае не считается ошибкой.
func (s *Service) Update(ctx context.Context, actor domain.Actor, lineID string, qty int32) (domain.Cart, error) {
	if !actor.Valid() {
		return domain.Cart{}, domain.ErrUnauthenticated
	}

	if qty < 1 {
		err := s.carts.RemoveItem(ctx, actor.ID, lineID)
		if err != nil && !errors.Is(err, domain.ErrCartLineNotFound) {
			return domain.Cart{}, err
		}
		if err == nil {
			s.metrics.RecordCartMutation("remove")
		}
		return s.View(ctx, actor)
	}

	if err := s.carts.SetQuantity(ctx, actor.ID, lineID, qty); err != nil {
		return domain.Cart{}, err
	}
	s.metrics.RecordCartMutation("update")
	return s.View(ctx, actor)
}

// Remove удаляет строку корзины.
func (s *Service) Remove(ctx context.Context, actor domain.Actor, lineID string) (domain.Cart, error) {
	if !actor.Valid() {
		return domain.Cart{}, domain.ErrUnauthenticated
	}
	if err := s.carts.RemoveItem(ctx, actor.ID, lineID); err != nil {
		return domain.Cart{}, err
	}
	s.metrics.RecordCartMutation("remove")
	return s.View(ctx, actor)
}

// Clear очищает корзину. Используется и при удалении пользователя.
func (s *Service) Clear(ctx context.Context, actor domain.Actor) (domain.Cart, error) {
	if !actor.Valid() {
		return domain.Cart{}, domain.ErrUnauthenticated
	}
	if err := s.carts.Clear(ctx, actor.ID); err != nil {
		return domain.Cart{}, err
	}
	s.metrics.RecordCartMutation("clear")
	return domain.NewCart(actor.ID, nil), nil
}

// View возвращает корзину с текущими ценами каталога.
func (s *Service) View(ctx context.Context, actor domain.Actor) (domain.Cart, error) {
	if !actor.Valid() {
		return domain.Cart{}, domain.ErrUnauthenticated
	}

	lines, err := s.carts.List(ctx, actor.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	if len(lines) == 0 {
		return domain.NewCart(actor.ID, nil), nil
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.catalog.GetProducts(ctx, ids)
	if err != nil {
		return domain.Cart{}, err
	}

	views := make([]domain.CartLineView, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			s.logger.WithFields(log.Fields{
				"customer_id": actor.ID,
				"product_id":  line.ProductID,
			}).Debug("cart line references missing product")
			continue
		}
		views = append(views, domain.CartLineView{Line: line, Product: product})
	}
	return domain.NewCart(actor.ID, views), nil
}
