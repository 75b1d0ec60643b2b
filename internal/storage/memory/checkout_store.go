package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type checkoutStoreInMemory struct {
	store *Store
}

// NewCheckoutStore создаёт in-memory транзакционный контур для checkout.
//
// Транзакция держит мьютекс корзины покупателя и мьютексы товаров (в порядке
// возрастания id) до commit/rollback. Изменения копятся в транзакции и
// применяются к Store одним шагом при commit.
func NewCheckoutStore(store *Store) domain.CheckoutStore {
	return &checkoutStoreInMemory{store: store}
}

func (c *checkoutStoreInMemory) RunInTx(ctx context.Context, fn func(ctx context.Context, tx domain.CheckoutTx) error) error {
	tx := &checkoutTxInMemory{
		store:      c.store,
		locked:     make(map[string]bool),
		decrements: make(map[string]int32),
	}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type checkoutTxInMemory struct {
	store   *Store
	unlocks []func()

	cartOwner string
	locked    map[string]bool

	decrements map[string]int32
	orders     []domain.Order
	clearCarts []string
	outbox     []domain.OutboxMessage
}

func (t *checkoutTxInMemory) CartLines(_ context.Context, customerID string) ([]domain.CartLine, error) {
	if t.cartOwner == "" {
		t.unlocks = append(t.unlocks, t.store.cartLocks.Lock(customerID))
		t.cartOwner = customerID
	} else if t.cartOwner != customerID {
		return nil, fmt.Errorf("checkout tx already holds cart of %s", t.cartOwner)
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	return append([]domain.CartLine{}, t.store.carts[customerID]...), nil
}

func (t *checkoutTxInMemory) LockProducts(_ context.Context, productIDs []string) (map[string]domain.Product, error) {
	ids := append([]string(nil), productIDs...)
	sort.Strings(ids)
	for _, id := range ids {
		if t.locked[id] {
			continue
		}
		t.unlocks = append(t.unlocks, t.store.productLocks.Lock(id))
		t.locked[id] = true
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	result := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		product, ok := t.store.products[id]
		if !ok {
			continue
		}
		product.Stock -= t.decrements[id]
		result[id] = product
	}
	return result, nil
}

func (t *checkoutTxInMemory) DecrementStock(_ context.Context, productID string, qty int32) error {
	if !t.locked[productID] {
		return fmt.Errorf("product %s is not locked by checkout tx", productID)
	}

	t.store.mu.RLock()
	product, ok := t.store.products[productID]
	t.store.mu.RUnlock()
	if !ok {
		return &domain.ProductUnavailableError{ProductID: productID}
	}

	available := product.Stock - t.decrements[productID]
	if qty > available {
		return &domain.InsufficientStockError{
			ProductID:   productID,
			ProductName: product.Name,
			Requested:   qty,
			Available:   available,
			Phase:       domain.StockPhaseCheckout,
		}
	}
	t.decrements[productID] += qty
	return nil
}

func (t *checkoutTxInMemory) InsertOrder(_ context.Context, order domain.Order) error {
	t.store.mu.RLock()
	_, exists := t.store.orders[order.ID]
	t.store.mu.RUnlock()
	if exists {
		return domain.ErrOrderVersionConflict
	}
	t.orders = append(t.orders, order.Clone())
	return nil
}

func (t *checkoutTxInMemory) ClearCart(_ context.Context, customerID string) error {
	if t.cartOwner != customerID {
		return fmt.Errorf("cart of %s is not locked by checkout tx", customerID)
	}
	t.clearCarts = append(t.clearCarts, customerID)
	return nil
}

func (t *checkoutTxInMemory) EnqueueOutbox(_ context.Context, msg domain.OutboxMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	t.outbox = append(t.outbox, msg)
	return nil
}

func (t *checkoutTxInMemory) commit() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for id, qty := range t.decrements {
		product := t.store.products[id]
		product.Stock -= qty
		t.store.products[id] = product
	}
	for _, order := range t.orders {
		t.store.orders[order.ID] = order
	}
	for _, customerID := range t.clearCarts {
		delete(t.store.carts, customerID)
	}

	t.store.outbox.appendCommitted(t.outbox, time.Now().UTC())
}

func (t *checkoutTxInMemory) release() {
	for i := len(t.unlocks) - 1; i >= 0; i-- {
		t.unlocks[i]()
	}
	t.unlocks = nil
}

var (
	_ domain.CheckoutStore = (*checkoutStoreInMemory)(nil)
	_ domain.CheckoutTx    = (*checkoutTxInMemory)(nil)
)
