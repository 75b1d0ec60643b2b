package memory

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// cartRepositoryInMemory хранит корзины в Store. Мутации корзины покупателя
// сериализуются тем же мьютексом, который checkout держит на время транзакции.
type cartRepositoryInMemory struct {
	store *Store
}

// NewCartRepository создаёт in-memory реализацию CartRepository.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepositoryInMemory{store: store}
}

func (r *cartRepositoryInMemory) AddItem(_ context.Context, customerID, productID string, qty int32) (domain.CartLine, error) {
	unlock := r.store.cartLocks.Lock(customerID)
	defer unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[productID]; !ok {
		return domain.CartLine{}, domain.ErrProductNotFound
	}

	now := time.Now().UTC()
	lines := r.store.carts[customerID]
	for i := range lines {
		if lines[i].ProductID == productID {
			if int64(lines[i].Qty)+int64(qty) > math.MaxInt32 {
				return domain.CartLine{}, fmt.Errorf("%w: cart line quantity overflows int32", domain.ErrInvalidQuantity)
			}
			lines[i].Qty += qty
			lines[i].UpdatedAt = now
			return lines[i], nil
		}
	}

	line := domain.CartLine{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		ProductID:  productID,
		Qty:        qty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.store.carts[customerID] = append(lines, line)
	return line, nil
}

func (r *cartRepositoryInMemory) SetQuantity(_ context.Context, customerID, lineID string, qty int32) error {
	unlock := r.store.cartLocks.Lock(customerID)
	defer unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lines := r.store.carts[customerID]
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Qty = qty
			lines[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrCartLineNotFound
}

func (r *cartRepositoryInMemory) RemoveItem(_ context.Context, customerID, lineID string) error {
	unlock := r.store.cartLocks.Lock(customerID)
	defer unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lines := r.store.carts[customerID]
	for i := range lines {
		if lines[i].ID != lineID {
			continue
		}
		rest := append(append([]domain.CartLine(nil), lines[:i]...), lines[i+1:]...)
		if len(rest) == 0 {
			delete(r.store.carts, customerID)
		} else {
			r.store.carts[customerID] = rest
		}
		return nil
	}
	return domain.ErrCartLineNotFound
}

func (r *cartRepositoryInMemory) Clear(_ context.Context, customerID string) error {
	unlock := r.store.cartLocks.Lock(customerID)
	defer unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.carts, customerID)
	return nil
}

func (r *cartRepositoryInMemory) List(_ context.Context, customerID string) ([]domain.CartLine, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]domain.CartLine{}, r.store.carts[customerID]...), nil
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)
