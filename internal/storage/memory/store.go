package memory

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Store — общее in-memory состояние каталога, корзин и заказов.
// Репозитории над одним Store видят одни и те же данные, поэтому checkout
// может атомарно менять остатки, заказы и корзину.
type Store struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	carts    map[string][]domain.CartLine
	orders   map[string]domain.Order
	outbox   *OutboxRepository

	productLocks *keyedLocker
	cartLocks    *keyedLocker
}

// NewStore создаёт пустое хранилище для локальной разработки и тестов.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]domain.Product),
		carts:        make(map[string][]domain.CartLine),
		orders:       make(map[string]domain.Order),
		outbox:       NewOutboxRepository(),
		productLocks: newKeyedLocker(),
		cartLocks:    newKeyedLocker(),
	}
}

// UpsertProduct добавляет или заменяет товар каталога.
// Каталогом владеет внешний сервис; метод нужен для сидирования и тестов.
func (s *Store) UpsertProduct(product domain.Product) {
	unlock := s.productLocks.Lock(product.ID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	s.products[product.ID] = product
}

// SetPrice меняет текущую цену товара. Заказы хранят свою копию цены и не меняются.
func (s *Store) SetPrice(productID string, priceMinor int64) error {
	unlock := s.productLocks.Lock(productID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	product.PriceMinor = priceMinor
	s.products[productID] = product
	return nil
}

// DeleteProduct удаляет товар вместе со строками корзин, которые на него ссылаются.
// Позиции заказов не трогаются.
func (s *Store) DeleteProduct(productID string) {
	unlock := s.productLocks.Lock(productID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, productID)
	for customerID, lines := range s.carts {
		kept := lines[:0]
		for _, line := range lines {
			if line.ProductID != productID {
				kept = append(kept, line)
			}
		}
		if len(kept) == 0 {
			delete(s.carts, customerID)
			continue
		}
		s.carts[customerID] = kept
	}
}

// Stock возвращает текущий остаток товара.
func (s *Store) Stock(productID string) (int32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	return product.Stock, ok
}

// Outbox возвращает outbox-репозиторий, в который пишет checkout.
func (s *Store) Outbox() domain.OutboxRepository {
	return s.outbox
}

// keyedLocker выдаёт мьютекс на ключ и удаляет его, когда он больше никому не нужен.
type keyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocker() *keyedLocker {
	return &keyedLocker{locks: make(map[string]*keyedLock)}
}

// Lock блокирует ключ и возвращает функцию разблокировки.
func (k *keyedLocker) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &keyedLock{}
		k.locks[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		k.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
