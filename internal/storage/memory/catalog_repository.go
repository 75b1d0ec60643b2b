package memory

import (
	"context"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type catalogRepositoryInMemory struct {
	store *Store
}

// NewCatalogRepository создаёт read-only доступ к каталогу Store.
func NewCatalogRepository(store *Store) domain.Catalog {
	return &catalogRepositoryInMemory{store: store}
}

func (r *catalogRepositoryInMemory) GetProduct(_ context.Context, productID string) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *catalogRepositoryInMemory) GetProducts(_ context.Context, productIDs []string) (map[string]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make(map[string]domain.Product, len(productIDs))
	for _, id := range productIDs {
		if product, ok := r.store.products[id]; ok {
			result[id] = product
		}
	}
	return result, nil
}

// Displays позволяет использовать каталог как источник данных для отображения без кеша.
func (r *catalogRepositoryInMemory) Displays(ctx context.Context, productIDs []string) (map[string]domain.ProductDisplay, error) {
	products, err := r.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.ProductDisplay, len(products))
	for id, product := range products {
		result[id] = product.Display()
	}
	return result, nil
}

var _ domain.Catalog = (*catalogRepositoryInMemory)(nil)
