package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const productSelect = `
	SELECT p.id, p.name, p.slug, p.description, p.image_url,
	       COALESCE(p.category_id, ''), COALESCE(c.name, ''),
	       p.price_minor, p.stock, p.active, p.created_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository создаёт read-only доступ к таблицам каталога.
func NewCatalogRepository(store *Store) domain.Catalog {
	return &catalogRepository{db: store.DB()}
}

func (r *catalogRepository) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

func (r *catalogRepository) GetProducts(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	ids := uniqueStrings(productIDs)
	result := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	placeholders, args := inPlaceholders(1, ids)
	rows, err := r.db.QueryContext(ctx, productSelect+` WHERE p.id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return result, nil
}

// Displays читает данные для отображения напрямую из БД; кеш оборачивает этот метод.
func (r *catalogRepository) Displays(ctx context.Context, productIDs []string) (map[string]domain.ProductDisplay, error) {
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

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.ImageURL,
		&p.CategoryID, &p.CategoryName,
		&p.PriceMinor, &p.Stock, &p.Active, &p.CreatedAt,
	)
	return p, err
}

var _ domain.Catalog = (*catalogRepository)(nil)
