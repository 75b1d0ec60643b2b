package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт PostgreSQL-реализацию CartRepository.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{db: store.DB()}
}

// cartLockSpace — первый ключ pg_advisory_xact_lock(int4, int4) для корзин.
const cartLockSpace = 0x63617274

// lockCart до конца транзакции сериализует checkout и добавление товаров
// в корзину одного покупателя. Изменение и удаление существующих строк
// упираются в FOR UPDATE checkout, вставку новой строки держит только эта блокировка.
func lockCart(ctx context.Context, tx execer, customerID string) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, hashtext($2))`, cartLockSpace, customerID); err != nil {
		return fmt.Errorf("lock cart of %s: %w", customerID, err)
	}
	return nil
}

// AddItem опирается на UNIQUE (customer_id, product_id): параллельные добавления
// одного товара складываются в одну строку.
func (r *cartRepository) AddItem(ctx context.Context, customerID, productID string, qty int32) (line domain.CartLine, err error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("begin add cart item: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err := lockCart(ctx, tx, customerID); err != nil {
		return domain.CartLine{}, err
	}

	now := time.Now().UTC()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO cart_items (id, customer_id, product_id, qty, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$5)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty, updated_at = EXCLUDED.updated_at
		RETURNING id, customer_id, product_id, qty, created_at, updated_at
	`, uuid.NewString(), customerID, productID, qty, now).Scan(
		&line.ID, &line.CustomerID, &line.ProductID, &line.Qty, &line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.CartLine{}, domain.ErrProductNotFound
		case isNumericOutOfRange(err):
			return domain.CartLine{}, fmt.Errorf("%w: cart line quantity overflows int4", domain.ErrInvalidQuantity)
		}
		return domain.CartLine{}, fmt.Errorf("upsert cart item: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return domain.CartLine{}, fmt.Errorf("commit add cart item: %w", err)
	}
	return line, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, customerID, lineID string, qty int32) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET qty = $1, updated_at = $2
		WHERE id = $3 AND customer_id = $4
	`, qty, time.Now().UTC(), lineID, customerID)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return requireAffected(res, domain.ErrCartLineNotFound)
}

func (r *cartRepository) RemoveItem(ctx context.Context, customerID, lineID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND customer_id = $2`, lineID, customerID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return requireAffected(res, domain.ErrCartLineNotFound)
}

func (r *cartRepository) Clear(ctx context.Context, customerID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *cartRepository) List(ctx context.Context, customerID string) ([]domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, cartLinesQuery, customerID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	return scanCartLines(rows)
}

const cartLinesQuery = `
	SELECT id, customer_id, product_id, qty, created_at, updated_at
	FROM cart_items
	WHERE customer_id = $1
	ORDER BY created_at ASC, id ASC
`

func scanCartLines(rows *sql.Rows) ([]domain.CartLine, error) {
	lines := make([]domain.CartLine, 0)
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ID, &line.CustomerID, &line.ProductID, &line.Qty, &line.CreatedAt, &line.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return lines, nil
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

var _ domain.CartRepository = (*cartRepository)(nil)
