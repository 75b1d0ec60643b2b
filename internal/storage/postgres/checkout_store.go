package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type checkoutStore struct {
	db *sql.DB
}

// NewCheckoutStore создаёт транзакционный контур checkout поверх PostgreSQL.
//
// Корзина блокируется через SELECT ... FOR UPDATE, товары блокируются по одному
// в порядке возрастания id, поэтому два checkout с пересекающимися товарами
// не могут взаимно заблокироваться на строках products.
func NewCheckoutStore(store *Store) domain.CheckoutStore {
	return &checkoutStore{db: store.DB()}
}

func (s *checkoutStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx domain.CheckoutTx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return mapTxError(fmt.Errorf("begin checkout tx: %w", err))
	}

	defer func() {
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()

	tx := &checkoutTx{
		tx:       sqlTx,
		products: make(map[string]domain.Product),
	}
	if err = fn(ctx, tx); err != nil {
		return mapTxError(err)
	}

	if err = sqlTx.Commit(); err != nil {
		return mapTxError(fmt.Errorf("commit checkout tx: %w", err))
	}
	return nil
}

type checkoutTx struct {
	tx *sql.Tx

	customerID string
	products   map[string]domain.Product
}

func (t *checkoutTx) CartLines(ctx context.Context, customerID string) ([]domain.CartLine, error) {
	if t.customerID != "" && t.customerID != customerID {
		return nil, fmt.Errorf("checkout tx already holds cart of %s", t.customerID)
	}

	if err := lockCart(ctx, t.tx, customerID); err != nil {
		return nil, err
	}
	rows, err := t.tx.QueryContext(ctx, cartLinesQuery+` FOR UPDATE`, customerID)
	if err != nil {
		return nil, fmt.Errorf("lock cart items: %w", err)
	}
	defer rows.Close()

	lines, err := scanCartLines(rows)
	if err != nil {
		return nil, err
	}

	t.customerID = customerID
	return lines, nil
}

func (t *checkoutTx) LockProducts(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	ids := uniqueStrings(productIDs)
	sort.Strings(ids)

	result := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := t.products[id]; ok {
			result[id] = product
			continue
		}

		// FOR NO KEY UPDATE не конфликтует с FK-проверками cart_items.
		product, err := scanProduct(t.tx.QueryRowContext(ctx, productSelect+`
			WHERE p.id = $1
			FOR NO KEY UPDATE OF p
		`, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("lock product %s: %w", id, err)
		}
		t.products[id] = product
		result[id] = product
	}
	return result, nil
}

func (t *checkoutTx) DecrementStock(ctx context.Context, productID string, qty int32) error {
	product, ok := t.products[productID]
	if !ok {
		return &domain.ProductUnavailableError{ProductID: productID}
	}
	if qty > product.Stock {
		return insufficientStock(product, qty)
	}

	if _, err := t.tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2
	`, qty, productID); err != nil {
		if isCheckViolation(err) {
			return insufficientStock(product, qty)
		}
		return fmt.Errorf("decrement stock for %s: %w", productID, err)
	}

	product.Stock -= qty
	t.products[productID] = product
	return nil
}

func (t *checkoutTx) InsertOrder(ctx context.Context, order domain.Order) error {
	return insertOrder(ctx, t.tx, order)
}

// ClearCart очищает корзину целиком. Новых строк после CartLines быть не может:
// AddItem ждёт ту же блокировку корзины.
func (t *checkoutTx) ClearCart(ctx context.Context, customerID string) error {
	if t.customerID != customerID {
		return fmt.Errorf("cart of %s is not locked by checkout tx", customerID)
	}
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (t *checkoutTx) EnqueueOutbox(ctx context.Context, msg domain.OutboxMessage) error {
	_, err := enqueueOutbox(ctx, t.tx, msg)
	return err
}

func insufficientStock(product domain.Product, requested int32) error {
	return &domain.InsufficientStockError{
		ProductID:   product.ID,
		ProductName: product.Name,
		Requested:   requested,
		Available:   product.Stock,
		Phase:       domain.StockPhaseCheckout,
	}
}

var (
	_ domain.CheckoutStore = (*checkoutStore)(nil)
	_ domain.CheckoutTx    = (*checkoutTx)(nil)
)
