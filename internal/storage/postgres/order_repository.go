package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const (
	opTimeout = 5 * time.Second

	orderColumns = `id, customer_id, status, currency, amount_minor, shipping_address, version, created_at, updated_at`
	itemColumns  = `order_id, id, product_id, qty, price_minor, created_at`
)

// execer и querier покрывают и *sql.DB, и *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// OrderRepository читает архив заказов. Новые заказы пишет только
// транзакция checkout через insertOrder.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{db: store.DB()}
}

// orderFilter собирает WHERE и LIMIT для выборки заказов; новейшие первыми.
type orderFilter struct {
	conds []string
	args  []any
	limit int
}

func (f orderFilter) where(column string, value any) orderFilter {
	f.args = append(f.args, value)
	f.conds = append(f.conds, column+" = $"+strconv.Itoa(len(f.args)))
	return f
}

func (f orderFilter) sql() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT " + orderColumns + " FROM orders")
	if len(f.conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(f.conds, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")

	args := f.args
	if f.limit > 0 {
		args = append(args, f.limit)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	return b.String(), args
}

func (r *OrderRepository) Get(ctx context.Context, id string) (domain.Order, error) {
	return r.one(ctx, orderFilter{}.where("id", id))
}

// GetForCustomer не отличает чужой заказ от несуществующего.
func (r *OrderRepository) GetForCustomer(ctx context.Context, id, customerID string) (domain.Order, error) {
	return r.one(ctx, orderFilter{}.where("id", id).where("customer_id", customerID))
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Order, error) {
	return r.find(ctx, orderFilter{limit: limit}.where("customer_id", customerID))
}

func (r *OrderRepository) ListAll(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.find(ctx, orderFilter{limit: limit})
}

// UpdateStatus меняет статус и увеличивает version заказа.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	order, err := scanOrder(r.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $2, updated_at = $3, version = version + 1
		WHERE id = $1
		RETURNING `+orderColumns,
		id, string(status), updatedAt))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Order{}, domain.ErrOrderNotFound
	case err != nil:
		return domain.Order{}, fmt.Errorf("update status of order %s: %w", id, err)
	}

	orders := []domain.Order{order}
	if err := attachItems(ctx, r.db, orders); err != nil {
		return domain.Order{}, err
	}
	return orders[0], nil
}

func (r *OrderRepository) Stats(ctx context.Context) (domain.OrderStats, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var stats domain.OrderStats
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(amount_minor), 0) FROM orders`).
		Scan(&stats.TotalOrders, &stats.RevenueMinor)
	if err != nil {
		return domain.OrderStats{}, fmt.Errorf("query order stats: %w", err)
	}
	return stats, nil
}

func (r *OrderRepository) one(ctx context.Context, f orderFilter) (domain.Order, error) {
	f.limit = 1
	orders, err := r.find(ctx, f)
	if err != nil {
		return domain.Order{}, err
	}
	if len(orders) == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return orders[0], nil
}

func (r *OrderRepository) find(ctx context.Context, f orderFilter) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query, args := f.sql()
	orders, err := queryOrders(ctx, r.db, query, args...)
	if err != nil {
		return nil, err
	}
	if err := attachItems(ctx, r.db, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// queryOrders возвращает пустой, но не nil срез, если строк нет.
func queryOrders(ctx context.Context, q querier, query string, args ...any) ([]domain.Order, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	err := row.Scan(&o.ID, &o.CustomerID, &status, &o.Currency, &o.AmountMinor,
		&o.ShippingAddress, &o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)
	return o, nil
}

// attachItems одним запросом подгружает позиции для всех orders.
func attachItems(ctx context.Context, q querier, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	index := make(map[string]int, len(orders))
	ids := make([]string, len(orders))
	for i, o := range orders {
		index[o.ID] = i
		ids[i] = o.ID
	}

	placeholders, args := inPlaceholders(1, ids)
	rows, err := q.QueryContext(ctx, `SELECT `+itemColumns+` FROM order_items
		WHERE order_id IN (`+placeholders+`)
		ORDER BY created_at, id`, args...)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			item    domain.OrderItem
		)
		if err := rows.Scan(&orderID, &item.ID, &item.ProductID, &item.Qty, &item.PriceMinor, &item.CreatedAt); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}
	return nil
}

// insertOrder пишет заказ с позициями внутри транзакции checkout.
// Повторный id заказа возвращается как ErrOrderVersionConflict.
func insertOrder(ctx context.Context, tx execer, order domain.Order) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO orders (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.CustomerID, string(order.Status), order.Currency, order.AmountMinor,
		order.ShippingAddress, order.Version, order.CreatedAt, order.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrOrderVersionConflict
	}
	if err != nil {
		return fmt.Errorf("insert order %s: %w", order.ID, err)
	}

	for _, item := range order.Items {
		_, err := tx.ExecContext(ctx, `INSERT INTO order_items (id, order_id, product_id, qty, price_minor, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, order.ID, item.ProductID, item.Qty, item.PriceMinor, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert item %s of order %s: %w", item.ID, order.ID, err)
		}
	}
	return nil
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
