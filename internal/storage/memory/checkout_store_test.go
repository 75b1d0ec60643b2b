package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

// buyAll списывает остатки по всем строкам корзины и создаёт заказ.
func buyAll(ctx context.Context, tx domain.CheckoutTx, customerID, orderID string) error {
	lines, err := tx.CartLines(ctx, customerID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return domain.ErrEmptyCart
	}
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := tx.LockProducts(ctx, ids)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:              orderID,
		CustomerID:      customerID,
		Status:          domain.OrderStatusPending,
		Currency:        "EUR",
		ShippingAddress: "Somewhere 1",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, line := range lines {
		if err := tx.DecrementStock(ctx, line.ProductID, line.Qty); err != nil {
			return err
		}
		price := products[line.ProductID].PriceMinor
		order.Items = append(order.Items, domain.OrderItem{
			ID: orderID + "-" + line.ProductID, ProductID: line.ProductID, Qty: line.Qty, PriceMinor: price, CreatedAt: now,
		})
		order.AmountMinor += price * int64(line.Qty)
	}
	if err := tx.InsertOrder(ctx, order); err != nil {
		return err
	}
	if err := tx.ClearCart(ctx, customerID); err != nil {
		return err
	}
	return tx.EnqueueOutbox(ctx, domain.OutboxMessage{
		AggregateType: domain.AggregateTypeOrder,
		AggregateID:   orderID,
		EventType:     domain.EventTypeOrderCreated,
	})
}

func TestCheckoutStore_CommitAppliesAllWrites(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "prod-1", 500, 10)
	carts := memory.NewCartRepository(store)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "customer-1", "prod-1", 3)
	require.NoError(t, err)

	err = memory.NewCheckoutStore(store).RunInTx(ctx, func(ctx context.Context, tx domain.CheckoutTx) error {
		return buyAll(ctx, tx, "customer-1", "order-1")
	})
	require.NoError(t, err)

	stock, ok := store.Stock("prod-1")
	require.True(t, ok)
	assert.EqualValues(t, 7, stock)

	lines, err := carts.List(ctx, "customer-1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	order, err := memory.NewOrderRepository(store).Get(ctx, "order-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1500, order.AmountMinor)

	pending, err := store.Outbox().PullPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "order-1", pending[0].AggregateID)
}

func TestCheckoutStore_FailureDiscardsStagedWrites(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "prod-a", 100, 5)
	seedProduct(store, "prod-b", 100, 1)
	carts := memory.NewCartRepository(store)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "customer-1", "prod-a", 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, "customer-1", "prod-b", 2)
	require.NoError(t, err)

	err = memory.NewCheckoutStore(store).RunInTx(ctx, func(ctx context.Context, tx domain.CheckoutTx) error {
		return buyAll(ctx, tx, "customer-1", "order-1")
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "expected InsufficientStockError, got %v", err)
	assert.Equal(t, "prod-b", stockErr.ProductID)
	assert.EqualValues(t, 1, stockErr.Available)

	stockA, _ := store.Stock("prod-a")
	stockB, _ := store.Stock("prod-b")
	assert.EqualValues(t, 5, stockA)
	assert.EqualValues(t, 1, stockB)

	lines, err := carts.List(ctx, "customer-1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	_, err = memory.NewOrderRepository(store).Get(ctx, "order-1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	pending, err := store.Outbox().PullPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCheckoutStore_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	const (
		buyers = 20
		stock  = 5
	)

	store := memory.NewStore()
	seedProduct(store, "prod-1", 100, stock)
	carts := memory.NewCartRepository(store)
	checkout := memory.NewCheckoutStore(store)
	ctx := context.Background()

	for i := 0; i < buyers; i++ {
		_, err := carts.AddItem(ctx, customerName(i), "prod-1", 1)
		require.NoError(t, err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := checkout.RunInTx(ctx, func(ctx context.Context, tx domain.CheckoutTx) error {
				return buyAll(ctx, tx, customerName(i), "order-"+customerName(i))
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected checkout error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, stock, succeeded)
	assert.Equal(t, buyers-stock, rejected)

	left, _ := store.Stock("prod-1")
	assert.EqualValues(t, 0, left)

	stats, err := memory.NewOrderRepository(store).Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, stock, stats.TotalOrders)
}

func TestCheckoutStore_CanceledContextRollsBack(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "prod-1", 100, 3)
	carts := memory.NewCartRepository(store)

	_, err := carts.AddItem(context.Background(), "customer-1", "prod-1", 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	err = memory.NewCheckoutStore(store).RunInTx(ctx, func(ctx context.Context, tx domain.CheckoutTx) error {
		if err := buyAll(ctx, tx, "customer-1", "order-1"); err != nil {
			return err
		}
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	left, _ := store.Stock("prod-1")
	assert.EqualValues(t, 3, left)
}

func customerName(i int) string {
	return "customer-" + string(rune('a'+i))
}
