package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// checkoutAll прогоняет минимальный сценарий checkout без сервисного слоя.
func checkoutAll(ctx context.Context, tx domain.CheckoutTx, customerID, orderID string) error {
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
		ID: orderID, CustomerID: customerID, Status: domain.OrderStatusPending,
		Currency: "EUR", ShippingAddress: "Main street 1", CreatedAt: now, UpdatedAt: now,
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
		AggregateType: domain.AggregateTypeOrder, AggregateID: orderID, EventType: domain.EventTypeOrderCreated,
	})
}

func TestCheckoutStore_PostgresCommitAndRollback(t *testing.T) {
	store := newTestStore(t)
	seedProduct(t, store, "prod-a", 250, 5)
	seedProduct(t, store, "prod-b", 100, 1)
	carts := NewCartRepository(store)
	checkout := NewCheckoutStore(store)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "customer-1", "prod-a", 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, "customer-1", "prod-b", 2)
	require.NoError(t, err)

	err = checkout.RunInTx(ctx, func(ctx context.Context, tx domain.CheckoutTx) error {
		return checkoutAll(ctx, tx, "customer-1", "order-fail")
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "expected InsufficientStockError, got %v", err)
	assert.Equal(t, "prod-b", stockErr.ProductID)
	assert.EqualValues(t, 5, stockOf(t, store, "prod-a"))

	lines, err := carts.List(ctx, "customer-1")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.NoError(t, carts.SetQuantity(ctx, "customer-1", lines[1].ID, 1))
	err = checkout.RunInTx(ctx, func(ctx context.Context, tx domain.CheckoutTx) error {
		return checkoutAll(ctx, tx, "customer-1", "order-ok")
	})
	require.NoError(t, err)

	assert.EqualValues(t, 3, stockOf(t, store, "prod-a"))
	assert.EqualValues(t, 0, stockOf(t, store, "prod-b"))

	lines, err = carts.List(ctx, "customer-1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	order, err := NewOrderRepository(store).Get(ctx, "order-ok")
	require.NoError(t, err)
	assert.EqualValues(t, 600, order.AmountMinor)

	pending, err := NewOutboxRepository(store).PullPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "order-ok", pending[0].AggregateID)
}

func TestCheckoutStore_PostgresAddWaitsForCheckout(t *testing.T) {
	store := newTestStore(t)
	seedProduct(t, store, "prod-a", 250, 5)
	seedProduct(t, store, "prod-b", 100, 5)
	carts := NewCartRepository(store)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, "customer-1", "prod-a", 1)
	require.NoError(t, err)

	locked := make(chan struct{})
	added := make(chan error, 1)
	err = NewCheckoutStore(store).RunInTx(ctx, func(ctx context.Context, tx domain.CheckoutTx) error {
		if _, err := tx.CartLines(ctx, "customer-1"); err != nil {
			return err
		}
		close(locked)
		go func() {
			_, err := carts.AddItem(context.Background(), "customer-1", "prod-b", 1)
			added <- err
		}()

		select {
		case err := <-added:
			return fmt.Errorf("add finished while cart was locked: %v", err)
		case <-time.After(200 * time.Millisecond):
		}
		return checkoutAll(ctx, tx, "customer-1", "order-locked")
	})
	require.NoError(t, err)
	<-locked
	require.NoError(t, <-added)

	lines, err := carts.List(ctx, "customer-1")
	require.NoError(t, err)
	require.Len(t, lines, 1, "line added after checkout must survive it")
	assert.Equal(t, "prod-b", lines[0].ProductID)

	order, err := NewOrderRepository(store).Get(ctx, "order-locked")
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "prod-a", order.Items[0].ProductID)
}

func TestCheckoutStore_PostgresConcurrentCheckoutsNeverOversell(t *testing.T) {
	const (
		buyers = 12
		stock  = 4
	)

	store := newTestStore(t)
	seedProduct(t, store, "prod-hot", 100, stock)
	carts := NewCartRepository(store)
	checkout := NewCheckoutStore(store)
	ctx := context.Background()

	for i := 0; i < buyers; i++ {
		_, err := carts.AddItem(ctx, fmt.Sprintf("buyer-%d", i), "prod-hot", 1)
		require.NoError(t, err)
	}

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customerID := fmt.Sprintf("buyer-%d", i)
			err := checkout.RunInTx(ctx, func(ctx context.Context, tx domain.CheckoutTx) error {
				return checkoutAll(ctx, tx, customerID, "order-"+customerID)
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			default:
				t.Errorf("unexpected checkout error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, stock, succeeded.Load())
	assert.EqualValues(t, buyers-stock, rejected.Load())
	assert.EqualValues(t, 0, stockOf(t, store, "prod-hot"))
}

func TestCartRepository_PostgresFlow(t *testing.T) {
	store := newTestStore(t)
	seedProduct(t, store, "prod-1", 500, 10)
	carts := NewCartRepository(store)
	catalog := NewCatalogRepository(store)
	ctx := context.Background()

	first, err := carts.AddItem(ctx, "customer-1", "prod-1", 1)
	require.NoError(t, err)
	second, err := carts.AddItem(ctx, "customer-1", "prod-1", 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 3, second.Qty)

	_, err = carts.AddItem(ctx, "customer-1", "missing", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.ErrorIs(t, carts.RemoveItem(ctx, "customer-2", first.ID), domain.ErrCartLineNotFound)

	product, err := catalog.GetProduct(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "Books", product.CategoryName)

	_, err = store.DB().ExecContext(ctx, `DELETE FROM products WHERE id = 'prod-1'`)
	require.NoError(t, err)

	lines, err := carts.List(ctx, "customer-1")
	require.NoError(t, err)
	assert.Empty(t, lines, "cart lines must cascade with product deletion")
}
