package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

// placeOrder проводит заказ через checkout-транзакцию: другого пути создания заказа нет.
func placeOrder(t *testing.T, store *memory.Store, order domain.Order) {
	t.Helper()

	err := memory.NewCheckoutStore(store).RunInTx(context.Background(), func(ctx context.Context, tx domain.CheckoutTx) error {
		return tx.InsertOrder(ctx, order)
	})
	if err != nil {
		t.Fatalf("insert order %s: %v", order.ID, err)
	}
}

func sampleOrder(id, customerID string, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:              id,
		CustomerID:      customerID,
		Status:          domain.OrderStatusPending,
		Currency:        "EUR",
		AmountMinor:     1000,
		ShippingAddress: "10 Downing Street",
		Items: []domain.OrderItem{
			{ID: id + "-item", ProductID: "prod-1", Qty: 2, PriceMinor: 500, CreatedAt: createdAt},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestOrderRepository_GetForCustomerMasksOwnership(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store)
	ctx := context.Background()

	placeOrder(t, store, sampleOrder("order-b", "customer-b", time.Now().UTC()))

	if _, err := repo.GetForCustomer(ctx, "order-b", "customer-b"); err != nil {
		t.Fatalf("owner must see the order: %v", err)
	}

	_, errForeign := repo.GetForCustomer(ctx, "order-b", "customer-a")
	_, errMissing := repo.GetForCustomer(ctx, "order-missing", "customer-a")
	if !errors.Is(errForeign, domain.ErrOrderNotFound) || !errors.Is(errMissing, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign and missing ids, got %v / %v", errForeign, errMissing)
	}
	if errForeign.Error() != errMissing.Error() {
		t.Fatalf("foreign and missing errors must be indistinguishable: %q vs %q", errForeign, errMissing)
	}
}

func TestOrderRepository_ListNewestFirst(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	placeOrder(t, store, sampleOrder("order-1", "customer-1", base))
	placeOrder(t, store, sampleOrder("order-2", "customer-1", base.Add(time.Minute)))
	placeOrder(t, store, sampleOrder("order-3", "customer-2", base.Add(2*time.Minute)))

	own, err := repo.ListByCustomer(ctx, "customer-1", 0)
	if err != nil {
		t.Fatalf("ListByCustomer failed: %v", err)
	}
	if len(own) != 2 || own[0].ID != "order-2" || own[1].ID != "order-1" {
		t.Fatalf("unexpected own orders order: %+v", own)
	}

	limited, err := repo.ListByCustomer(ctx, "customer-1", 1)
	if err != nil {
		t.Fatalf("ListByCustomer with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 order with limit, got %d", len(limited))
	}

	all, err := repo.ListAll(ctx, 0)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != "order-3" {
		t.Fatalf("unexpected all orders: %+v", all)
	}
}

func TestOrderRepository_UpdateStatusKeepsTotals(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store)
	ctx := context.Background()

	placeOrder(t, store, sampleOrder("order-1", "customer-1", time.Now().UTC()))

	updated, err := repo.UpdateStatus(ctx, "order-1", domain.OrderStatusShipped, time.Now().UTC())
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != domain.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", updated.Status)
	}
	if updated.Version != 1 {
		t.Fatalf("expected version 1, got %d", updated.Version)
	}
	if updated.AmountMinor != 1000 || len(updated.Items) != 1 || updated.Items[0].PriceMinor != 500 {
		t.Fatalf("status update must not touch totals or lines: %+v", updated)
	}

	if _, err := repo.UpdateStatus(ctx, "missing", domain.OrderStatusShipped, time.Now().UTC()); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalOrders != 1 || stats.RevenueMinor != 1000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestOrderRepository_ReturnsCopies(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewOrderRepository(store)
	ctx := context.Background()

	placeOrder(t, store, sampleOrder("order-1", "customer-1", time.Now().UTC()))

	got, err := repo.Get(ctx, "order-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got.Items[0].PriceMinor = 1

	again, err := repo.Get(ctx, "order-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Items[0].PriceMinor != 500 {
		t.Fatalf("stored order mutated through returned copy: %d", again.Items[0].PriceMinor)
	}
}
