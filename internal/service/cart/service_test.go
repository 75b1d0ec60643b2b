package cart_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/cart"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

var buyer = domain.Actor{ID: "customer-1"}

func newCartService(t *testing.T) (*cart.Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.UpsertProduct(domain.Product{ID: "prod-1", Name: "Mug", PriceMinor: 450, Stock: 10, Active: true})
	store.UpsertProduct(domain.Product{ID: "prod-2", Name: "Tea", PriceMinor: 1200, Stock: 2, Active: true})
	store.UpsertProduct(domain.Product{ID: "prod-off", Name: "Retired", PriceMinor: 100, Stock: 5, Active: false})

	return cart.NewService(memory.NewCartRepository(store), memory.NewCatalogRepository(store), nil, nil), store
}

func TestService_AddThenAddAccumulates(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, buyer, "prod-1", 3)
	require.NoError(t, err)
	c, err := svc.Add(ctx, buyer, "prod-1", 2)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.EqualValues(t, 5, c.Lines[0].Line.Qty)
	assert.EqualValues(t, 5*450, c.TotalMinor)
}

func TestService_AddRejectsQuantityOverflow(t *testing.T) {
	svc, store := newCartService(t)
	store.UpsertProduct(domain.Product{ID: "prod-bulk", Name: "Nails", PriceMinor: 1, Stock: math.MaxInt32, Active: true})
	ctx := context.Background()

	_, err := svc.Add(ctx, buyer, "prod-bulk", math.MaxInt32)
	require.NoError(t, err)

	_, err = svc.Add(ctx, buyer, "prod-bulk", 2)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	c, err := svc.View(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.EqualValues(t, math.MaxInt32, c.Lines[0].Line.Qty)
	assert.EqualValues(t, math.MaxInt32, c.TotalMinor)
}

func TestService_AddThenUpdateSetsExactQuantity(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, buyer, "prod-1", 3)
	require.NoError(t, err)
	c, err = svc.Update(ctx, buyer, c.Lines[0].Line.ID, 2)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.EqualValues(t, 2, c.Lines[0].Line.Qty)
}

func TestService_AddValidation(t *testing.T) {
	tests := []struct {
		name      string
		actor     domain.Actor
		productID string
		qty       int32
		check     func(t *testing.T, err error)
	}{
		{
			name: "anonymous", actor: domain.Actor{}, productID: "prod-1", qty: 1,
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, domain.ErrUnauthenticated) },
		},
		{
			name: "zero quantity", actor: buyer, productID: "prod-1", qty: 0,
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, domain.ErrInvalidQuantity) },
		},
		{
			name: "unknown product", actor: buyer, productID: "missing", qty: 1,
			check: func(t *testing.T, err error) { assert.True(t, domain.IsNotFound(err), "got %v", err) },
		},
		{
			name: "inactive product", actor: buyer, productID: "prod-off", qty: 1,
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, domain.ErrProductNotFound) },
		},
		{
			name: "over stock", actor: buyer, productID: "prod-2", qty: 3,
			check: func(t *testing.T, err error) {
				var stockErr *domain.InsufficientStockError
				require.True(t, errors.As(err, &stockErr), "got %v", err)
				assert.Equal(t, domain.StockPhaseAdd, stockErr.Phase)
				assert.EqualValues(t, 2, stockErr.Available)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newCartService(t)
			_, err := svc.Add(context.Background(), tt.actor, tt.productID, tt.qty)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestService_UpdateToZeroRemovesAndIsIdempotent(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, buyer, "prod-1", 1)
	require.NoError(t, err)
	lineID := c.Lines[0].Line.ID

	c, err = svc.Update(ctx, buyer, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)

	c, err = svc.Update(ctx, buyer, lineID, 0)
	require.NoError(t, err, "removing an absent line through update is not an error")
	assert.Empty(t, c.Lines)

	_, err = svc.Update(ctx, buyer, lineID, 2)
	assert.ErrorIs(t, err, domain.ErrCartLineNotFound)
}

func TestService_ForeignLineIsNotFound(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, buyer, "prod-1", 1)
	require.NoError(t, err)

	other := domain.Actor{ID: "customer-2"}
	_, err = svc.Update(ctx, other, c.Lines[0].Line.ID, 5)
	assert.ErrorIs(t, err, domain.ErrCartLineNotFound)
	_, err = svc.Remove(ctx, other, c.Lines[0].Line.ID)
	assert.ErrorIs(t, err, domain.ErrCartLineNotFound)
}

func TestService_ViewUsesCurrentPrices(t *testing.T) {
	svc, store := newCartService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, buyer, "prod-1", 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, buyer, "prod-2", 1)
	require.NoError(t, err)

	require.NoError(t, store.SetPrice("prod-1", 500))

	c, err := svc.View(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, c.Lines, 2)
	assert.Equal(t, "prod-1", c.Lines[0].Line.ProductID)
	assert.EqualValues(t, 2*500+1200, c.TotalMinor)
}

func TestService_ClearAlwaysSucceeds(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	c, err := svc.Clear(ctx, buyer)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
	assert.NotNil(t, c.Lines)

	_, err = svc.Add(ctx, buyer, "prod-1", 1)
	require.NoError(t, err)
	c, err = svc.Clear(ctx, buyer)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
	assert.Zero(t, c.TotalMinor)
}
