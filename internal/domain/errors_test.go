package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassifiers(t *testing.T) {
	type kinds struct {
		notFound, conflict, validation, version, idempotency, stock bool
	}
	tests := []struct {
		name string
		err  error
		want kinds
	}{
		{name: "nil", err: nil},
		{name: "product not found", err: ErrProductNotFound, want: kinds{notFound: true}},
		{name: "product unavailable", err: &ProductUnavailableError{ProductID: "p"}, want: kinds{notFound: true}},
		{name: "wrapped cart line", err: fmt.Errorf("remove: %w", ErrCartLineNotFound), want: kinds{notFound: true}},
		{name: "order not found", err: ErrOrderNotFound, want: kinds{notFound: true}},
		{name: "concurrent update", err: ErrConcurrentUpdate, want: kinds{conflict: true}},
		{name: "checkout conflict", err: ErrCheckoutConflict, want: kinds{conflict: true}},
		{name: "version conflict", err: ErrOrderVersionConflict, want: kinds{conflict: true, version: true}},
		{
			name: "joined version conflict",
			err:  errors.Join(ErrOrderVersionConflict, errors.New("extra")),
			want: kinds{conflict: true, version: true},
		},
		{name: "shipping address", err: ErrShippingAddressRequired, want: kinds{validation: true}},
		{name: "invalid quantity", err: ErrInvalidQuantity, want: kinds{validation: true}},
		{name: "key taken", err: ErrIdempotencyKeyAlreadyExists, want: kinds{idempotency: true}},
		{
			name: "joined hash mismatch",
			err:  errors.Join(ErrIdempotencyHashMismatch, errors.New("extra")),
			want: kinds{idempotency: true},
		},
		{name: "insufficient stock", err: &InsufficientStockError{ProductID: "p"}, want: kinds{stock: true}},
		{name: "empty cart", err: ErrEmptyCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds{
				notFound:    IsNotFound(tt.err),
				conflict:    IsConflict(tt.err),
				validation:  IsValidation(tt.err),
				version:     IsVersionConflict(tt.err),
				idempotency: IsIdempotencyConflict(tt.err),
				stock:       IsInsufficientStock(tt.err),
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsufficientStockError(t *testing.T) {
	tests := []struct {
		name    string
		err     *InsufficientStockError
		message string
	}{
		{
			name:    "named product",
			err:     &InsufficientStockError{ProductID: "prod-1", ProductName: "Lampe", Requested: 3, Available: 1, Phase: StockPhaseCheckout},
			message: "insufficient stock for Lampe: requested 3, available 1",
		},
		{
			name:    "falls back to id",
			err:     &InsufficientStockError{ProductID: "prod-2", Requested: 2, Phase: StockPhaseAdd},
			message: "insufficient stock for prod-2: requested 2, available 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("checkout: %w", tt.err)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.ErrorIs(t, wrapped, ErrInsufficientStock)

			var stockErr *InsufficientStockError
			require.ErrorAs(t, wrapped, &stockErr)
			assert.Equal(t, tt.err.ProductID, stockErr.ProductID)
			assert.Equal(t, tt.err.Phase, stockErr.Phase)
		})
	}
}

func TestProductUnavailableError(t *testing.T) {
	err := &ProductUnavailableError{ProductID: "prod-9"}
	assert.EqualError(t, err, "product prod-9 is not available")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestActor(t *testing.T) {
	assert.True(t, Actor{ID: "a", Role: "Admin"}.IsAdmin(), "role check ignores case")
	assert.False(t, Actor{ID: "a", Role: "customer"}.IsAdmin())
	assert.True(t, Actor{ID: "a"}.Valid())
	assert.False(t, Actor{ID: "  "}.Valid())
}
