package idempotency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

type checkoutPayload struct {
	ShippingAddress string `json:"shipping_address"`
}

func TestGuard_ReplaysStoredResponse(t *testing.T) {
	t.Parallel()

	guard := NewGuard(memory.NewIdempotencyRepository(), time.Hour, nil)
	var calls atomic.Int32
	handler := func(context.Context) Outcome {
		calls.Add(1)
		return Outcome{Code: 201, Body: []byte(`{"id":"order-1"}`)}
	}
	req := Request{Key: "k-1", Scope: "alice", Operation: "checkout", Payload: checkoutPayload{"Main st 1"}}

	first, replayed, err := guard.Execute(context.Background(), req, handler)
	require.NoError(t, err)
	assert.False(t, replayed)

	second, replayed, err := guard.Execute(context.Background(), req, handler)
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGuard_ReplaysFailure(t *testing.T) {
	t.Parallel()

	guard := NewGuard(memory.NewIdempotencyRepository(), time.Hour, nil)
	req := Request{Key: "k-1", Scope: "alice", Operation: "checkout", Payload: checkoutPayload{"Main st 1"}}

	_, _, err := guard.Execute(context.Background(), req, func(context.Context) Outcome {
		return Outcome{Code: 409, Body: []byte(`{"error":{"code":"insufficient_stock"}}`), Failed: true}
	})
	require.NoError(t, err)

	out, replayed, err := guard.Execute(context.Background(), req, func(context.Context) Outcome {
		t.Fatal("handler must not run on replay")
		return Outcome{}
	})
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.True(t, out.Failed)
	assert.Equal(t, 409, out.Code)
}

func TestGuard_RetryableFailureReleasesKey(t *testing.T) {
	t.Parallel()

	guard := NewGuard(memory.NewIdempotencyRepository(), time.Hour, nil)
	req := Request{Key: "k-1", Scope: "alice", Operation: "checkout", Payload: checkoutPayload{"Main st 1"}}

	_, _, err := guard.Execute(context.Background(), req, func(context.Context) Outcome {
		return Outcome{Code: 409, Failed: true, Retryable: true}
	})
	require.NoError(t, err)

	out, replayed, err := guard.Execute(context.Background(), req, func(context.Context) Outcome {
		return Outcome{Code: 201, Body: []byte(`{"id":"order-1"}`)}
	})
	require.NoError(t, err)
	assert.False(t, replayed, "retryable failure must not be replayed")
	assert.Equal(t, 201, out.Code)
}

func TestGuard_RejectsDifferentPayload(t *testing.T) {
	t.Parallel()

	guard := NewGuard(memory.NewIdempotencyRepository(), time.Hour, nil)
	ok := func(context.Context) Outcome { return Outcome{Code: 201} }

	_, _, err := guard.Execute(context.Background(),
		Request{Key: "k-1", Scope: "alice", Operation: "checkout", Payload: checkoutPayload{"Main st 1"}}, ok)
	require.NoError(t, err)

	_, _, err = guard.Execute(context.Background(),
		Request{Key: "k-1", Scope: "alice", Operation: "checkout", Payload: checkoutPayload{"Other st 2"}}, ok)
	assert.ErrorIs(t, err, domain.ErrIdempotencyHashMismatch)
}

func TestGuard_KeysAreScopedByActor(t *testing.T) {
	t.Parallel()

	guard := NewGuard(memory.NewIdempotencyRepository(), time.Hour, nil)
	var calls atomic.Int32
	handler := func(context.Context) Outcome {
		calls.Add(1)
		return Outcome{Code: 201}
	}

	for _, scope := range []string{"alice", "bob"} {
		_, replayed, err := guard.Execute(context.Background(),
			Request{Key: "same", Scope: scope, Operation: "checkout", Payload: checkoutPayload{"x"}}, handler)
		require.NoError(t, err)
		assert.False(t, replayed)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestGuard_InProgress(t *testing.T) {
	t.Parallel()

	guard := NewGuard(memory.NewIdempotencyRepository(), time.Hour, nil)
	req := Request{Key: "k-1", Scope: "alice", Operation: "checkout", Payload: checkoutPayload{"x"}}

	_, _, err := guard.Execute(context.Background(), req, func(ctx context.Context) Outcome {
		_, _, innerErr := guard.Execute(ctx, req, func(context.Context) Outcome { return Outcome{} })
		if !errors.Is(innerErr, ErrRequestInProgress) {
			t.Errorf("expected ErrRequestInProgress, got %v", innerErr)
		}
		return Outcome{Code: 201}
	})
	require.NoError(t, err)
}

func TestGuard_WithoutKeyAlwaysRuns(t *testing.T) {
	t.Parallel()

	guard := NewGuard(memory.NewIdempotencyRepository(), time.Hour, nil)
	var calls atomic.Int32
	for i := 0; i < 3; i++ {
		_, replayed, err := guard.Execute(context.Background(),
			Request{Scope: "alice", Operation: "checkout"}, func(context.Context) Outcome {
				calls.Add(1)
				return Outcome{Code: 201}
			})
		require.NoError(t, err)
		assert.False(t, replayed)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestRequestHash_DependsOnEveryPart(t *testing.T) {
	t.Parallel()

	base, err := RequestHash("checkout", "alice", checkoutPayload{"x"})
	require.NoError(t, err)

	for name, args := range map[string][3]any{
		"operation": {"status", "alice", checkoutPayload{"x"}},
		"scope":     {"checkout", "bob", checkoutPayload{"x"}},
		"payload":   {"checkout", "alice", checkoutPayload{"y"}},
	} {
		other, err := RequestHash(args[0].(string), args[1].(string), args[2])
		require.NoError(t, err, name)
		assert.NotEqual(t, base, other, name)
	}
}

func TestGuard_ScopeAndKeyDoNotCollide(t *testing.T) {
	t.Parallel()

	guard := NewGuard(memory.NewIdempotencyRepository(), time.Hour, nil)
	handler := func(context.Context) Outcome { return Outcome{Code: 201} }

	_, _, err := guard.Execute(context.Background(),
		Request{Key: "c", Scope: "a:b", Operation: "checkout", Payload: checkoutPayload{"x"}}, handler)
	require.NoError(t, err)

	out, replayed, err := guard.Execute(context.Background(),
		Request{Key: "b:c", Scope: "a", Operation: "checkout", Payload: checkoutPayload{"y"}}, handler)
	require.NoError(t, err, "different scope must not hit the stored key")
	assert.False(t, replayed)
	assert.Equal(t, 201, out.Code)

	assert.NotEqual(t, scopedKey("a:b", "c"), scopedKey("a", "b:c"))
}

func TestRequestHash_RawBytes(t *testing.T) {
	t.Parallel()

	a, err := RequestHash("checkout", "alice", []byte{0x0a, 0x01, 'x'})
	require.NoError(t, err)
	b, err := RequestHash("checkout", "alice", []byte{0x0a, 0x01, 'y'})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	again, err := RequestHash("checkout", "alice", []byte{0x0a, 0x01, 'x'})
	require.NoError(t, err)
	assert.Equal(t, a, again)
}
