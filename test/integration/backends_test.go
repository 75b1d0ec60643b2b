package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
	"github.com/vladislavdragonenkov/shop/internal/storage/postgres"
)

func TestShopOnMemoryStorage(t *testing.T) {
	suite.Run(t, &ShopSuite{newBackend: func() backend {
		store := memory.NewStore()
		return backend{
			catalog:       memory.NewCatalogRepository(store),
			carts:         memory.NewCartRepository(store),
			checkoutStore: memory.NewCheckoutStore(store),
			orders:        memory.NewOrderRepository(store),
			outbox:        store.Outbox(),
			timeline:      memory.NewTimelineRepository(),
			idempotency:   memory.NewIdempotencyRepository(),
			seedProduct: func(id string, priceMinor int64, stock int32) {
				store.UpsertProduct(domain.Product{ID: id, Name: "Product " + id, PriceMinor: priceMinor, Stock: stock, Active: true})
			},
			setPrice: func(id string, priceMinor int64) {
				require.NoError(t, store.SetPrice(id, priceMinor))
			},
			stock: func(id string) int32 {
				stock, _ := store.Stock(id)
				return stock
			},
		}
	}})
}

// TestShopOnPostgresStorage поднимает одноразовый Postgres в Docker.
func TestShopOnPostgresStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container is skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	store := startPostgres(t)

	suite.Run(t, &ShopSuite{newBackend: func() backend {
		truncate(t, store)
		return backend{
			catalog:       postgres.NewCatalogRepository(store),
			carts:         postgres.NewCartRepository(store),
			checkoutStore: postgres.NewCheckoutStore(store),
			orders:        postgres.NewOrderRepository(store),
			outbox:        postgres.NewOutboxRepository(store),
			timeline:      postgres.NewTimelineRepository(store),
			idempotency:   postgres.NewIdempotencyRepository(store),
			seedProduct: func(id string, priceMinor int64, stock int32) {
				exec(t, store, `
					INSERT INTO products (id, name, slug, price_minor, stock, active)
					VALUES ($1, $2, $1, $3, $4, TRUE)
					ON CONFLICT (id) DO UPDATE SET price_minor = EXCLUDED.price_minor, stock = EXCLUDED.stock
				`, id, "Product "+id, priceMinor, stock)
			},
			setPrice: func(id string, priceMinor int64) {
				exec(t, store, `UPDATE products SET price_minor = $2 WHERE id = $1`, id, priceMinor)
			},
			stock: func(id string) int32 {
				var stock int32
				err := store.DB().QueryRowContext(context.Background(), `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock)
				require.NoError(t, err)
				return stock
			},
		}
	}})
}

func startPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shop"),
		tcpostgres.WithUsername("shop"),
		tcpostgres.WithPassword("shop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := postgres.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.EnsureSchema(ctx))
	return store
}

func truncate(t *testing.T, store *postgres.Store) {
	exec(t, store, `
		TRUNCATE TABLE
			idempotency_keys,
			outbox_messages,
			timeline_events,
			order_items,
			orders,
			cart_items,
			products,
			categories
		RESTART IDENTITY CASCADE
	`)
}

func exec(t *testing.T, store *postgres.Store, query string, args ...any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := store.DB().ExecContext(ctx, query, args...)
	require.NoError(t, err)
}
