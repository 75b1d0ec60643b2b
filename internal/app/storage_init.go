package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/shop/internal/health"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
	"github.com/vladislavdragonenkov/shop/internal/storage/postgres"
)

// runtimeDependencies собирает репозитории выбранного хранилища.
type runtimeDependencies struct {
	catalog         domain.Catalog
	carts           domain.CartRepository
	checkoutStore   domain.CheckoutStore
	orders          domain.OrderRepository
	outboxRepo      domain.OutboxRepository
	timelineRepo    domain.TimelineRepository
	idempotencyRepo domain.IdempotencyRepository
	storageChecker  healthcheck.Checker
	closeFn         func() error
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	driver := StorageDriver(strings.ToLower(strings.TrimSpace(string(cfg.StorageDriver))))
	if driver == "" {
		driver = StorageDriverMemory
	}

	switch driver {
	case StorageDriverMemory:
		return initMemoryDependencies(cfg, logger)
	case StorageDriverPostgres:
		return initPostgresDependencies(ctx, cfg, logger)
	default:
		return runtimeDependencies{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func initMemoryDependencies(cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	store := memory.NewStore()
	if cfg.CatalogSeedPath != "" {
		n, err := seedCatalog(store, cfg.CatalogSeedPath)
		if err != nil {
			return runtimeDependencies{}, err
		}
		logger.WithFields(log.Fields{"path": cfg.CatalogSeedPath, "products": n}).Info("catalog seeded")
	}
	logger.Info("using in-memory storage")

	return runtimeDependencies{
		catalog:         memory.NewCatalogRepository(store),
		carts:           memory.NewCartRepository(store),
		checkoutStore:   memory.NewCheckoutStore(store),
		orders:          memory.NewOrderRepository(store),
		outboxRepo:      store.Outbox(),
		timelineRepo:    memory.NewTimelineRepository(),
		idempotencyRepo: memory.NewIdempotencyRepository(),
		storageChecker:  healthcheck.NewPingChecker("storage", func(context.Context) error { return nil }),
		closeFn:         func() error { return nil },
	}, nil
}

func initPostgresDependencies(ctx context.Context, cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	dsn := strings.TrimSpace(cfg.PostgresDSN)
	if dsn == "" {
		return runtimeDependencies{}, errors.New("postgres dsn is required for postgres storage")
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return runtimeDependencies{}, err
	}
	if cfg.PostgresAutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return runtimeDependencies{}, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres migrations applied")
	}
	logger.Info("using postgres storage")

	return runtimeDependencies{
		catalog:         postgres.NewCatalogRepository(store),
		carts:           postgres.NewCartRepository(store),
		checkoutStore:   postgres.NewCheckoutStore(store),
		orders:          postgres.NewOrderRepository(store),
		outboxRepo:      postgres.NewOutboxRepository(store),
		timelineRepo:    postgres.NewTimelineRepository(store),
		idempotencyRepo: postgres.NewIdempotencyRepository(store),
		storageChecker:  healthcheck.NewPingChecker("storage", store.Ping),
		closeFn:         store.Close,
	}, nil
}

type seedProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	PriceMinor   int64  `json:"price_minor"`
	Stock        int32  `json:"stock"`
	Active       *bool  `json:"active"`
}

// seedCatalog загружает товары из JSON-массива в in-memory каталог.
// Поле active по умолчанию true.
func seedCatalog(store *memory.Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read catalog seed: %w", err)
	}

	var products []seedProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return 0, fmt.Errorf("decode catalog seed: %w", err)
	}

	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return 0, fmt.Errorf("catalog seed: product #%d has empty id", i)
		}
		if p.PriceMinor < 0 || p.Stock < 0 {
			return 0, fmt.Errorf("catalog seed: product %q has negative price or stock", p.ID)
		}
		active := true
		if p.Active != nil {
			active = *p.Active
		}
		store.UpsertProduct(domain.Product{
			ID:           p.ID,
			Name:         p.Name,
			Slug:         p.Slug,
			Description:  p.Description,
			ImageURL:     p.ImageURL,
			CategoryID:   p.CategoryID,
			CategoryName: p.CategoryName,
			PriceMinor:   p.PriceMinor,
			Stock:        p.Stock,
			Active:       active,
		})
	}
	return len(products), nil
}
