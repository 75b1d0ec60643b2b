package app

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// StorageDriver — тип хранилища корзин, заказов и outbox.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска сервиса магазина.
// Все поля сравнимы: конфигурации можно сравнивать через ==.
type Config struct {
	HTTPAddr    string
	GRPCAddr    string
	MetricsAddr string

	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool
	// CatalogSeedPath указывает JSON с товарами для in-memory каталога.
	CatalogSeedPath string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisDisplayTTL time.Duration

	// KafkaBrokers: список брокеров через запятую. Без брокеров события пишутся в лог.
	KafkaBrokers         string
	KafkaClientID        string
	KafkaTopic           string
	KafkaDLQTopic        string
	KafkaBreakerFailures uint32
	KafkaBreakerTimeout  time.Duration

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
	// OutboxMaxPending задаёт порог backlog, после которого readiness отдаёт degraded; 0 отключает проверку.
	OutboxMaxPending int

	IdempotencyTTL              time.Duration
	IdempotencyCleanupInterval  time.Duration
	IdempotencyCleanupBatchSize int

	Currency            string
	CheckoutMaxAttempts int
	CheckoutTimeout     time.Duration
	HTTPRequestTimeout  time.Duration
	ShutdownTimeout     time.Duration
}

// DefaultConfig возвращает настройки для локального запуска без внешних зависимостей.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		GRPCAddr:    ":50051",
		MetricsAddr: ":9090",

		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,

		RedisDisplayTTL: 5 * time.Minute,

		KafkaClientID:        "shop-service",
		KafkaTopic:           "shop.order.events",
		KafkaDLQTopic:        "shop.dlq",
		KafkaBreakerFailures: 5,
		KafkaBreakerTimeout:  30 * time.Second,

		OutboxPollInterval: time.Second,
		OutboxBatchSize:    100,
		OutboxMaxAttempts:  3,
		OutboxRetryDelay:   100 * time.Millisecond,
		OutboxMaxPending:   1000,

		IdempotencyTTL:              24 * time.Hour,
		IdempotencyCleanupInterval:  10 * time.Minute,
		IdempotencyCleanupBatchSize: 500,

		Currency:            "EUR",
		CheckoutMaxAttempts: 3,
		CheckoutTimeout:     10 * time.Second,
		HTTPRequestTimeout:  15 * time.Second,
		ShutdownTimeout:     10 * time.Second,
	}
}

// Validate проверяет согласованность настроек перед запуском.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTPAddr) == "" && strings.TrimSpace(c.GRPCAddr) == "" {
		errs = append(errs, errors.New("at least one of http or grpc address must be set"))
	}
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			errs = append(errs, errors.New("postgres dsn is required for postgres storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}
	if len(strings.TrimSpace(c.Currency)) != 3 {
		errs = append(errs, fmt.Errorf("currency must be a 3-letter code, got %q", c.Currency))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, errors.New("outbox batch size must be > 0"))
	}
	if c.OutboxMaxAttempts <= 0 {
		errs = append(errs, errors.New("outbox max attempts must be > 0"))
	}
	if c.OutboxMaxPending < 0 {
		errs = append(errs, errors.New("outbox max pending must be >= 0"))
	}
	if c.CheckoutMaxAttempts <= 0 {
		errs = append(errs, errors.New("checkout max attempts must be > 0"))
	}
	if c.RedisDB < 0 {
		errs = append(errs, errors.New("redis db must be >= 0"))
	}

	return errors.Join(errs...)
}

func (c Config) kafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
