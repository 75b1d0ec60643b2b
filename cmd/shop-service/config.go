package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/app"
)

const (
	envHTTPAddr    = "SHOP_HTTP_ADDR"
	envGRPCAddr    = "SHOP_GRPC_ADDR"
	envMetricsAddr = "SHOP_METRICS_ADDR"

	envStorageDriver       = "SHOP_STORAGE_DRIVER"
	envPostgresDSN         = "SHOP_POSTGRES_DSN"
	envPostgresAutoMigrate = "SHOP_POSTGRES_AUTO_MIGRATE"
	envCatalogSeed         = "SHOP_CATALOG_SEED"

	envRedisAddr       = "SHOP_REDIS_ADDR"
	envRedisPassword   = "SHOP_REDIS_PASSWORD"
	envRedisDB         = "SHOP_REDIS_DB"
	envRedisDisplayTTL = "SHOP_REDIS_DISPLAY_TTL"

	envKafkaBrokers  = "SHOP_KAFKA_BROKERS"
	envKafkaClientID = "SHOP_KAFKA_CLIENT_ID"
	envKafkaTopic    = "SHOP_KAFKA_TOPIC"
	envKafkaDLQTopic = "SHOP_KAFKA_DLQ_TOPIC"

	envOutboxPollInterval = "SHOP_OUTBOX_POLL_INTERVAL"
	envOutboxBatchSize    = "SHOP_OUTBOX_BATCH_SIZE"
	envOutboxMaxAttempts  = "SHOP_OUTBOX_MAX_ATTEMPTS"
	envOutboxRetryDelay   = "SHOP_OUTBOX_RETRY_DELAY"
	envOutboxMaxPending   = "SHOP_OUTBOX_MAX_PENDING"

	envIdempotencyTTL              = "SHOP_IDEMPOTENCY_TTL"
	envIdempotencyCleanupInterval  = "SHOP_IDEMPOTENCY_CLEANUP_INTERVAL"
	envIdempotencyCleanupBatchSize = "SHOP_IDEMPOTENCY_CLEANUP_BATCH_SIZE"

	envCurrency            = "SHOP_CURRENCY"
	envCheckoutMaxAttempts = "SHOP_CHECKOUT_MAX_ATTEMPTS"
	envCheckoutTimeout     = "SHOP_CHECKOUT_TIMEOUT"
	envHTTPRequestTimeout  = "SHOP_HTTP_REQUEST_TIMEOUT"
	envShutdownTimeout     = "SHOP_SHUTDOWN_TIMEOUT"

	envLogLevel  = "SHOP_LOG_LEVEL"
	envLogFormat = "SHOP_LOG_FORMAT"
)

type envLookup func(string) (string, bool)

// readConfig читает конфигурацию из окружения процесса.
func readConfig() (app.Config, []string) {
	return readConfigFromEnv(os.LookupEnv)
}

// readConfigFromEnv накладывает переменные окружения на DefaultConfig.
// Некорректное значение не останавливает запуск: поле сохраняет значение по умолчанию,
// а описание ошибки попадает в warnings.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	warn := func(key, value string, err error) {
		warnings = append(warnings, fmt.Sprintf("invalid %s=%q: %v", key, value, err))
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseBool(v)
		if err != nil {
			warn(key, v, err)
			return
		}
		*dst = parsed
	}
	integer := func(key string, dst *int, valid func(int) bool, rule string) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseInt(v, valid, rule)
		if err != nil {
			warn(key, v, err)
			return
		}
		*dst = parsed
	}
	duration := func(key string, dst *time.Duration, valid func(time.Duration) bool, rule string) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseDuration(v, valid, rule)
		if err != nil {
			warn(key, v, err)
			return
		}
		*dst = parsed
	}
	positive := func(v int) bool { return v > 0 }
	nonNegative := func(v int) bool { return v >= 0 }
	positiveDuration := func(v time.Duration) bool { return v > 0 }
	nonNegativeDuration := func(v time.Duration) bool { return v >= 0 }

	str(envHTTPAddr, &cfg.HTTPAddr)
	str(envGRPCAddr, &cfg.GRPCAddr)
	str(envMetricsAddr, &cfg.MetricsAddr)

	var driver string
	str(envStorageDriver, &driver)
	if driver != "" {
		cfg.StorageDriver = app.StorageDriver(strings.ToLower(driver))
	}
	str(envPostgresDSN, &cfg.PostgresDSN)
	boolean(envPostgresAutoMigrate, &cfg.PostgresAutoMigrate)
	str(envCatalogSeed, &cfg.CatalogSeedPath)

	str(envRedisAddr, &cfg.RedisAddr)
	str(envRedisPassword, &cfg.RedisPassword)
	integer(envRedisDB, &cfg.RedisDB, nonNegative, "must be >= 0")
	duration(envRedisDisplayTTL, &cfg.RedisDisplayTTL, positiveDuration, "must be > 0")

	str(envKafkaBrokers, &cfg.KafkaBrokers)
	str(envKafkaClientID, &cfg.KafkaClientID)
	str(envKafkaTopic, &cfg.KafkaTopic)
	str(envKafkaDLQTopic, &cfg.KafkaDLQTopic)

	duration(envOutboxPollInterval, &cfg.OutboxPollInterval, positiveDuration, "must be > 0")
	integer(envOutboxBatchSize, &cfg.OutboxBatchSize, positive, "must be > 0")
	integer(envOutboxMaxAttempts, &cfg.OutboxMaxAttempts, positive, "must be > 0")
	duration(envOutboxRetryDelay, &cfg.OutboxRetryDelay, nonNegativeDuration, "must be >= 0")
	integer(envOutboxMaxPending, &cfg.OutboxMaxPending, nonNegative, "must be >= 0")

	duration(envIdempotencyTTL, &cfg.IdempotencyTTL, positiveDuration, "must be > 0")
	duration(envIdempotencyCleanupInterval, &cfg.IdempotencyCleanupInterval, positiveDuration, "must be > 0")
	integer(envIdempotencyCleanupBatchSize, &cfg.IdempotencyCleanupBatchSize, positive, "must be > 0")

	var currency string
	str(envCurrency, &currency)
	if currency != "" {
		cfg.Currency = strings.ToUpper(currency)
	}
	integer(envCheckoutMaxAttempts, &cfg.CheckoutMaxAttempts, positive, "must be > 0")
	duration(envCheckoutTimeout, &cfg.CheckoutTimeout, positiveDuration, "must be > 0")
	duration(envHTTPRequestTimeout, &cfg.HTTPRequestTimeout, positiveDuration, "must be > 0")
	duration(envShutdownTimeout, &cfg.ShutdownTimeout, positiveDuration, "must be > 0")

	return cfg, warnings
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean")
	}
}

func parseInt(raw string, valid func(int) bool, rule string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if valid != nil && !valid(value) {
		return 0, fmt.Errorf("%s", rule)
	}
	return value, nil
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if valid != nil && !valid(value) {
		return 0, fmt.Errorf("%s", rule)
	}
	return value, nil
}
