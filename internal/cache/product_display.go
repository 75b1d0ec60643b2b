package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const (
	keyPrefix  = "shop:product-display:"
	defaultTTL = 5 * time.Minute
)

// ProductDisplayCache держит read-through кеш данных товаров для ответов API.
// Цены в заказах из него никогда не берутся: кеш обслуживает только отображение.
type ProductDisplayCache struct {
	client *redis.Client
	source domain.ProductDisplayReader
	ttl    time.Duration
	logger *log.Entry
	sfg    singleflight.Group
}

// NewProductDisplayCache создаёт кеш поверх source. Ошибки Redis не ломают чтение:
// при них данные берутся напрямую из source.
func NewProductDisplayCache(client *redis.Client, source domain.ProductDisplayReader, ttl time.Duration, logger *log.Entry) *ProductDisplayCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = log.WithField("component", "product-display-cache")
	}
	return &ProductDisplayCache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// Displays возвращает данные товаров; отсутствующие в каталоге id пропускаются.
func (c *ProductDisplayCache) Displays(ctx context.Context, productIDs []string) (map[string]domain.ProductDisplay, error) {
	ids := uniqueSorted(productIDs)
	result := make(map[string]domain.ProductDisplay, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	missing, err := c.readCached(ctx, ids, result)
	if err != nil {
		c.logger.WithError(err).Warn("redis read failed, falling back to catalog")
		missing = ids
	}
	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := c.load(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, display := range loaded {
		result[id] = display
	}
	return result, nil
}

// Invalidate удаляет закешированные записи товаров.
func (c *ProductDisplayCache) Invalidate(ctx context.Context, productIDs ...string) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, cacheKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Ping проверяет доступность Redis (для health).
func (c *ProductDisplayCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ProductDisplayCache) readCached(ctx context.Context, ids []string, dst map[string]domain.ProductDisplay) ([]string, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget failed: %w", err)
	}

	var missing []string
	for i, raw := range values {
		str, ok := raw.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var display domain.ProductDisplay
		if err := json.Unmarshal([]byte(str), &display); err != nil {
			c.logger.WithError(err).WithField("product_id", ids[i]).Warn("corrupted cache entry")
			missing = append(missing, ids[i])
			continue
		}
		dst[ids[i]] = display
	}
	return missing, nil
}

// load читает промахи из каталога; одинаковые одновременные промахи склеиваются singleflight.
func (c *ProductDisplayCache) load(ctx context.Context, ids []string) (map[string]domain.ProductDisplay, error) {
	v, err, _ := c.sfg.Do(strings.Join(ids, ","), func() (any, error) {
		displays, err := c.source.Displays(ctx, ids)
		if err != nil {
			return nil, err
		}
		c.store(context.WithoutCancel(ctx), displays)
		return displays, nil
	})
	if err != nil {
		return nil, err
	}

	displays, ok := v.(map[string]domain.ProductDisplay)
	if !ok {
		return nil, errors.New("unexpected singleflight result")
	}
	// Результат singleflight общий для всех ожидающих, отдаём копию.
	out := make(map[string]domain.ProductDisplay, len(displays))
	for id, d := range displays {
		out[id] = d
	}
	return out, nil
}

func (c *ProductDisplayCache) store(ctx context.Context, displays map[string]domain.ProductDisplay) {
	if len(displays) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for id, display := range displays {
		data, err := json.Marshal(display)
		if err != nil {
			c.logger.WithError(err).WithField("product_id", id).Warn("failed to encode cache entry")
			continue
		}
		pipe.Set(ctx, cacheKey(id), data, c.ttlWithJitter())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.WithError(err).Warn("redis write failed")
	}
}

// ttlWithJitter размазывает истечение записей, загруженных одним запросом.
func (c *ProductDisplayCache) ttlWithJitter() time.Duration {
	jitter := c.ttl / 5
	if jitter <= 0 {
		return c.ttl
	}
	return c.ttl + rand.N(jitter)
}

func cacheKey(productID string) string {
	return keyPrefix + productID
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

var _ domain.ProductDisplayReader = (*ProductDisplayCache)(nil)
