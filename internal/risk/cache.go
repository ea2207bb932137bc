package risk

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safe_route_system/internal/geo"
	"github.com/sirupsen/logrus"
)

// Cache мемоизирует индекс опасности по географической точке.
// Ключ — координаты, округлённые до 5 знаков (~1 метр): рёбра с почти
// совпадающими серединами схлопываются в один ключ независимо от
// дрожания float64.
//
// Локальный слой — sync.Map на время жизни процесса; поверх него
// опциональный общий слой в Redis с TTL, разделяемый между запросами
// и экземплярами. Гонка двух конкурентных вычислений допустима
// (оба вернут одно и то же значение), частично записанных значений
// не бывает.
type Cache struct {
	local       sync.Map
	redisClient *redis.Client
	ttl         time.Duration
	logger      *logrus.Logger
}

// NewCache создает кэш риска. redisClient может быть nil — тогда
// используется только локальный слой.
func NewCache(redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *Cache {
	return &Cache{
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

// GetOrCompute возвращает закешированный индекс опасности для точки
// или вычисляет его через compute. Ошибка compute не кешируется.
func (c *Cache) GetOrCompute(ctx context.Context, point geo.Point, compute func() (float64, error)) (float64, error) {
	key := geo.Key(point)

	if v, ok := c.local.Load(key); ok {
		return v.(float64), nil
	}

	if v, ok := c.fromRedis(ctx, key); ok {
		actual, _ := c.local.LoadOrStore(key, v)
		return actual.(float64), nil
	}

	value, err := compute()
	if err != nil {
		return 0, err
	}

	actual, loaded := c.local.LoadOrStore(key, value)
	if !loaded {
		c.toRedis(ctx, key, value)
	}
	return actual.(float64), nil
}

func (c *Cache) fromRedis(ctx context.Context, key string) (float64, bool) {
	if c.redisClient == nil {
		return 0, false
	}
	val, err := c.redisClient.Get(ctx, "risk:"+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).Warn("Failed to get risk index from Redis cache")
		}
		return 0, false
	}
	value, err := strconv.ParseFloat(val, 64)
	if err != nil {
		c.logger.WithError(err).Warn("Malformed risk index in Redis cache")
		return 0, false
	}
	return value, true
}

func (c *Cache) toRedis(ctx context.Context, key string, value float64) {
	if c.redisClient == nil {
		return
	}
	val := strconv.FormatFloat(value, 'f', 2, 64)
	if err := c.redisClient.Set(ctx, "risk:"+key, val, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Failed to set risk index in Redis cache")
	}
}
