package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safe_route_system/internal/models"
)

const (
	alertQueueKey = "route_alerts"
)

// RouteAlertEvent - структура для данных оповещения об опасном маршруте
type RouteAlertEvent struct {
	OriginLat   float64            `json:"origin_lat"`
	OriginLon   float64            `json:"origin_lon"`
	DestLat     float64            `json:"dest_lat"`
	DestLon     float64            `json:"dest_lon"`
	DangerLevel float64            `json:"danger_level"`
	Timestamp   time.Time          `json:"timestamp"`
	Incidents   []*models.Incident `json:"incidents,omitempty"` // Инциденты, повлиявшие на маршрут
}

// AlertPublisher - интерфейс для публикации оповещений
type AlertPublisher interface {
	Publish(ctx context.Context, event RouteAlertEvent) error
}

// RedisAlertPublisher - реализация AlertPublisher, использующая Redis
type RedisAlertPublisher struct {
	redisClient *redis.Client
}

// NewRedisAlertPublisher создает новый RedisAlertPublisher
func NewRedisAlertPublisher(client *redis.Client) *RedisAlertPublisher {
	return &RedisAlertPublisher{
		redisClient: client,
	}
}

// Publish публикует событие оповещения в очередь Redis
func (p *RedisAlertPublisher) Publish(ctx context.Context, event RouteAlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal route alert event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish route alert event to Redis: %w", err)
	}
	return nil
}
