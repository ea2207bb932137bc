package models

import (
	"time"

	"github.com/google/uuid"
)

// RoutePoint — одна координата маршрута в порядке следования.
type RoutePoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Route — результат расчёта безопасного маршрута.
// DangerLevel — максимальный риск среди пройденных рёбер (0-1),
// Found=false означает, что путь между точками не существует:
// это нормальный исход, а не ошибка.
type Route struct {
	Nodes       []int64      `json:"-"`
	Coordinates []RoutePoint `json:"route"`
	DangerLevel float64      `json:"danger_level"`
	TotalCost   float64      `json:"total_cost"`
	Found       bool         `json:"found"`
	Incidents   []*Incident  `json:"incidents"`
}

// RouteRequestLog представляет запись о выполненном расчёте маршрута,
// используется для статистики обращений.
type RouteRequestLog struct {
	ID          uuid.UUID `json:"id"`
	OriginLat   float64   `json:"origin_lat"`
	OriginLon   float64   `json:"origin_lon"`
	DestLat     float64   `json:"dest_lat"`
	DestLon     float64   `json:"dest_lon"`
	DangerLevel float64   `json:"danger_level"`
	Found       bool      `json:"found"`
	RequestedAt time.Time `json:"requested_at"`
}
