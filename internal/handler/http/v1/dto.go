package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest DTO для регистрации инцидента
// @Description DTO для регистрации инцидента
type CreateIncidentRequest struct {
	Type        string    `json:"type" validate:"required,oneof=assault crash homicide robbery other"`
	Description string    `json:"description,omitempty"`
	Latitude    float64   `json:"latitude" validate:"required,latitude"`
	Longitude   float64   `json:"longitude" validate:"required,longitude"`
	Severity    int       `json:"severity" validate:"required,gte=1,lte=5"`
	OccurredAt  time.Time `json:"occurred_at" validate:"required"`
}

// UpdateIncidentStatusRequest DTO для смены статуса инцидента
// @Description DTO для смены статуса инцидента
type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress resolved unresolved"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Severity    int       `json:"severity"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CalculateRouteRequest DTO для расчёта безопасного маршрута
// @Description DTO для расчёта безопасного маршрута
type CalculateRouteRequest struct {
	OriginLat float64 `json:"origin_lat" validate:"required,latitude"`
	OriginLon float64 `json:"origin_lon" validate:"required,longitude"`
	DestLat   float64 `json:"dest_lat" validate:"required,latitude"`
	DestLon   float64 `json:"dest_lon" validate:"required,longitude"`
}

// RouteIncidentResponse DTO инцидента для отображения на карте
// @Description DTO инцидента для отображения на карте
type RouteIncidentResponse struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Type        string  `json:"type"`
	Severity    int     `json:"severity"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// RoutePointResponse DTO координаты маршрута
// @Description DTO координаты маршрута
type RoutePointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteResponse DTO для ответа с рассчитанным маршрутом
// @Description DTO для ответа с рассчитанным маршрутом
type RouteResponse struct {
	Route       []RoutePointResponse    `json:"route"`
	DangerLevel float64                 `json:"danger_level"`
	Found       bool                    `json:"found"`
	Incidents   []RouteIncidentResponse `json:"incidents"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	RouteRequestCount int `json:"route_request_count"`
}
