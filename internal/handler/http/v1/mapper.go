package v1

import "github.com/shenikar/safe_route_system/internal/models"

// DTOToIncidentModel преобразует DTO регистрации инцидента в доменную модель.
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	return &models.Incident{
		Type:        dto.Type,
		Description: dto.Description,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		Severity:    dto.Severity,
		OccurredAt:  dto.OccurredAt,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:          model.ID,
		Type:        model.Type,
		Description: model.Description,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Severity:    model.Severity,
		Status:      model.Status,
		OccurredAt:  model.OccurredAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToRouteResponse преобразует рассчитанный маршрут в DTO для ответа.
// Инциденты сериализуются в форму для отображения на карте.
func ModelToRouteResponse(route *models.Route) *RouteResponse {
	points := make([]RoutePointResponse, len(route.Coordinates))
	for i, c := range route.Coordinates {
		points[i] = RoutePointResponse{Lat: c.Latitude, Lon: c.Longitude}
	}

	incidents := make([]RouteIncidentResponse, len(route.Incidents))
	for i, inc := range route.Incidents {
		description := inc.Description
		if description == "" {
			description = "No description"
		}
		incidents[i] = RouteIncidentResponse{
			Lat:         inc.Latitude,
			Lon:         inc.Longitude,
			Type:        inc.Type,
			Severity:    inc.Severity,
			Date:        inc.OccurredAt.Format("2006-01-02"),
			Description: description,
		}
	}

	return &RouteResponse{
		Route:       points,
		DangerLevel: route.DangerLevel,
		Found:       route.Found,
		Incidents:   incidents,
	}
}
