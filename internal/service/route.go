package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shenikar/safe_route_system/internal/config"
	"github.com/shenikar/safe_route_system/internal/geo"
	"github.com/shenikar/safe_route_system/internal/graph"
	"github.com/shenikar/safe_route_system/internal/models"
	"github.com/shenikar/safe_route_system/internal/risk"
	"github.com/shenikar/safe_route_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// GraphProvider определяет контракт поставщика уличного графа,
// покрывающего пару точек origin-destination.
type GraphProvider interface {
	GraphFor(ctx context.Context, origin, destination geo.Point) (*graph.Graph, error)
}

// RouteService определяет контракт расчёта безопасных маршрутов
type RouteService interface {
	CalculateRoute(ctx context.Context, origin, destination geo.Point) (*models.Route, error)
	GetStats(ctx context.Context) (int, error)
}

type routeService struct {
	repo     IncidentRepository
	graphs   GraphProvider
	assignor *risk.Assignor
	alerts   webhook.AlertPublisher
	cfg      *config.Config
	logger   *logrus.Logger
}

func NewRouteService(repo IncidentRepository, graphs GraphProvider, assignor *risk.Assignor, alerts webhook.AlertPublisher, cfg *config.Config, logger *logrus.Logger) RouteService {
	return &routeService{
		repo:     repo,
		graphs:   graphs,
		assignor: assignor,
		alerts:   alerts,
		cfg:      cfg,
		logger:   logger,
	}
}

// CalculateRoute строит самый безопасный доступный маршрут между точками.
// Каждый запрос работает на собственной размеченной копии графа; общего
// изменяемого графа между запросами нет. Маршрутизатор запускается
// только после полной разметки рёбер.
func (s *routeService) CalculateRoute(ctx context.Context, origin, destination geo.Point) (*models.Route, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "route",
		"method":  "CalculateRoute",
		"origin":  geo.Key(origin),
		"dest":    geo.Key(destination),
	})
	log.Info("Calculating safe route")

	if !geo.Valid(origin) || !geo.Valid(destination) {
		return nil, fmt.Errorf("service: malformed coordinates: %w", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RouteTimeout)
	defer cancel()

	g, err := s.graphs.GraphFor(ctx, origin, destination)
	if err != nil {
		log.WithError(err).Error("Failed to fetch street graph")
		return nil, fmt.Errorf("service: could not fetch street graph: %w", s.classify(ctx, err))
	}

	originNode, okOrigin := g.NearestNode(origin)
	destNode, okDest := g.NearestNode(destination)
	if !okOrigin || !okDest {
		log.Error("Street graph contains no nodes")
		return nil, fmt.Errorf("service: street graph is empty: %w", ErrUpstreamUnavailable)
	}

	if err := s.assignor.AssignCosts(ctx, g); err != nil {
		log.WithError(err).Error("Cost assignment did not complete in time")
		return nil, fmt.Errorf("service: could not assign edge costs: %w", s.classify(ctx, err))
	}

	path, found := graph.ShortestPath(g, originNode, destNode)
	route := &models.Route{
		Coordinates: []models.RoutePoint{},
		Incidents:   []*models.Incident{},
	}
	if !found {
		// Несвязанные компоненты — штатный исход.
		log.Info("No path found between origin and destination")
	} else {
		route.Found = true
		route.Nodes = path.Nodes
		route.TotalCost = path.TotalCost
		route.DangerLevel = path.MaxRisk
		route.Coordinates = s.extractCoordinates(g, path.Nodes)

		incidents, err := s.incidentsNearRoute(ctx, route.Coordinates)
		if err != nil {
			// Инциденты нужны только для отображения на карте,
			// их отсутствие не срывает расчёт.
			log.WithError(err).Warn("Failed to collect incidents along the route")
		} else {
			route.Incidents = incidents
		}
	}

	s.saveRequestLog(ctx, origin, destination, route, log)

	if route.Found && route.DangerLevel >= s.cfg.DangerAlertThreshold && s.alerts != nil {
		event := webhook.RouteAlertEvent{
			OriginLat:   origin.Lat,
			OriginLon:   origin.Lon,
			DestLat:     destination.Lat,
			DestLon:     destination.Lon,
			DangerLevel: route.DangerLevel,
			Timestamp:   time.Now(),
			Incidents:   route.Incidents,
		}
		if err := s.alerts.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("Failed to publish route danger alert")
		}
	}

	log.WithFields(logrus.Fields{
		"found":        route.Found,
		"danger_level": route.DangerLevel,
	}).Info("Route calculation completed")
	return route, nil
}

// GetStats возвращает количество расчётов маршрутов за настроенное окно
func (s *routeService) GetStats(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "route",
		"method":  "GetStats",
	})
	log.Info("Fetching route request stats")

	count, err := s.repo.GetRouteRequestStats(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to get route request stats")
		return 0, fmt.Errorf("service: could not get route request stats: %w", err)
	}
	return count, nil
}

// classify сводит ошибку нижнего слоя к стабильному виду для вызывающего.
func (s *routeService) classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ErrUpstreamUnavailable
}

func (s *routeService) extractCoordinates(g *graph.Graph, nodes []int64) []models.RoutePoint {
	coords := make([]models.RoutePoint, 0, len(nodes))
	for _, id := range nodes {
		if p, ok := g.Node(id); ok {
			coords = append(coords, models.RoutePoint{Latitude: p.Lat, Longitude: p.Lon})
		}
	}
	return coords
}

// incidentsNearRoute возвращает инциденты, повлиявшие на маршрут:
// выборка по ограничивающему прямоугольнику маршрута с запасом в радиус
// поиска, затем фильтр по фактическому расстоянию до точек маршрута.
func (s *routeService) incidentsNearRoute(ctx context.Context, coords []models.RoutePoint) ([]*models.Incident, error) {
	if len(coords) == 0 {
		return []*models.Incident{}, nil
	}

	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, c := range coords {
		minLat = math.Min(minLat, c.Latitude)
		maxLat = math.Max(maxLat, c.Latitude)
		minLon = math.Min(minLon, c.Longitude)
		maxLon = math.Max(maxLon, c.Longitude)
	}

	// Запас прямоугольника: радиус поиска, переведённый в градусы.
	latPad := s.cfg.RiskRadiusM / 111320
	cosLat := math.Cos((minLat + maxLat) / 2 * math.Pi / 180)
	if math.Abs(cosLat) < 0.01 {
		cosLat = 0.01
	}
	lonPad := s.cfg.RiskRadiusM / (111320 * cosLat)

	candidates, err := s.repo.FindInBBox(ctx, minLat-latPad, minLon-lonPad, maxLat+latPad, maxLon+lonPad)
	if err != nil {
		return nil, fmt.Errorf("failed to find incidents in route bbox: %w", err)
	}

	incidents := make([]*models.Incident, 0, len(candidates))
	for _, inc := range candidates {
		p := geo.Point{Lat: inc.Latitude, Lon: inc.Longitude}
		for _, c := range coords {
			if geo.Distance(p, geo.Point{Lat: c.Latitude, Lon: c.Longitude}) <= s.cfg.RiskRadiusM {
				incidents = append(incidents, inc)
				break
			}
		}
	}
	return incidents, nil
}

func (s *routeService) saveRequestLog(ctx context.Context, origin, destination geo.Point, route *models.Route, log *logrus.Entry) {
	record := &models.RouteRequestLog{
		OriginLat:   origin.Lat,
		OriginLon:   origin.Lon,
		DestLat:     destination.Lat,
		DestLon:     destination.Lon,
		DangerLevel: route.DangerLevel,
		Found:       route.Found,
	}
	if err := s.repo.SaveRouteRequest(ctx, record); err != nil {
		log.WithError(err).Warn("Failed to save route request log")
	}
}
