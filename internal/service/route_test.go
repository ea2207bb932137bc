package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safe_route_system/internal/config"
	"github.com/shenikar/safe_route_system/internal/fuzzy"
	"github.com/shenikar/safe_route_system/internal/geo"
	"github.com/shenikar/safe_route_system/internal/graph"
	"github.com/shenikar/safe_route_system/internal/models"
	"github.com/shenikar/safe_route_system/internal/risk"
	risk_mocks "github.com/shenikar/safe_route_system/internal/risk/mocks"
	"github.com/shenikar/safe_route_system/internal/service/mocks"
	webhook_mocks "github.com/shenikar/safe_route_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routeTestEnv struct {
	service   *routeService
	repoMock  *mocks.MockIncidentRepository
	graphMock *mocks.MockGraphProvider
	riskMock  *risk_mocks.MockIncidentSource
	alertMock *webhook_mocks.MockAlertPublisher
}

// newTestRouteService собирает сервис маршрутов с реальным конвейером
// расчёта риска поверх мокированного хранилища инцидентов.
func newTestRouteService(t *testing.T) *routeTestEnv {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	graphMock := mocks.NewMockGraphProvider(ctrl)
	riskMock := risk_mocks.NewMockIncidentSource(ctrl)
	alertMock := webhook_mocks.NewMockAlertPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		RouteTimeout:           5 * time.Second,
		RiskRadiusM:            50,
		RiskLookbackDays:       180,
		RiskCacheTTL:           time.Minute,
		SafetyWeight:           0.7,
		TravelSpeedMPS:         10,
		RiskConcurrency:        2,
		DangerAlertThreshold:   0.7,
		StatsTimeWindowMinutes: 60,
	}

	engine := fuzzy.NewEngine(fuzzy.NewModel())
	cache := risk.NewCache(nil, cfg.RiskCacheTTL, logger)
	aggregator := risk.NewAggregator(riskMock, engine, cache, cfg.RiskRadiusM, cfg.RiskLookbackDays, logger)
	assignor := risk.NewAssignor(aggregator, cfg.SafetyWeight, cfg.TravelSpeedMPS, cfg.RiskConcurrency, logger)

	service := NewRouteService(repoMock, graphMock, assignor, alertMock, cfg, logger)
	return &routeTestEnv{
		service:   service.(*routeService),
		repoMock:  repoMock,
		graphMock: graphMock,
		riskMock:  riskMock,
		alertMock: alertMock,
	}
}

// testStreetGraph — два соединённых узла, покрывающих пару origin-dest.
func testStreetGraph() *graph.Graph {
	g := graph.New()
	g.AddNode(1, geo.Point{Lat: 55.0, Lon: 37.0})
	g.AddNode(2, geo.Point{Lat: 55.001, Lon: 37.0})
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)
	return g
}

func TestCalculateRoute_InvalidCoordinates(t *testing.T) {
	// Подготовка
	env := newTestRouteService(t)

	// Действие
	route, err := env.service.CalculateRoute(context.Background(),
		geo.Point{Lat: 95.0, Lon: 37.0}, geo.Point{Lat: 55.0, Lon: 37.0})

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, route)
}

func TestCalculateRoute_GraphProviderUnavailable(t *testing.T) {
	// Подготовка
	env := newTestRouteService(t)

	// Ожидания
	env.graphMock.EXPECT().
		GraphFor(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("overpass: 504")).
		Times(1)

	// Действие
	_, err := env.service.CalculateRoute(context.Background(),
		geo.Point{Lat: 55.0, Lon: 37.0}, geo.Point{Lat: 55.001, Lon: 37.0})

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestCalculateRoute_Success(t *testing.T) {
	// Подготовка
	env := newTestRouteService(t)
	origin := geo.Point{Lat: 55.0, Lon: 37.0}
	destination := geo.Point{Lat: 55.001, Lon: 37.0}

	nearby := &models.Incident{
		ID:         uuid.New(),
		Type:       models.IncidentTypeRobbery,
		Severity:   2,
		Latitude:   55.0003,
		Longitude:  37.0,
		OccurredAt: time.Now().Add(-48 * time.Hour),
	}

	// Ожидания
	env.graphMock.EXPECT().
		GraphFor(gomock.Any(), origin, destination).
		Return(testStreetGraph(), nil).
		Times(1)
	env.riskMock.EXPECT().
		FindNear(gomock.Any(), gomock.Any(), gomock.Any(), 50.0, gomock.Any()).
		Return([]*models.Incident{}, nil).
		AnyTimes()
	env.repoMock.EXPECT().
		FindInBBox(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.Incident{nearby}, nil).
		Times(1)
	env.repoMock.EXPECT().
		SaveRouteRequest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *models.RouteRequestLog) error {
			// Хранилище заполняет идентификатор и время записи, как это делает RETURNING.
			record.ID = uuid.New()
			record.RequestedAt = time.Now()
			assert.Equal(t, origin.Lat, record.OriginLat)
			assert.Equal(t, destination.Lat, record.DestLat)
			return nil
		}).
		Times(1)

	// Действие
	route, err := env.service.CalculateRoute(context.Background(), origin, destination)

	// Проверки
	require.NoError(t, err)
	require.True(t, route.Found)
	assert.Equal(t, []int64{1, 2}, route.Nodes)
	assert.Len(t, route.Coordinates, 2)
	assert.Equal(t, 0.0, route.DangerLevel)
	require.Len(t, route.Incidents, 1)
	assert.Equal(t, nearby.ID, route.Incidents[0].ID)
}

func TestCalculateRoute_NoPathFound(t *testing.T) {
	// Подготовка
	env := newTestRouteService(t)
	origin := geo.Point{Lat: 55.0, Lon: 37.0}
	destination := geo.Point{Lat: 55.001, Lon: 37.0}

	// Несвязанный граф: рёбер между узлами нет.
	g := graph.New()
	g.AddNode(1, geo.Point{Lat: 55.0, Lon: 37.0})
	g.AddNode(2, geo.Point{Lat: 55.001, Lon: 37.0})

	// Ожидания: отсутствие пути — штатный исход, запрос логируется.
	env.graphMock.EXPECT().
		GraphFor(gomock.Any(), origin, destination).
		Return(g, nil).
		Times(1)
	env.repoMock.EXPECT().
		SaveRouteRequest(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	route, err := env.service.CalculateRoute(context.Background(), origin, destination)

	// Проверки
	require.NoError(t, err)
	assert.False(t, route.Found)
	assert.Empty(t, route.Nodes)
	assert.Empty(t, route.Coordinates)
	assert.Equal(t, 0.0, route.DangerLevel)
}

func TestCalculateRoute_DangerAlertPublished(t *testing.T) {
	// Подготовка
	env := newTestRouteService(t)
	origin := geo.Point{Lat: 55.0, Lon: 37.0}
	destination := geo.Point{Lat: 55.001, Lon: 37.0}
	asOf := time.Now()

	// Кластер тяжёлых свежих инцидентов у середины единственного ребра.
	cluster := []*models.Incident{
		{ID: uuid.New(), Severity: 5, Latitude: 55.0005, Longitude: 37.0, OccurredAt: asOf},
		{ID: uuid.New(), Severity: 5, Latitude: 55.0005, Longitude: 37.0, OccurredAt: asOf},
		{ID: uuid.New(), Severity: 4, Latitude: 55.0005, Longitude: 37.0, OccurredAt: asOf},
	}

	// Ожидания
	env.graphMock.EXPECT().
		GraphFor(gomock.Any(), origin, destination).
		Return(testStreetGraph(), nil).
		Times(1)
	env.riskMock.EXPECT().
		FindNear(gomock.Any(), gomock.Any(), gomock.Any(), 50.0, gomock.Any()).
		Return(cluster, nil).
		AnyTimes()
	env.repoMock.EXPECT().
		FindInBBox(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.Incident{}, nil).
		Times(1)
	env.repoMock.EXPECT().
		SaveRouteRequest(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)
	env.alertMock.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	route, err := env.service.CalculateRoute(context.Background(), origin, destination)

	// Проверки
	require.NoError(t, err)
	require.True(t, route.Found)
	assert.GreaterOrEqual(t, route.DangerLevel, 0.7)
}

func TestCalculateRoute_SaveLogFailureDoesNotFailRequest(t *testing.T) {
	// Подготовка
	env := newTestRouteService(t)
	origin := geo.Point{Lat: 55.0, Lon: 37.0}
	destination := geo.Point{Lat: 55.001, Lon: 37.0}

	// Ожидания
	env.graphMock.EXPECT().
		GraphFor(gomock.Any(), origin, destination).
		Return(testStreetGraph(), nil).
		Times(1)
	env.riskMock.EXPECT().
		FindNear(gomock.Any(), gomock.Any(), gomock.Any(), 50.0, gomock.Any()).
		Return([]*models.Incident{}, nil).
		AnyTimes()
	env.repoMock.EXPECT().
		FindInBBox(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.Incident{}, nil).
		Times(1)
	env.repoMock.EXPECT().
		SaveRouteRequest(gomock.Any(), gomock.Any()).
		Return(errors.New("db is down")).
		Times(1)

	// Действие
	route, err := env.service.CalculateRoute(context.Background(), origin, destination)

	// Проверки: сбой журнала не срывает расчёт.
	require.NoError(t, err)
	assert.True(t, route.Found)
}

func TestGetStats_Success(t *testing.T) {
	// Подготовка
	env := newTestRouteService(t)
	ctx := context.Background()

	// Ожидания
	env.repoMock.EXPECT().
		GetRouteRequestStats(ctx, 60).
		Return(42, nil).
		Times(1)

	// Действие
	count, err := env.service.GetStats(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestGetStats_RepositoryError(t *testing.T) {
	// Подготовка
	env := newTestRouteService(t)
	ctx := context.Background()

	// Ожидания
	env.repoMock.EXPECT().
		GetRouteRequestStats(ctx, 60).
		Return(0, errors.New("db is down")).
		Times(1)

	// Действие
	_, err := env.service.GetStats(ctx)

	// Проверки
	require.Error(t, err)
}
