package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/safe_route_system/internal/fuzzy"
	"github.com/shenikar/safe_route_system/internal/geo"
	"github.com/shenikar/safe_route_system/internal/graph"
	"github.com/shenikar/safe_route_system/internal/models"
	"github.com/sirupsen/logrus"
)

// IncidentSource определяет контракт хранилища инцидентов для расчёта риска
type IncidentSource interface {
	FindNear(ctx context.Context, lat, lon, radiusM float64, since time.Time) ([]*models.Incident, error)
}

// Aggregator сводит инциденты вокруг точки к четырём входам нечёткой
// модели и вычисляет индекс опасности. Чистый запрос без побочных
// эффектов; кэш используется оппортунистически.
type Aggregator struct {
	store    IncidentSource
	engine   *fuzzy.Engine
	cache    *Cache
	radiusM  float64
	lookback time.Duration
	logger   *logrus.Logger
}

// NewAggregator создает агрегатор риска.
func NewAggregator(store IncidentSource, engine *fuzzy.Engine, cache *Cache, radiusM float64, lookbackDays int, logger *logrus.Logger) *Aggregator {
	return &Aggregator{
		store:    store,
		engine:   engine,
		cache:    cache,
		radiusM:  radiusM,
		lookback: time.Duration(lookbackDays) * 24 * time.Hour,
		logger:   logger,
	}
}

// RiskForPoint возвращает индекс опасности точки на момент asOf.
func (a *Aggregator) RiskForPoint(ctx context.Context, point geo.Point, asOf time.Time) (float64, error) {
	return a.cache.GetOrCompute(ctx, point, func() (float64, error) {
		return a.riskAt(ctx, point, asOf)
	})
}

// RiskForEdge возвращает индекс опасности ребра: риск оценивается
// в географической середине его концевых узлов.
func (a *Aggregator) RiskForEdge(ctx context.Context, g *graph.Graph, e *graph.Edge, asOf time.Time) (float64, error) {
	from, ok := g.Node(e.From)
	if !ok {
		return 0, fmt.Errorf("edge %d-%d: node %d has no coordinates", e.From, e.To, e.From)
	}
	to, ok := g.Node(e.To)
	if !ok {
		return 0, fmt.Errorf("edge %d-%d: node %d has no coordinates", e.From, e.To, e.To)
	}
	return a.RiskForPoint(ctx, geo.Midpoint(from, to), asOf)
}

// riskAt выполняет запрос к хранилищу и редукцию инцидентов.
func (a *Aggregator) riskAt(ctx context.Context, point geo.Point, asOf time.Time) (float64, error) {
	since := asOf.Add(-a.lookback)
	incidents, err := a.store.FindNear(ctx, point.Lat, point.Lon, a.radiusM, since)
	if err != nil {
		return 0, fmt.Errorf("failed to query incidents near point: %w", err)
	}

	// Нет инцидентов — точка безопасна, нечёткий вывод не запускается.
	if len(incidents) == 0 {
		return 0.0, nil
	}

	input := reduce(incidents, point, asOf)
	return a.engine.Evaluate(input.Count, input.AvgSeverity, input.DistanceM, input.AgeDays), nil
}

// Input — четыре входа нечёткой модели, выведенные из набора инцидентов.
type Input struct {
	Count       int
	AvgSeverity float64
	DistanceM   float64
	AgeDays     float64
}

// reduce сводит инциденты к входам модели. Расстояние и давность
// усредняются с весом 1/расстояние (1 при нулевом расстоянии):
// ближние инциденты доминируют в оценке, а временной сигнал привязан
// к пространственной значимости теми же весами.
func reduce(incidents []*models.Incident, point geo.Point, asOf time.Time) Input {
	var severitySum float64
	var weightSum, distanceSum, ageSum float64

	for _, inc := range incidents {
		severitySum += float64(inc.Severity)

		d := geo.Distance(point, geo.Point{Lat: inc.Latitude, Lon: inc.Longitude})
		w := 1.0
		if d > 0 {
			w = 1 / d
		}
		ageDays := asOf.Sub(inc.OccurredAt).Hours() / 24

		weightSum += w
		distanceSum += w * d
		ageSum += w * ageDays
	}

	n := float64(len(incidents))
	return Input{
		Count:       len(incidents),
		AvgSeverity: severitySum / n,
		DistanceM:   distanceSum / weightSum,
		AgeDays:     ageSum / weightSum,
	}
}
