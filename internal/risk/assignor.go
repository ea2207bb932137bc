package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/safe_route_system/internal/geo"
	"github.com/shenikar/safe_route_system/internal/graph"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Запасные значения разметки для ребра, которое не удалось обработать.
// Один сбойный сегмент не должен срывать разметку остального графа.
const (
	fallbackLength = 1.0
	fallbackRisk   = 0.0
	fallbackCost   = 1.0
)

// Assignor размечает рёбра уличного графа: длина, риск и комбинированная
// стоимость. Разметка — самый дорогой шаг запроса (по обращению к
// хранилищу инцидентов на ребро), поэтому выполняется пулом воркеров
// с ограниченной конкурентностью и барьером до запуска маршрутизатора.
type Assignor struct {
	aggregator   *Aggregator
	safetyWeight float64
	speedMPS     float64
	concurrency  int
	logger       *logrus.Logger
}

// NewAssignor создает разметчик стоимостей.
// safetyWeight в [0,1] задаёт компромисс безопасность/скорость.
func NewAssignor(aggregator *Aggregator, safetyWeight, speedMPS float64, concurrency int, logger *logrus.Logger) *Assignor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Assignor{
		aggregator:   aggregator,
		safetyWeight: safetyWeight,
		speedMPS:     speedMPS,
		concurrency:  concurrency,
		logger:       logger,
	}
}

// AssignCosts размечает все рёбра графа. Возвращает ошибку только при
// отмене контекста (таймаут запроса): частично размеченный граф наружу
// не отдаётся. Сбои отдельных рёбер поглощаются запасными значениями
// и логируются предупреждением.
func (a *Assignor) AssignCosts(ctx context.Context, g *graph.Graph) error {
	asOf := time.Now()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.concurrency)

	for _, e := range g.Edges() {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a.assignEdge(ctx, g, e, asOf)
			return ctx.Err()
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("cost assignment interrupted: %w", err)
	}
	return nil
}

// assignEdge размечает одно ребро. Любой сбой (узел без координат,
// недоступное хранилище) превращается в нейтральные запасные значения.
func (a *Assignor) assignEdge(ctx context.Context, g *graph.Graph, e *graph.Edge, asOf time.Time) {
	log := a.logger.WithFields(logrus.Fields{
		"component": "assignor",
		"edge_from": e.From,
		"edge_to":   e.To,
	})

	from, okFrom := g.Node(e.From)
	to, okTo := g.Node(e.To)
	if !okFrom || !okTo {
		log.Warn("Edge endpoint has no coordinates, using fallback cost")
		a.fallback(e)
		return
	}

	if e.Length <= 0 {
		e.Length = geo.Distance(from, to)
	}

	risk, err := a.aggregator.RiskForEdge(ctx, g, e, asOf)
	if err != nil {
		if ctx.Err() != nil {
			// Отмена запроса обрабатывается на уровне AssignCosts.
			return
		}
		log.WithError(err).Warn("Failed to evaluate edge risk, using fallback cost")
		a.fallback(e)
		return
	}

	travelTime := e.Length / a.speedMPS
	e.Risk = risk
	e.CombinedCost = risk*a.safetyWeight + travelTime*(1-a.safetyWeight)
	e.Annotated = true
}

func (a *Assignor) fallback(e *graph.Edge) {
	e.Length = fallbackLength
	e.Risk = fallbackRisk
	e.CombinedCost = fallbackCost
	e.Annotated = true
}
