package graph

import (
	"testing"

	"github.com/shenikar/safe_route_system/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func annotate(e *Edge, risk, cost float64) {
	e.Risk = risk
	e.CombinedCost = cost
	e.Annotated = true
}

// lineGraph строит граф A(1) - B(2) - C(3) с рёбрами в обе стороны.
func lineGraph() *Graph {
	g := New()
	g.AddNode(1, geo.Point{Lat: 55.0, Lon: 37.0})
	g.AddNode(2, geo.Point{Lat: 55.001, Lon: 37.0})
	g.AddNode(3, geo.Point{Lat: 55.002, Lon: 37.0})
	return g
}

func TestShortestPath_SimpleLine(t *testing.T) {
	g := lineGraph()
	annotate(g.AddEdge(1, 2), 0.2, 1.0)
	annotate(g.AddEdge(2, 3), 0.6, 2.0)

	path, found := ShortestPath(g, 1, 3)

	require.True(t, found)
	assert.Equal(t, []int64{1, 2, 3}, path.Nodes)
	assert.InDelta(t, 3.0, path.TotalCost, 1e-9)
	// Опасность маршрута — максимальный риск среди рёбер.
	assert.InDelta(t, 0.6, path.MaxRisk, 1e-9)
}

func TestShortestPath_PrefersCheaperDetour(t *testing.T) {
	g := New()
	for id := int64(1); id <= 4; id++ {
		g.AddNode(id, geo.Point{Lat: 55.0 + float64(id)/1000, Lon: 37.0})
	}
	// Прямое ребро дороже обхода через 4.
	annotate(g.AddEdge(1, 2), 0.9, 10.0)
	annotate(g.AddEdge(1, 4), 0.1, 1.0)
	annotate(g.AddEdge(4, 2), 0.2, 1.0)

	path, found := ShortestPath(g, 1, 2)

	require.True(t, found)
	assert.Equal(t, []int64{1, 4, 2}, path.Nodes)
	assert.InDelta(t, 2.0, path.TotalCost, 1e-9)
	assert.InDelta(t, 0.2, path.MaxRisk, 1e-9)
}

func TestShortestPath_Disconnected(t *testing.T) {
	g := lineGraph()
	annotate(g.AddEdge(1, 2), 0.1, 1.0)
	// Узел 3 недостижим.

	path, found := ShortestPath(g, 1, 3)

	assert.False(t, found)
	assert.Nil(t, path)
}

func TestShortestPath_MissingNode(t *testing.T) {
	g := lineGraph()

	_, found := ShortestPath(g, 1, 99)
	assert.False(t, found)

	_, found = ShortestPath(g, 99, 1)
	assert.False(t, found)
}

func TestShortestPath_OriginEqualsDest(t *testing.T) {
	g := lineGraph()
	annotate(g.AddEdge(1, 2), 0.1, 1.0)

	path, found := ShortestPath(g, 1, 1)

	require.True(t, found)
	assert.Equal(t, []int64{1}, path.Nodes)
	assert.Equal(t, 0.0, path.TotalCost)
}

func TestShortestPath_UnannotatedEdgeUsesNeutralCost(t *testing.T) {
	g := lineGraph()
	g.AddEdge(1, 2) // без разметки
	annotate(g.AddEdge(2, 3), 0.3, 0.5)

	path, found := ShortestPath(g, 1, 3)

	require.True(t, found)
	assert.InDelta(t, 1.5, path.TotalCost, 1e-9)
}

func TestShortestPath_ParallelEdges(t *testing.T) {
	g := lineGraph()
	annotate(g.AddEdge(1, 2), 0.5, 5.0)
	cheap := g.AddEdge(1, 2)
	annotate(cheap, 0.1, 1.0)

	require.Equal(t, 1, cheap.Key)

	path, found := ShortestPath(g, 1, 2)

	require.True(t, found)
	assert.InDelta(t, 1.0, path.TotalCost, 1e-9)
	assert.InDelta(t, 0.1, path.MaxRisk, 1e-9)
}

func TestNearestNode(t *testing.T) {
	g := lineGraph()

	id, ok := g.NearestNode(geo.Point{Lat: 55.0021, Lon: 37.0})
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
}

func TestNearestNode_EmptyGraph(t *testing.T) {
	g := New()

	_, ok := g.NearestNode(geo.Point{Lat: 55.0, Lon: 37.0})
	assert.False(t, ok)
}
