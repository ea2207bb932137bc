package graph

import (
	"math"

	"github.com/shenikar/safe_route_system/internal/geo"
)

// Edge — направленное ребро уличного графа с аннотациями стоимости.
// Length (метры), Risk (0-1) и CombinedCost записываются при разметке
// графа перед маршрутизацией и живут в пределах одного запроса.
// Annotated=false означает, что разметка ребра не выполнялась;
// маршрутизатор в этом случае использует нейтральную стоимость 1.0.
type Edge struct {
	From         int64
	To           int64
	Key          int
	Length       float64
	Risk         float64
	CombinedCost float64
	Annotated    bool
}

// Graph — направленный мультиграф уличной сети: узлы с координатами
// и рёбра-сегменты. Между одной парой узлов может быть несколько
// параллельных рёбер, различаемых ключом.
type Graph struct {
	nodes     map[int64]geo.Point
	adjacency map[int64][]*Edge
	edges     []*Edge
}

// New возвращает пустой граф.
func New() *Graph {
	return &Graph{
		nodes:     make(map[int64]geo.Point),
		adjacency: make(map[int64][]*Edge),
	}
}

// AddNode добавляет узел с координатами (повторное добавление перезаписывает).
func (g *Graph) AddNode(id int64, p geo.Point) {
	g.nodes[id] = p
}

// Node возвращает координаты узла.
func (g *Graph) Node(id int64) (geo.Point, bool) {
	p, ok := g.nodes[id]
	return p, ok
}

// AddEdge добавляет направленное ребро from -> to и возвращает его.
// Ключ параллельного ребра назначается автоматически.
func (g *Graph) AddEdge(from, to int64) *Edge {
	key := 0
	for _, e := range g.adjacency[from] {
		if e.To == to {
			key++
		}
	}
	e := &Edge{From: from, To: to, Key: key}
	g.adjacency[from] = append(g.adjacency[from], e)
	g.edges = append(g.edges, e)
	return e
}

// Nodes возвращает все узлы графа с координатами.
func (g *Graph) Nodes() map[int64]geo.Point {
	return g.nodes
}

// Edges возвращает все рёбра графа.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// OutEdges возвращает рёбра, исходящие из узла.
func (g *Graph) OutEdges(id int64) []*Edge {
	return g.adjacency[id]
}

// NodeCount возвращает число узлов.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount возвращает число рёбер.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// NearestNode возвращает узел, ближайший к точке p по дуге большого круга.
// Граф уличной сети содержит тысячи узлов, линейный проход достаточен.
func (g *Graph) NearestNode(p geo.Point) (int64, bool) {
	var bestID int64
	best := math.Inf(1)
	found := false
	for id, np := range g.nodes {
		d := geo.Distance(p, np)
		if d < best || (d == best && id < bestID) {
			best = d
			bestID = id
			found = true
		}
	}
	return bestID, found
}

// BBox возвращает ограничивающий прямоугольник всех узлов графа.
func (g *Graph) BBox() (minLat, minLon, maxLat, maxLon float64, ok bool) {
	if len(g.nodes) == 0 {
		return 0, 0, 0, 0, false
	}
	minLat, minLon = math.Inf(1), math.Inf(1)
	maxLat, maxLon = math.Inf(-1), math.Inf(-1)
	for _, p := range g.nodes {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLon = math.Min(minLon, p.Lon)
		maxLon = math.Max(maxLon, p.Lon)
	}
	return minLat, minLon, maxLat, maxLon, true
}
