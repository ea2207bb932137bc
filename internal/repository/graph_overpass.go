package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safe_route_system/internal/config"
	"github.com/shenikar/safe_route_system/internal/geo"
	"github.com/shenikar/safe_route_system/internal/graph"
	"github.com/shenikar/safe_route_system/internal/service"
	"github.com/sirupsen/logrus"
)

// Пределы радиуса выборки уличной сети вокруг середины
// отрезка origin-destination.
const (
	minGraphRadiusM = 1000.0
	maxGraphRadiusM = 3000.0
)

// OverpassGraphProvider строит уличный граф по данным OSM через
// Overpass API. Построенные графы кешируются в Redis с TTL, чтобы
// не ходить в Overpass на каждый запрос маршрута.
type OverpassGraphProvider struct {
	httpClient  *http.Client
	redisClient *redis.Client
	endpoint    string
	cacheTTL    time.Duration
	logger      *logrus.Logger
}

// NewOverpassGraphProvider создает провайдер уличного графа.
// redisClient может быть nil — кеширование тогда отключено.
func NewOverpassGraphProvider(redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) service.GraphProvider {
	return &OverpassGraphProvider{
		httpClient:  &http.Client{Timeout: cfg.GraphTimeout},
		redisClient: redisClient,
		endpoint:    cfg.OverpassURL,
		cacheTTL:    cfg.GraphCacheTTL,
		logger:      logger,
	}
}

// overpassResponse — подмножество ответа Overpass, которое мы читаем.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

// cachedGraph — сериализуемое представление графа для Redis.
type cachedGraph struct {
	Nodes []cachedNode `json:"nodes"`
	Edges [][2]int64   `json:"edges"`
}

type cachedNode struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GraphFor возвращает направленный мультиграф уличной сети, покрывающий
// origin и destination. Радиус выборки — полтора расстояния между
// точками, ограниченный снизу и сверху.
func (p *OverpassGraphProvider) GraphFor(ctx context.Context, origin, destination geo.Point) (*graph.Graph, error) {
	center := geo.Midpoint(origin, destination)
	radius := estimateRadius(origin, destination)

	key := fmt.Sprintf("graph:%.4f:%.4f:%.0f", center.Lat, center.Lon, radius)
	if g, ok := p.fromCache(ctx, key); ok {
		p.logger.WithField("key", key).Debug("Street graph served from cache")
		return g, nil
	}

	resp, err := p.fetch(ctx, center, radius)
	if err != nil {
		return nil, err
	}

	g := buildGraph(resp)
	if g.NodeCount() == 0 {
		return nil, fmt.Errorf("overpass returned no street network around %.4f,%.4f", center.Lat, center.Lon)
	}

	p.toCache(ctx, key, g)
	return g, nil
}

// estimateRadius оценивает радиус в метрах, покрывающий область между
// точками: полтора расстояния по дуге большого круга в пределах [1, 3] км.
func estimateRadius(origin, destination geo.Point) float64 {
	r := geo.Distance(origin, destination) * 1.5
	if r < minGraphRadiusM {
		return minGraphRadiusM
	}
	if r > maxGraphRadiusM {
		return maxGraphRadiusM
	}
	return r
}

func (p *OverpassGraphProvider) fetch(ctx context.Context, center geo.Point, radius float64) (*overpassResponse, error) {
	query := fmt.Sprintf(
		`[out:json][timeout:25];(way["highway"](around:%.0f,%.6f,%.6f););(._;>;);out body;`,
		radius, center.Lat, center.Lon,
	)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}
	return &decoded, nil
}

// buildGraph собирает мультиграф из узлов и путей OSM. Последовательные
// узлы пути соединяются рёбрами; тег oneway определяет направленность.
func buildGraph(resp *overpassResponse) *graph.Graph {
	g := graph.New()

	for _, el := range resp.Elements {
		if el.Type == "node" {
			g.AddNode(el.ID, geo.Point{Lat: el.Lat, Lon: el.Lon})
		}
	}

	for _, el := range resp.Elements {
		if el.Type != "way" || len(el.Nodes) < 2 {
			continue
		}
		forward, backward := wayDirections(el.Tags)
		for i := 0; i < len(el.Nodes)-1; i++ {
			from, to := el.Nodes[i], el.Nodes[i+1]
			if _, ok := g.Node(from); !ok {
				continue
			}
			if _, ok := g.Node(to); !ok {
				continue
			}
			if forward {
				g.AddEdge(from, to)
			}
			if backward {
				g.AddEdge(to, from)
			}
		}
	}
	return g
}

// wayDirections интерпретирует тег oneway OSM.
func wayDirections(tags map[string]string) (forward, backward bool) {
	switch tags["oneway"] {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return false, true
	default:
		return true, true
	}
}

func (p *OverpassGraphProvider) fromCache(ctx context.Context, key string) (*graph.Graph, bool) {
	if p.redisClient == nil {
		return nil, false
	}
	val, err := p.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			p.logger.WithError(err).Warn("Failed to get street graph from cache")
		}
		return nil, false
	}

	g, err := unmarshalGraph(val)
	if err != nil {
		p.logger.WithError(err).Warn("Failed to unmarshal street graph from cache")
		return nil, false
	}
	return g, true
}

func (p *OverpassGraphProvider) toCache(ctx context.Context, key string, g *graph.Graph) {
	if p.redisClient == nil {
		return
	}

	val, err := marshalGraph(g)
	if err != nil {
		p.logger.WithError(err).Warn("Failed to marshal street graph for cache")
		return
	}
	if err := p.redisClient.Set(ctx, key, val, p.cacheTTL).Err(); err != nil {
		p.logger.WithError(err).Warn("Failed to set street graph in cache")
	}
}

// marshalGraph сериализует граф целиком, включая узлы без рёбер,
// чтобы граф из кеша совпадал со свежепостроенным.
func marshalGraph(g *graph.Graph) ([]byte, error) {
	cached := cachedGraph{
		Nodes: make([]cachedNode, 0, g.NodeCount()),
		Edges: make([][2]int64, 0, g.EdgeCount()),
	}
	for id, pt := range g.Nodes() {
		cached.Nodes = append(cached.Nodes, cachedNode{ID: id, Lat: pt.Lat, Lon: pt.Lon})
	}
	for _, e := range g.Edges() {
		cached.Edges = append(cached.Edges, [2]int64{e.From, e.To})
	}
	return json.Marshal(cached)
}

func unmarshalGraph(val []byte) (*graph.Graph, error) {
	var cached cachedGraph
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, err
	}
	g := graph.New()
	for _, n := range cached.Nodes {
		g.AddNode(n.ID, geo.Point{Lat: n.Lat, Lon: n.Lon})
	}
	for _, e := range cached.Edges {
		g.AddEdge(e[0], e[1])
	}
	return g, nil
}
