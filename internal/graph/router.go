package graph

import (
	"container/heap"
)

// Router не изменяет данные рёбер, граф к моменту поиска должен быть
// полностью размечен.

// neutralCost — стоимость ребра без разметки, совпадает с запасным
// значением разметчика.
const neutralCost = 1.0

// Path — найденный путь: упорядоченные узлы, суммарная стоимость
// и максимальный риск среди пройденных рёбер.
type Path struct {
	Nodes     []int64
	TotalCost float64
	MaxRisk   float64
}

type queueItem struct {
	node  int64
	dist  float64
	index int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// ShortestPath ищет путь минимальной суммарной стоимости (Дейкстра
// по combined_cost) от origin к dest. Второй результат false означает,
// что узлы находятся в несвязанных компонентах или отсутствуют в графе —
// это штатный исход, а не ошибка.
//
// При нескольких путях равной стоимости возвращается любой из них.
func ShortestPath(g *Graph, origin, dest int64) (*Path, bool) {
	if _, ok := g.Node(origin); !ok {
		return nil, false
	}
	if _, ok := g.Node(dest); !ok {
		return nil, false
	}

	dist := map[int64]float64{origin: 0}
	prevEdge := map[int64]*Edge{}
	visited := map[int64]bool{}

	pq := priorityQueue{}
	heap.Init(&pq)
	heap.Push(&pq, &queueItem{node: origin, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*queueItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == dest {
			break
		}

		for _, e := range g.OutEdges(u) {
			cost := e.CombinedCost
			if !e.Annotated {
				cost = neutralCost
			}
			next := dist[u] + cost
			if d, seen := dist[e.To]; !seen || next < d {
				dist[e.To] = next
				prevEdge[e.To] = e
				heap.Push(&pq, &queueItem{node: e.To, dist: next})
			}
		}
	}

	if !visited[dest] {
		return nil, false
	}

	// Восстановление пути по предшествующим рёбрам.
	path := &Path{TotalCost: dist[dest]}
	var nodes []int64
	for at := dest; at != origin; {
		e := prevEdge[at]
		nodes = append(nodes, at)
		if e.Risk > path.MaxRisk {
			path.MaxRisk = e.Risk
		}
		at = e.From
	}
	nodes = append(nodes, origin)
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	path.Nodes = nodes
	return path, true
}
