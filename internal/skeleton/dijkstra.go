package skeleton

import (
	"container/heap"
	"math"

	"sprout-meter/pkg/geometry"
)

// shortestFrom runs Dijkstra from a start node and returns the distance and
// predecessor arrays. Unreachable nodes have distance +Inf and predecessor -1.
func (g *Graph) shortestFrom(start int) (dist []float64, prev []int32) {
	n := len(g.nodes)
	dist = make([]float64, n)
	prev = make([]int32, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[start] = 0

	pq := &distQueue{}
	heap.Init(pq)
	heap.Push(pq, &distItem{node: int32(start), dist: 0})

	visited := make([]bool, n)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*distItem)
		u := int(item.node)
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, e := range g.adj[u] {
			v := int(e.to)
			if visited[v] {
				continue
			}
			if d := dist[u] + e.weight; d < dist[v] {
				dist[v] = d
				prev[v] = int32(u)
				heap.Push(pq, &distItem{node: e.to, dist: d})
			}
		}
	}

	return dist, prev
}

// farthestReachable returns the reachable node with the maximum distance.
// Ties are broken by the lowest node index, which is first-encountered in
// construction order.
func farthestReachable(dist []float64) int {
	best := -1
	bestDist := math.Inf(-1)
	for i, d := range dist {
		if math.IsInf(d, 1) {
			continue
		}
		if d > bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// FarthestNodes approximates the two most distant nodes of the graph with a
// double-sweep: Dijkstra from the first node in construction order picks the
// farthest node n1, and a second Dijkstra from n1 picks n2. This is a
// heuristic for the true graph diameter; on thin near-path-like skeleton
// graphs it is tight in practice. A plain BFS would be wrong here because
// edge weights are non-uniform (1 vs sqrt 2).
//
// A single-node graph returns the node twice. A graph with zero nodes
// returns ErrGraphEmpty.
func FarthestNodes(g *Graph) (n1, n2 int, err error) {
	switch g.NodeCount() {
	case 0:
		return 0, 0, ErrGraphEmpty
	case 1:
		return 0, 0, nil
	}

	dist, _ := g.shortestFrom(0)
	n1 = farthestReachable(dist)

	dist, _ = g.shortestFrom(n1)
	n2 = farthestReachable(dist)

	return n1, n2, nil
}

// ShortestPath returns the minimum-weight path between two node indices as
// pixel coordinates, endpoints included. Returns ErrNoPath when the nodes
// are in different connected components.
func ShortestPath(g *Graph, from, to int) ([]geometry.PointInt, error) {
	if from == to {
		return []geometry.PointInt{g.Node(from)}, nil
	}

	dist, prev := g.shortestFrom(from)
	if math.IsInf(dist[to], 1) {
		return nil, ErrNoPath
	}

	var path []geometry.PointInt
	for at := int32(to); at >= 0; at = prev[at] {
		path = append(path, g.Node(int(at)))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// distItem is a node in the Dijkstra priority queue.
type distItem struct {
	node  int32
	dist  float64
	index int
}

// distQueue implements heap.Interface ordered by tentative distance.
type distQueue []*distItem

func (pq distQueue) Len() int           { return len(pq) }
func (pq distQueue) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq distQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *distQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*distItem)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *distQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
