// Package skeleton implements length measurement over 1-pixel-wide skeleton
// masks: graph construction, endpoint discovery, shortest-path extraction,
// polyline simplification and length reconstruction.
package skeleton

import (
	"errors"
	"math"

	"sprout-meter/pkg/geometry"
)

var (
	// ErrEmptySkeleton is returned when a skeleton mask has no foreground pixels.
	ErrEmptySkeleton = errors.New("skeleton has no foreground pixels")
	// ErrGraphEmpty is returned when endpoint discovery is asked for a graph
	// with zero nodes.
	ErrGraphEmpty = errors.New("graph has no nodes")
	// ErrGraphTooSmall is returned when a skeleton graph has fewer than two
	// nodes and therefore cannot yield a length.
	ErrGraphTooSmall = errors.New("graph has fewer than 2 nodes")
	// ErrNoPath is returned when the two discovered endpoints lie in
	// different connected components.
	ErrNoPath = errors.New("no path between endpoints")
	// ErrInvalidPath is returned when length reconstruction receives fewer
	// than two points.
	ErrInvalidPath = errors.New("path must have at least 2 points")
)

// Bitmap is a dense row-major binary raster. Any nonzero byte is foreground.
type Bitmap struct {
	W, H int
	Pix  []uint8
}

// NewBitmap allocates a zeroed bitmap of the given size.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{W: w, H: h, Pix: make([]uint8, w*h)}
}

// On reports whether the pixel at (x, y) is foreground. Out-of-bounds
// coordinates are background.
func (b *Bitmap) On(x, y int) bool {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return false
	}
	return b.Pix[y*b.W+x] != 0
}

// Set marks the pixel at (x, y) as foreground.
func (b *Bitmap) Set(x, y int) {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return
	}
	b.Pix[y*b.W+x] = 255
}

// Points returns all foreground pixel coordinates in row-major scan order.
func (b *Bitmap) Points() []geometry.PointInt {
	var pts []geometry.PointInt
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.Pix[y*b.W+x] != 0 {
				pts = append(pts, geometry.PointInt{X: x, Y: y})
			}
		}
	}
	return pts
}

// 8-connected neighbor offsets and their step costs. Orthogonal steps cost
// 1.0, diagonal steps cost sqrt 2.
var (
	neighborDX   = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	neighborDY   = [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	neighborCost = [8]float64{math.Sqrt2, 1, math.Sqrt2, 1, 1, math.Sqrt2, 1, math.Sqrt2}
)

// arc is one adjacency entry: target node index plus edge weight.
type arc struct {
	to     int32
	weight float64
}

// Graph is a weighted undirected graph over skeleton pixels. Each foreground
// pixel becomes exactly one node; node indices are assigned in row-major scan
// order at construction and stay stable for the lifetime of the graph.
// Adjacency is stored as index-weight lists to avoid repeated coordinate
// hashing during traversal.
type Graph struct {
	nodes []geometry.PointInt
	adj   [][]arc

	// Reverse lookup grid: index[y*w+x] is the node index at that pixel,
	// or -1 for background.
	index []int32
	w, h  int
}

// BuildGraph constructs the skeleton graph for a bitmap. Edges connect
// 8-adjacent foreground pixels with Euclidean step weights. Returns
// ErrEmptySkeleton when the bitmap has no foreground pixels.
func BuildGraph(bm *Bitmap) (*Graph, error) {
	g := &Graph{
		index: make([]int32, bm.W*bm.H),
		w:     bm.W,
		h:     bm.H,
	}
	for i := range g.index {
		g.index[i] = -1
	}

	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			if bm.Pix[y*bm.W+x] == 0 {
				continue
			}
			g.index[y*bm.W+x] = int32(len(g.nodes))
			g.nodes = append(g.nodes, geometry.PointInt{X: x, Y: y})
		}
	}

	if len(g.nodes) == 0 {
		return nil, ErrEmptySkeleton
	}

	g.adj = make([][]arc, len(g.nodes))
	for i, p := range g.nodes {
		for d := 0; d < 8; d++ {
			nx, ny := p.X+neighborDX[d], p.Y+neighborDY[d]
			if nx < 0 || nx >= g.w || ny < 0 || ny >= g.h {
				continue
			}
			j := g.index[ny*g.w+nx]
			if j < 0 {
				continue
			}
			g.adj[i] = append(g.adj[i], arc{to: j, weight: neighborCost[d]})
		}
	}

	return g, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Node returns the pixel coordinate of a node index.
func (g *Graph) Node(i int) geometry.PointInt {
	return g.nodes[i]
}

// NodeAt returns the node index at a pixel coordinate, or false if the
// coordinate is background or out of bounds.
func (g *Graph) NodeAt(p geometry.PointInt) (int, bool) {
	if p.X < 0 || p.X >= g.w || p.Y < 0 || p.Y >= g.h {
		return 0, false
	}
	i := g.index[p.Y*g.w+p.X]
	if i < 0 {
		return 0, false
	}
	return int(i), true
}

// EdgeWeight returns the stored weight of the edge between two node indices,
// or false if no edge connects them.
func (g *Graph) EdgeWeight(a, b int) (float64, bool) {
	for _, e := range g.adj[a] {
		if int(e.to) == b {
			return e.weight, true
		}
	}
	return 0, false
}

// EdgeCount returns the number of undirected edges in the graph.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, arcs := range g.adj {
		total += len(arcs)
	}
	return total / 2
}
