package skeleton

import (
	"sprout-meter/pkg/geometry"
)

// ReconnectLength recomputes the pixel length of a simplified path against
// the original skeleton graph. Each consecutive point pair is truncated to
// integer coordinates; if the pair is an edge of the graph, the stored edge
// weight is used, otherwise a straight-line Euclidean weight is synthesized
// for the segment. Simplification may have collapsed many ridge-following
// hops into one chord, so the synthesized weight underestimates the true
// ridge length by an amount bounded by the simplification tolerance.
//
// Returns ErrInvalidPath when fewer than two points remain.
func ReconnectLength(g *Graph, path []geometry.Point2D) (float64, error) {
	if len(path) < 2 {
		return 0, ErrInvalidPath
	}

	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		p1 := path[i].Truncate()
		p2 := path[i+1].Truncate()

		if a, ok := g.NodeAt(p1); ok {
			if b, ok := g.NodeAt(p2); ok {
				if w, ok := g.EdgeWeight(a, b); ok {
					total += w
					continue
				}
			}
		}
		total += p1.Distance(p2)
	}

	return total, nil
}

// Calibrate converts a pixel length to real-world units. The ratio is
// real-world distance per pixel and is validated by the calibration loader
// before it reaches this call.
func Calibrate(pixelLength, ratio float64) float64 {
	return pixelLength * ratio
}

// Measurement is the result of measuring a single skeletonized object.
type Measurement struct {
	PixelLength float64
	RealLength  float64

	// Path is the ridge-following shortest path between the discovered
	// endpoints; Simplified is its Douglas-Peucker reduction.
	Path       []geometry.PointInt
	Simplified []geometry.Point2D
}

// Measure runs the full per-object engine on a skeleton bitmap: graph
// construction, endpoint discovery, shortest-path extraction, simplification
// and length reconstruction, then calibration.
//
// Objects whose graph has fewer than two nodes return ErrGraphTooSmall;
// fragmented skeletons whose endpoints are disconnected return ErrNoPath.
// Both are per-object conditions the caller records and skips.
func Measure(bm *Bitmap, ratio, tolerance float64) (*Measurement, error) {
	g, err := BuildGraph(bm)
	if err != nil {
		return nil, err
	}
	return MeasureGraph(g, ratio, tolerance)
}

// MeasureGraph is Measure for an already-built graph.
func MeasureGraph(g *Graph, ratio, tolerance float64) (*Measurement, error) {
	if g.NodeCount() < 2 {
		return nil, ErrGraphTooSmall
	}

	n1, n2, err := FarthestNodes(g)
	if err != nil {
		return nil, err
	}

	path, err := ShortestPath(g, n1, n2)
	if err != nil {
		return nil, err
	}

	simplified := Simplify(ToFloatPath(path), tolerance)

	pixels, err := ReconnectLength(g, simplified)
	if err != nil {
		return nil, err
	}

	return &Measurement{
		PixelLength: pixels,
		RealLength:  Calibrate(pixels, ratio),
		Path:        path,
		Simplified:  simplified,
	}, nil
}
