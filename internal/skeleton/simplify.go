package skeleton

import (
	"sprout-meter/pkg/geometry"
)

// DefaultSimplifyTolerance is the Douglas-Peucker tolerance in pixels used
// when no explicit tolerance is configured.
const DefaultSimplifyTolerance = 2.0

// Simplify reduces a polyline with the Douglas-Peucker algorithm. The first
// and last points are always preserved. Paths with fewer than 3 points, and
// any path when the tolerance is zero or negative, are returned unchanged.
//
// The function is pure and deterministic for a given tolerance, and
// idempotent: simplifying an already-simplified path is a no-op.
func Simplify(path []geometry.Point2D, tolerance float64) []geometry.Point2D {
	if len(path) < 3 || tolerance <= 0 {
		return path
	}
	return douglasPeucker(path, tolerance)
}

func douglasPeucker(path []geometry.Point2D, epsilon float64) []geometry.Point2D {
	if len(path) <= 2 {
		return path
	}

	// Find the point farthest from the chord between the endpoints.
	dmax := 0.0
	index := 0
	end := len(path) - 1

	for i := 1; i < end; i++ {
		d := geometry.PerpendicularDistance(path[i], path[0], path[end])
		if d > dmax {
			dmax = d
			index = i
		}
	}

	if dmax > epsilon {
		left := douglasPeucker(path[:index+1], epsilon)
		right := douglasPeucker(path[index:], epsilon)

		// Drop the shared middle point.
		result := make([]geometry.Point2D, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	return []geometry.Point2D{path[0], path[end]}
}

// ToFloatPath converts integer pixel coordinates to a float polyline for
// simplification.
func ToFloatPath(path []geometry.PointInt) []geometry.Point2D {
	out := make([]geometry.Point2D, len(path))
	for i, p := range path {
		out[i] = p.ToFloat()
	}
	return out
}
