package geometry

import "math"

// PolygonArea returns the signed area of a polygon given by its vertices,
// computed with the shoelace formula. The sign depends on winding order;
// callers that only need the magnitude should take math.Abs.
func PolygonArea(polygon []PointInt) float64 {
	if len(polygon) < 3 {
		return 0
	}
	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += float64(polygon[i].X)*float64(polygon[j].Y) -
			float64(polygon[j].X)*float64(polygon[i].Y)
	}
	return sum / 2
}

// PolygonCentroid returns the area-weighted centroid of a polygon.
// Degenerate polygons (zero area) return false; callers discard those.
func PolygonCentroid(polygon []PointInt) (Point2D, bool) {
	if len(polygon) < 3 {
		return Point2D{}, false
	}
	var a, cx, cy float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := float64(polygon[i].X), float64(polygon[i].Y)
		xj, yj := float64(polygon[j].X), float64(polygon[j].Y)
		cross := xi*yj - xj*yi
		a += cross
		cx += (xi + xj) * cross
		cy += (yi + yj) * cross
	}
	a /= 2
	if a == 0 {
		return Point2D{}, false
	}
	return Point2D{X: cx / (6 * a), Y: cy / (6 * a)}, true
}

// PathLength returns the total length of a polyline by summing the
// Euclidean distances between consecutive points.
func PathLength(points []Point2D) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i].Distance(points[i-1])
	}
	return total
}

// PerpendicularDistance calculates the perpendicular distance from point p
// to the line through a and b. If a and b coincide it degrades to the
// point-to-point distance.
func PerpendicularDistance(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	if dx == 0 && dy == 0 {
		return p.Distance(a)
	}

	num := math.Abs(dy*p.X - dx*p.Y + b.X*a.Y - b.Y*a.X)
	den := math.Sqrt(dx*dx + dy*dy)
	return num / den
}
