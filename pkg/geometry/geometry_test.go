package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		want float64
	}{
		{"same point", Point2D{1, 1}, Point2D{1, 1}, 0},
		{"horizontal", Point2D{0, 0}, Point2D{3, 0}, 3},
		{"3-4-5", Point2D{0, 0}, Point2D{3, 4}, 5},
		{"diagonal", Point2D{0, 0}, Point2D{1, 1}, math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.Distance(tt.b), 1e-12)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, PointInt{X: 3, Y: 7}, Point2D{X: 3.9, Y: 7.2}.Truncate())
	assert.Equal(t, PointInt{X: 5, Y: 5}, Point2D{X: 5, Y: 5}.Truncate())
}

func TestPolygonAreaSquare(t *testing.T) {
	square := []PointInt{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	assert.InDelta(t, 16.0, math.Abs(PolygonArea(square)), 1e-12)
}

func TestPolygonAreaDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, PolygonArea([]PointInt{{0, 0}, {1, 1}}))
	assert.Equal(t, 0.0, PolygonArea([]PointInt{{0, 0}, {1, 1}, {2, 2}}))
}

func TestPolygonCentroid(t *testing.T) {
	square := []PointInt{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	c, ok := PolygonCentroid(square)
	require.True(t, ok)
	assert.InDelta(t, 2.0, c.X, 1e-12)
	assert.InDelta(t, 2.0, c.Y, 1e-12)

	// Winding order does not change the centroid.
	reversed := []PointInt{{0, 4}, {4, 4}, {4, 0}, {0, 0}}
	c2, ok := PolygonCentroid(reversed)
	require.True(t, ok)
	assert.InDelta(t, c.X, c2.X, 1e-12)
	assert.InDelta(t, c.Y, c2.Y, 1e-12)
}

func TestPolygonCentroidDegenerate(t *testing.T) {
	_, ok := PolygonCentroid([]PointInt{{0, 0}, {2, 2}, {4, 4}})
	assert.False(t, ok)
}

func TestPathLength(t *testing.T) {
	assert.Equal(t, 0.0, PathLength(nil))
	assert.Equal(t, 0.0, PathLength([]Point2D{{0, 0}}))

	path := []Point2D{{0, 0}, {3, 0}, {3, 4}}
	assert.InDelta(t, 7.0, PathLength(path), 1e-12)
}

func TestPerpendicularDistance(t *testing.T) {
	a, b := Point2D{0, 0}, Point2D{10, 0}
	assert.InDelta(t, 3.0, PerpendicularDistance(Point2D{5, 3}, a, b), 1e-12)
	assert.InDelta(t, 0.0, PerpendicularDistance(Point2D{7, 0}, a, b), 1e-12)

	// Coincident endpoints fall back to point distance.
	assert.InDelta(t, 5.0, PerpendicularDistance(Point2D{3, 4}, a, a), 1e-12)
}

func TestRectIntersects(t *testing.T) {
	a := RectInt{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, a.Intersects(RectInt{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.False(t, a.Intersects(RectInt{X: 10, Y: 0, Width: 5, Height: 5}))
	assert.False(t, a.Intersects(RectInt{X: 0, Y: 20, Width: 5, Height: 5}))
}

func TestBoundsOf(t *testing.T) {
	assert.Equal(t, RectInt{}, BoundsOf(nil))

	b := BoundsOf([]PointInt{{2, 3}, {7, 1}, {4, 9}})
	assert.Equal(t, RectInt{X: 2, Y: 1, Width: 6, Height: 9}, b)
}
