package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprout-meter/pkg/geometry"
)

func pts(coords ...float64) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		out = append(out, geometry.Point2D{X: coords[i], Y: coords[i+1]})
	}
	return out
}

func TestSimplifyShortPathsUnchanged(t *testing.T) {
	for _, path := range [][]geometry.Point2D{
		nil,
		pts(1, 1),
		pts(0, 0, 5, 5),
	} {
		assert.Equal(t, path, Simplify(path, DefaultSimplifyTolerance))
	}
}

func TestSimplifyZeroToleranceUnchanged(t *testing.T) {
	path := pts(0, 0, 1, 0, 2, 0, 3, 0, 4, 0)
	assert.Equal(t, path, Simplify(path, 0))
	assert.Equal(t, path, Simplify(path, -1))
}

func TestSimplifyCollinearCollapse(t *testing.T) {
	path := pts(0, 0, 1, 0, 2, 0, 3, 0, 4, 0)
	got := Simplify(path, 0.5)
	assert.Equal(t, pts(0, 0, 4, 0), got)
}

func TestSimplifyKeepsCorner(t *testing.T) {
	// 5 east then 5 south; the corner sits ~3.54px off the chord.
	path := pts(0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 5, 1, 5, 2, 5, 3, 5, 4, 5, 5)
	got := Simplify(path, DefaultSimplifyTolerance)

	require.Len(t, got, 3)
	assert.Equal(t, path[0], got[0])
	assert.Equal(t, geometry.Point2D{X: 5, Y: 0}, got[1])
	assert.Equal(t, path[len(path)-1], got[2])
}

func TestSimplifyPreservesEndpoints(t *testing.T) {
	path := pts(0, 0, 1, 2, 2, 0, 3, 3, 4, 0, 5, 2, 6, 0)
	for _, tol := range []float64{0.5, 1, 2, 10} {
		got := Simplify(path, tol)
		require.NotEmpty(t, got)
		assert.Equal(t, path[0], got[0])
		assert.Equal(t, path[len(path)-1], got[len(got)-1])
		assert.LessOrEqual(t, len(got), len(path))
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	paths := [][]geometry.Point2D{
		pts(0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 5, 1, 5, 2, 5, 3, 5, 4, 5, 5),
		pts(0, 0, 1, 2, 2, 0, 3, 3, 4, 0, 5, 2, 6, 0),
		pts(0, 0, 1, 1, 2, 4, 3, 1, 4, 0),
	}
	for _, path := range paths {
		for _, tol := range []float64{0.5, 2, 5} {
			once := Simplify(path, tol)
			twice := Simplify(once, tol)
			assert.Equal(t, once, twice)
		}
	}
}

func TestSimplifyShorterThanOriginal(t *testing.T) {
	path := pts(0, 0, 1, 0, 2, 1, 3, 0, 4, 0, 5, 1, 6, 0)
	got := Simplify(path, 2)
	assert.LessOrEqual(t, geometry.PathLength(got), geometry.PathLength(path))
}
