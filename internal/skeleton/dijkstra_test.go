package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprout-meter/pkg/geometry"
)

func TestFarthestNodesStraightRow(t *testing.T) {
	g, err := BuildGraph(bitmapFrom("##########"))
	require.NoError(t, err)

	n1, n2, err := FarthestNodes(g)
	require.NoError(t, err)

	assert.Equal(t, geometry.PointInt{X: 9, Y: 0}, g.Node(n1))
	assert.Equal(t, geometry.PointInt{X: 0, Y: 0}, g.Node(n2))
}

func TestFarthestNodesSingleNode(t *testing.T) {
	g, err := BuildGraph(bitmapFrom("#"))
	require.NoError(t, err)

	n1, n2, err := FarthestNodes(g)
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
}

func TestFarthestNodesEmptyGraph(t *testing.T) {
	_, _, err := FarthestNodes(&Graph{})
	assert.ErrorIs(t, err, ErrGraphEmpty)
}

func TestDoubleSweepMonotonicity(t *testing.T) {
	shapes := [][]string{
		{"##########"},
		{
			"######",
			".....#",
			".....#",
			".....#",
		},
		{
			"#....#",
			".#..#.",
			"..##..",
			".#....",
			"#.....",
		},
		{
			"####",
			"#..#",
			"####",
		},
	}

	for _, shape := range shapes {
		g, err := BuildGraph(bitmapFrom(shape...))
		require.NoError(t, err)

		n1, n2, err := FarthestNodes(g)
		require.NoError(t, err)

		// Distance from the arbitrary start to its farthest node never
		// exceeds the distance between the two sweep results.
		firstSweep, _ := g.shortestFrom(0)
		secondSweep, _ := g.shortestFrom(n1)
		assert.GreaterOrEqual(t, secondSweep[n2], firstSweep[n1])
	}
}

func TestShortestPathEndpointsMatch(t *testing.T) {
	g, err := BuildGraph(bitmapFrom(
		"######",
		".....#",
		".....#",
	))
	require.NoError(t, err)

	n1, n2, err := FarthestNodes(g)
	require.NoError(t, err)

	path, err := ShortestPath(g, n1, n2)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	assert.Equal(t, g.Node(n1), path[0])
	assert.Equal(t, g.Node(n2), path[len(path)-1])

	// Consecutive path elements are graph-adjacent.
	for i := 0; i < len(path)-1; i++ {
		a, ok := g.NodeAt(path[i])
		require.True(t, ok)
		b, ok := g.NodeAt(path[i+1])
		require.True(t, ok)
		_, ok = g.EdgeWeight(a, b)
		assert.True(t, ok, "path step %v -> %v is not an edge", path[i], path[i+1])
	}
}

func TestShortestPathDisconnected(t *testing.T) {
	// Two fragments separated by a gap wider than one pixel.
	g, err := BuildGraph(bitmapFrom("###...###"))
	require.NoError(t, err)

	left, ok := g.NodeAt(geometry.PointInt{X: 0, Y: 0})
	require.True(t, ok)
	right, ok := g.NodeAt(geometry.PointInt{X: 8, Y: 0})
	require.True(t, ok)

	_, err = ShortestPath(g, left, right)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestShortestPathSameNode(t *testing.T) {
	g, err := BuildGraph(bitmapFrom("###"))
	require.NoError(t, err)

	path, err := ShortestPath(g, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []geometry.PointInt{g.Node(1)}, path)
}
