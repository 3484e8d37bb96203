package skeleton

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprout-meter/pkg/geometry"
)

func TestReconnectLengthTooShort(t *testing.T) {
	g, err := BuildGraph(bitmapFrom("###"))
	require.NoError(t, err)

	_, err = ReconnectLength(g, nil)
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = ReconnectLength(g, pts(0, 0))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestReconnectLengthUsesGraphEdges(t *testing.T) {
	g, err := BuildGraph(bitmapFrom(
		"#.",
		".#",
	))
	require.NoError(t, err)

	// Adjacent pair: the stored diagonal weight is reused.
	length, err := ReconnectLength(g, pts(0, 0, 1, 1))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, length, 1e-12)
}

func TestReconnectLengthSynthesizesChords(t *testing.T) {
	g, err := BuildGraph(bitmapFrom("##########"))
	require.NoError(t, err)

	// (0,0) and (9,0) are not graph-adjacent; the segment falls back to the
	// straight-line distance.
	length, err := ReconnectLength(g, pts(0, 0, 9, 0))
	require.NoError(t, err)
	assert.InDelta(t, 9.0, length, 1e-12)
}

func TestReconnectLengthAtLeastChord(t *testing.T) {
	g, err := BuildGraph(bitmapFrom(
		"######",
		".....#",
		".....#",
	))
	require.NoError(t, err)

	path := pts(0, 0, 5, 0, 5, 2)
	length, err := ReconnectLength(g, path)
	require.NoError(t, err)

	chord := path[0].Distance(path[len(path)-1])
	assert.GreaterOrEqual(t, length, chord)
}

func TestCalibrate(t *testing.T) {
	assert.Equal(t, 4.5, Calibrate(9.0, 0.5))
	assert.Equal(t, 9.0*0.123, Calibrate(9.0, 0.123))
}

func TestMeasureStraightRow(t *testing.T) {
	m, err := Measure(bitmapFrom("##########"), 0.5, DefaultSimplifyTolerance)
	require.NoError(t, err)

	assert.InDelta(t, 9.0, m.PixelLength, 1e-12)
	assert.InDelta(t, 4.5, m.RealLength, 1e-12)

	ends := []geometry.PointInt{m.Path[0], m.Path[len(m.Path)-1]}
	assert.Contains(t, ends, geometry.PointInt{X: 0, Y: 0})
	assert.Contains(t, ends, geometry.PointInt{X: 9, Y: 0})
}

func TestMeasureLShape(t *testing.T) {
	// 5px east then 5px south: ridge length 10, chord sqrt(50).
	m, err := Measure(bitmapFrom(
		"######",
		".....#",
		".....#",
		".....#",
		".....#",
		".....#",
	), 1.0, DefaultSimplifyTolerance)
	require.NoError(t, err)

	// The corner survives default simplification, leaving two axis-aligned
	// segments whose chords equal the ridge lengths exactly.
	require.Len(t, m.Simplified, 3)

	chord := m.Simplified[0].Distance(m.Simplified[2])
	assert.GreaterOrEqual(t, m.PixelLength, chord)
	assert.LessOrEqual(t, m.PixelLength, 10.0+1e-12)
	assert.InDelta(t, 10.0, m.PixelLength, 1e-9)
}

func TestMeasureSinglePixel(t *testing.T) {
	_, err := Measure(bitmapFrom("#"), 1.0, DefaultSimplifyTolerance)
	assert.ErrorIs(t, err, ErrGraphTooSmall)
}

func TestMeasureEmptyMask(t *testing.T) {
	_, err := Measure(NewBitmap(5, 5), 1.0, DefaultSimplifyTolerance)
	assert.ErrorIs(t, err, ErrEmptySkeleton)
}

func TestMeasureFragmentedSkeleton(t *testing.T) {
	// Two disjoint fragments: the double sweep stays inside the component
	// reachable from the first node, so the measurement covers only that
	// fragment rather than crashing.
	m, err := Measure(bitmapFrom("####...####"), 1.0, DefaultSimplifyTolerance)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, m.PixelLength, 1e-12)
}
