package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obj(cx, cy int) Object {
	return Object{CX: cx, CY: cy}
}

func TestGroupRowsEmpty(t *testing.T) {
	assert.Empty(t, groupRows(nil, 50))
}

func TestGroupRowsSingleRow(t *testing.T) {
	rows := groupRows([]Object{obj(300, 100), obj(100, 110), obj(200, 95)}, 50)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 3)
}

func TestGroupRowsSplitsDistantRows(t *testing.T) {
	rows := groupRows([]Object{obj(100, 100), obj(100, 400), obj(200, 110), obj(200, 410)}, 50)
	require.Len(t, rows, 2)

	// Rows are ordered by the centroid y of their first member.
	assert.Equal(t, 100, rows[0][0].CY)
	assert.Equal(t, 400, rows[1][0].CY)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 2)
}

func TestGroupRowsFirstFit(t *testing.T) {
	// Three objects at y=100, 140, 180 with tolerance 50. The middle object
	// is within tolerance of the first row, so first-fit places it there;
	// 180 is 80 away from the row reference (100) and starts a new row even
	// though it sits only 40 from the middle object. This tie-break is
	// load-bearing for downstream numbering.
	rows := groupRows([]Object{obj(0, 100), obj(0, 140), obj(0, 180)}, 50)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 1)
	assert.Equal(t, 180, rows[1][0].CY)
}

func TestGroupRowsReferenceIsFirstMember(t *testing.T) {
	// The row reference never drifts: it stays the first member's centroid,
	// not a running average.
	rows := groupRows([]Object{obj(0, 100), obj(0, 145), obj(0, 149)}, 50)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 3)
}

func TestGroupRowsSortsByYFirst(t *testing.T) {
	// Input order is irrelevant; grouping scans objects by ascending y.
	rows := groupRows([]Object{obj(0, 400), obj(0, 100)}, 50)
	require.Len(t, rows, 2)
	assert.Equal(t, 100, rows[0][0].CY)
}
