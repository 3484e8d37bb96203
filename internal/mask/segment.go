// Package mask extracts per-object contours from a binary mask and groups
// them into rows for stable sprout numbering.
package mask

import (
	"image"
	"image/color"
	"sort"

	"gocv.io/x/gocv"

	"sprout-meter/pkg/geometry"
)

// Object is one segmented foreground region: its external contour and the
// integer centroid from area-weighted polygon moments.
type Object struct {
	Contour []geometry.PointInt
	CX, CY  int
}

// SegmentRows finds external contours in a binary mask, discards those below
// minArea or with degenerate (zero-area) moments, and groups the survivors
// into rows. Row tolerance is rowToleranceRatio of the image height. Rows are
// ordered by the centroid y of their first member; objects within a row are
// ordered left to right. An empty mask yields an empty result, not an error.
func SegmentRows(binary gocv.Mat, minArea, rowToleranceRatio float64) [][]Object {
	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var valid []Object
	for i := 0; i < contours.Size(); i++ {
		pv := contours.At(i)
		if gocv.ContourArea(pv) < minArea {
			continue
		}

		contour := toPointInts(pv.ToPoints())
		centroid, ok := geometry.PolygonCentroid(contour)
		if !ok {
			continue
		}

		valid = append(valid, Object{
			Contour: contour,
			CX:      int(centroid.X),
			CY:      int(centroid.Y),
		})
	}

	tolerance := int(float64(binary.Rows()) * rowToleranceRatio)
	rows := groupRows(valid, tolerance)

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].CX < row[j].CX })
	}

	return rows
}

// groupRows sorts objects by centroid y and assigns each to the FIRST
// existing row whose reference centroid y is within tolerance. First-fit,
// not best-fit: a centroid near the boundary between two rows lands in
// whichever row was created earlier. Downstream numbering depends on this
// tie-break, so it must not be changed to nearest-row assignment.
func groupRows(objects []Object, tolerance int) [][]Object {
	sorted := make([]Object, len(objects))
	copy(sorted, objects)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CY < sorted[j].CY })

	var rows [][]Object
	for _, obj := range sorted {
		placed := false
		for i, row := range rows {
			if abs(row[0].CY-obj.CY) < tolerance {
				rows[i] = append(rows[i], obj)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []Object{obj})
		}
	}

	return rows
}

// Fill rasterizes a contour as a filled region in a fresh single-channel
// mask of the given size.
func Fill(rows, cols int, contour []geometry.PointInt) gocv.Mat {
	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8U)

	pts := make([]image.Point, len(contour))
	for i, p := range contour {
		pts[i] = image.Point{X: p.X, Y: p.Y}
	}

	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gocv.DrawContours(&out, pv, 0, white, -1)

	return out
}

// Outline draws a contour outline onto an existing single-channel mask.
func Outline(dst *gocv.Mat, contour []geometry.PointInt, thickness int) {
	pts := make([]image.Point, len(contour))
	for i, p := range contour {
		pts[i] = image.Point{X: p.X, Y: p.Y}
	}

	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gocv.DrawContours(dst, pv, 0, white, thickness)
}

func toPointInts(pts []image.Point) []geometry.PointInt {
	out := make([]geometry.PointInt, len(pts))
	for i, p := range pts {
		out[i] = geometry.PointInt{X: p.X, Y: p.Y}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
