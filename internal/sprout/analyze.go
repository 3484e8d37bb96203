// Package sprout runs the per-image measurement pass: segmentation into
// rows, per-object skeletonization and graph measurement, and collection of
// overlay data for the results writer.
package sprout

import (
	"errors"
	"log"

	"gocv.io/x/gocv"

	"sprout-meter/internal/config"
	"sprout-meter/internal/mask"
	"sprout-meter/internal/preprocess"
	"sprout-meter/internal/skeleton"
	"sprout-meter/pkg/geometry"
)

// Sprout is one accepted, measured object.
type Sprout struct {
	Index       int
	Contour     []geometry.PointInt
	CX, CY      int
	RowPos      int // position within its row, drives label side alternation
	PixelLength float64
	RealLength  float64
	Path        []geometry.PointInt
	Simplified  []geometry.Point2D
}

// Reject records an object that produced no measurement, with the reason and
// its centroid for the image summary.
type Reject struct {
	CX, CY int
	Reason string
}

// SkeletonPoints lists the raw skeleton pixels recorded for one attempted
// object, keyed by the sprout index it was a candidate for.
type SkeletonPoints struct {
	Index  int
	Points []geometry.PointInt
}

// ImageResult aggregates one image's pass.
type ImageResult struct {
	Sprouts        []Sprout
	Rejects        []Reject
	SkeletonPoints []SkeletonPoints

	// Contours holds the contour of every attempted object, accepted or
	// not, in processing order for the overlay export.
	Contours [][]geometry.PointInt

	// Skeleton accumulates every object's thinned mask, OR-combined.
	Skeleton gocv.Mat
}

// Close releases the mats held by the result.
func (r *ImageResult) Close() {
	if !r.Skeleton.Empty() {
		r.Skeleton.Close()
	}
}

// AnalyzeImage measures every sprout in a cleaned binary mask. Object-level
// failures are recorded as rejects and never abort sibling objects. An image
// with no surviving contours yields an empty result, not an error.
func AnalyzeImage(cleaned gocv.Mat, ratio float64, cfg *config.Config, thin preprocess.Thinner) *ImageResult {
	h, w := cleaned.Rows(), cleaned.Cols()

	rows := mask.SegmentRows(cleaned, cfg.Processing.MinContourArea, cfg.Processing.RowToleranceRatio)

	total := 0
	for _, row := range rows {
		total += len(row)
	}
	if total == 0 {
		log.Printf("segmentation: no contours survived filtering")
	} else {
		log.Printf("segmentation: %d contours in %d rows", total, len(rows))
	}

	result := &ImageResult{
		Skeleton: gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U),
	}

	index := 1
	for _, row := range rows {
		for pos, obj := range row {
			result.Contours = append(result.Contours, obj.Contour)

			bm := skeletonizeObject(&result.Skeleton, h, w, obj.Contour, thin)

			result.SkeletonPoints = append(result.SkeletonPoints, SkeletonPoints{
				Index:  index,
				Points: bm.Points(),
			})

			m, err := skeleton.Measure(bm, ratio, cfg.Graph.SimplifyTolerance)
			if err != nil {
				log.Printf("sprout at (%d, %d) rejected: %v", obj.CX, obj.CY, err)
				result.Rejects = append(result.Rejects, Reject{
					CX: obj.CX, CY: obj.CY, Reason: rejectReason(err),
				})
				continue
			}

			result.Sprouts = append(result.Sprouts, Sprout{
				Index:       index,
				Contour:     obj.Contour,
				CX:          obj.CX,
				CY:          obj.CY,
				RowPos:      pos,
				PixelLength: m.PixelLength,
				RealLength:  m.RealLength,
				Path:        m.Path,
				Simplified:  m.Simplified,
			})
			index++
		}
	}

	log.Printf("analysis: measured %d sprouts, rejected %d", len(result.Sprouts), len(result.Rejects))
	return result
}

// skeletonizeObject fills the object's contour, thins it, folds the thinned
// mask into the whole-image accumulator, and returns the engine bitmap.
func skeletonizeObject(acc *gocv.Mat, h, w int, contour []geometry.PointInt, thin preprocess.Thinner) *skeleton.Bitmap {
	objMask := mask.Fill(h, w, contour)
	defer objMask.Close()

	thinned := thin(objMask)
	defer thinned.Close()

	gocv.BitwiseOr(*acc, thinned, acc)

	return preprocess.ToBitmap(thinned)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, skeleton.ErrEmptySkeleton):
		return "empty_skeleton"
	case errors.Is(err, skeleton.ErrGraphTooSmall):
		return "graph_too_small"
	case errors.Is(err, skeleton.ErrNoPath):
		return "no_path"
	case errors.Is(err, skeleton.ErrInvalidPath):
		return "invalid_path"
	default:
		return "error"
	}
}
