// Package preprocess prepares camera frames for segmentation and supplies
// the skeletonization primitive consumed by the measurement engine.
package preprocess

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"

	"sprout-meter/internal/config"
	"sprout-meter/internal/skeleton"
)

// LoadImage reads a color image from disk.
func LoadImage(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return gocv.Mat{}, fmt.Errorf("failed to load image: %s", path)
	}
	return img, nil
}

// Clean converts a BGR frame into a denoised binary mask ready for contour
// segmentation: mean-shift filtering, grayscale, Gaussian blur, Otsu
// thresholding, then morphological closing and opening with an elliptical
// kernel.
func Clean(img gocv.Mat, cfg config.ProcessingConfig) (gocv.Mat, error) {
	if img.Empty() {
		return gocv.Mat{}, fmt.Errorf("input image is empty")
	}

	shifted := gocv.NewMat()
	defer shifted.Close()
	gocv.PyrMeanShiftFiltering(img, &shifted, cfg.MeanShiftSpatial, cfg.MeanShiftColor)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(shifted, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := cfg.BlurKernel
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(blurred, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(cfg.MorphKernel, cfg.MorphKernel))
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(binary, &closed, gocv.MorphClose, kernel)

	cleaned := gocv.NewMat()
	gocv.MorphologyEx(closed, &cleaned, gocv.MorphOpen, kernel)

	return cleaned, nil
}

// Thinner reduces a binary object mask to a 1-pixel-wide ridge. The engine
// consumes it as a supplied capability: any implementation must return a
// subset of the input mask that preserves its topological connectivity.
type Thinner func(mask gocv.Mat) gocv.Mat

// ZhangSuen is the default Thinner, backed by the Zhang-Suen thinning
// implementation in OpenCV contrib.
func ZhangSuen(mask gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	contrib.Thinning(mask, &out, contrib.ThinningZhangSuen)
	return out
}

// ToBitmap copies a single-channel mask into the engine's dense bitmap form.
func ToBitmap(mask gocv.Mat) *skeleton.Bitmap {
	rows, cols := mask.Rows(), mask.Cols()
	bm := skeleton.NewBitmap(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if mask.GetUCharAt(y, x) > 0 {
				bm.Set(x, y)
			}
		}
	}
	return bm
}
