// Command masktest measures a single pre-thresholded mask and prints the
// result, for tuning skeletonization and simplification parameters.
package main

import (
	"flag"
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"sprout-meter/internal/preprocess"
	"sprout-meter/internal/skeleton"
)

func main() {
	maskPath := flag.String("mask", "", "Path to a binary mask image (PNG or JPEG)")
	ratio := flag.Float64("ratio", 1.0, "Real-world units per pixel")
	tolerance := flag.Float64("tolerance", skeleton.DefaultSimplifyTolerance, "Simplification tolerance in pixels")
	thinned := flag.Bool("thinned", false, "Mask is already a 1-pixel skeleton; skip thinning")
	flag.Parse()

	if *maskPath == "" {
		fmt.Println("Usage: masktest -mask <path> [-ratio 0.5] [-tolerance 2.0] [-thinned]")
		os.Exit(1)
	}

	mask := gocv.IMRead(*maskPath, gocv.IMReadGrayScale)
	if mask.Empty() {
		fmt.Fprintf(os.Stderr, "Failed to load mask: %s\n", *maskPath)
		os.Exit(1)
	}
	defer mask.Close()
	fmt.Printf("Loaded mask: %dx%d pixels\n", mask.Cols(), mask.Rows())

	skel := mask
	if !*thinned {
		skel = preprocess.ZhangSuen(mask)
		defer skel.Close()
	}

	bm := preprocess.ToBitmap(skel)
	fmt.Printf("Skeleton pixels: %d\n", len(bm.Points()))

	m, err := skeleton.Measure(bm, *ratio, *tolerance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Measurement failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Endpoints: (%d,%d) -> (%d,%d)\n",
		m.Path[0].X, m.Path[0].Y, m.Path[len(m.Path)-1].X, m.Path[len(m.Path)-1].Y)
	fmt.Printf("Path: %d node(s), simplified to %d vertices\n", len(m.Path), len(m.Simplified))
	fmt.Printf("Pixel length: %.3f\n", m.PixelLength)
	fmt.Printf("Real length:  %.3f\n", m.RealLength)
}
