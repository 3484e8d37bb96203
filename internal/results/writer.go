// Package results writes per-image measurement outputs: images, overlay
// metadata, and length tables.
package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"sprout-meter/internal/config"
	"sprout-meter/internal/mask"
	"sprout-meter/internal/sprout"
)

// Overlay metadata entries. Contour points are stored [x, y] (contour
// convention); skeleton points and paths are stored [y, x] (raster scan
// convention), matching the downstream viewers.
type contourEntry struct {
	Points [][2]int `json:"points"`
	Index  int      `json:"index"`
}

type pathEntry struct {
	Index   int          `json:"index"`
	Path    [][2]float64 `json:"path"`
	RawPath [][2]int     `json:"raw_path"`
}

type pointsEntry struct {
	Index  int      `json:"index"`
	Points [][2]int `json:"points"`
}

type labelEntry struct {
	Text      string  `json:"text"`
	Position  [2]int  `json:"position"`
	Index     int     `json:"index"`
	FontScale float64 `json:"font_scale"`
}

type overlayDoc struct {
	Contours       []contourEntry `json:"contours"`
	SkeletonPaths  []pathEntry    `json:"skeleton_paths"`
	SkeletonPoints []pointsEntry  `json:"skeleton_points"`
	Labels         []labelEntry   `json:"labels"`
}

// SaveImageResults writes every output for one processed image into its
// folder: a copy of the original, skeleton and contour masks, overlay
// metadata, the annotated measurement image, and the lengths CSV.
func SaveImageResults(folder, name string, original gocv.Mat, res *sprout.ImageResult, cfg *config.Config) error {
	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("output folder does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", folder)
	}

	jpegParams := []int{gocv.IMWriteJpegQuality, cfg.Output.JPEGQuality}

	if ok := gocv.IMWriteWithParams(filepath.Join(folder, name+".jpg"), original, jpegParams); !ok {
		return fmt.Errorf("failed to write original image copy for %s", name)
	}

	if ok := gocv.IMWrite(filepath.Join(folder, "mask_skeleton_"+name+".png"), res.Skeleton); !ok {
		return fmt.Errorf("failed to write skeleton mask for %s", name)
	}

	if err := writeContourMask(folder, name, original.Rows(), original.Cols(), res); err != nil {
		return err
	}

	annotated, labels, err := renderAnnotated(original, res, cfg)
	if err != nil {
		return err
	}

	if err := writeOverlayJSON(folder, name, res, labels); err != nil {
		return err
	}

	// Legacy flat outputs alongside the mask/overlay pairs.
	skeletonJPG := filepath.Join(folder, cfg.Output.SkeletonPrefix+name+".jpg")
	if ok := gocv.IMWriteWithParams(skeletonJPG, res.Skeleton, jpegParams); !ok {
		return fmt.Errorf("failed to write skeleton visualization for %s", name)
	}

	measurementJPG := filepath.Join(folder, cfg.Output.MeasurementPrefix+name+".jpg")
	if err := imaging.Save(annotated, measurementJPG, imaging.JPEGQuality(cfg.Output.JPEGQuality)); err != nil {
		return fmt.Errorf("failed to write measurement image: %w", err)
	}

	if err := writeLengthsCSV(filepath.Join(folder, cfg.Output.CSVPrefix+name+".csv"), res.Sprouts); err != nil {
		return err
	}

	return nil
}

func renderAnnotated(original gocv.Mat, res *sprout.ImageResult, cfg *config.Config) (image.Image, []Label, error) {
	src, err := original.ToImage()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert frame for annotation: %w", err)
	}
	annotated, labels := Annotate(src, res, cfg.Visual)
	return annotated, labels, nil
}

func writeContourMask(folder, name string, rows, cols int, res *sprout.ImageResult) error {
	contourMask := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8U)
	defer contourMask.Close()

	for _, contour := range res.Contours {
		mask.Outline(&contourMask, contour, 2)
	}

	if ok := gocv.IMWrite(filepath.Join(folder, "mask_contour_"+name+".png"), contourMask); !ok {
		return fmt.Errorf("failed to write contour mask for %s", name)
	}
	return nil
}

func writeOverlayJSON(folder, name string, res *sprout.ImageResult, labels []Label) error {
	doc := overlayDoc{
		Contours:       make([]contourEntry, 0, len(res.Contours)),
		SkeletonPaths:  make([]pathEntry, 0, len(res.Sprouts)),
		SkeletonPoints: make([]pointsEntry, 0, len(res.SkeletonPoints)),
		Labels:         make([]labelEntry, 0, len(labels)),
	}

	for i, contour := range res.Contours {
		e := contourEntry{Index: i, Points: make([][2]int, len(contour))}
		for j, p := range contour {
			e.Points[j] = [2]int{p.X, p.Y}
		}
		doc.Contours = append(doc.Contours, e)
	}

	for _, s := range res.Sprouts {
		e := pathEntry{
			Index:   s.Index,
			Path:    make([][2]float64, len(s.Simplified)),
			RawPath: make([][2]int, len(s.Path)),
		}
		for j, p := range s.Simplified {
			e.Path[j] = [2]float64{p.Y, p.X}
		}
		for j, p := range s.Path {
			e.RawPath[j] = [2]int{p.Y, p.X}
		}
		doc.SkeletonPaths = append(doc.SkeletonPaths, e)
	}

	for _, sp := range res.SkeletonPoints {
		e := pointsEntry{Index: sp.Index, Points: make([][2]int, len(sp.Points))}
		for j, p := range sp.Points {
			e.Points[j] = [2]int{p.Y, p.X}
		}
		doc.SkeletonPoints = append(doc.SkeletonPoints, e)
	}

	for _, l := range labels {
		doc.Labels = append(doc.Labels, labelEntry{
			Text:      l.Text,
			Position:  [2]int{l.X, l.Y},
			Index:     l.Index,
			FontScale: l.FontScale,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode overlay metadata: %w", err)
	}

	path := filepath.Join(folder, "overlay_data_"+name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write overlay metadata: %w", err)
	}
	return nil
}

func writeLengthsCSV(path string, sprouts []sprout.Sprout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create lengths CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Sprout Number", "Pixels", "Millimeters"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, s := range sprouts {
		rec := []string{
			strconv.Itoa(s.Index),
			strconv.FormatFloat(s.PixelLength, 'f', -1, 64),
			strconv.FormatFloat(s.RealLength, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
