package results

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"sprout-meter/internal/config"
	"sprout-meter/internal/sprout"
	"sprout-meter/pkg/geometry"
)

// Label is a placed measurement caption for one sprout.
type Label struct {
	Text      string
	X, Y      int // baseline anchor
	Index     int
	FontScale float64
}

// basicfont.Face7x13 metrics, scaled by the per-image font scale.
const (
	glyphWidth  = 7
	glyphHeight = 13
)

func textSize(text string, scale float64) (w, h int) {
	return int(float64(glyphWidth*len(text)) * scale), int(float64(glyphHeight) * scale)
}

// fontScaleFor sizes captions relative to the image so labels stay legible
// on both phone photos and flatbed scans.
func fontScaleFor(w, h int, cfg config.VisualConfig) float64 {
	return math.Max(cfg.MinFontScale, math.Min(float64(h), float64(w))/cfg.FontScaleDivisor)
}

// placeLabels computes caption anchors for each sprout. Labels alternate
// above and below the centroid by row position, are clamped inside the
// frame, and are nudged away from already-placed labels using an occupancy
// list, up to a bounded number of attempts.
func placeLabels(sprouts []sprout.Sprout, w, h int, cfg config.VisualConfig) []Label {
	const maxAttempts = 12

	scale := fontScaleFor(w, h, cfg)
	var used []geometry.RectInt
	labels := make([]Label, 0, len(sprouts))

	for _, s := range sprouts {
		text := fmt.Sprintf("%d: %.2f mm", s.Index, s.RealLength)
		textW, textH := textSize(text, scale)

		x := s.CX - textW/2
		var y int
		if s.RowPos%2 == 0 {
			y = s.CY - cfg.LabelOffsetY
		} else {
			y = s.CY + cfg.LabelOffsetY
		}

		clampX := func(v int) int {
			return clamp(v, cfg.LabelMargin, w-textW-cfg.LabelMargin)
		}
		clampY := func(v int) int {
			return clamp(v, textH+cfg.LabelMargin, h-cfg.LabelMargin)
		}
		x = clampX(x)
		y = clampY(y)

		for attempt := 0; attempt < maxAttempts; attempt++ {
			box := geometry.RectInt{X: x, Y: y - textH, Width: textW, Height: textH}

			overlaps := false
			for _, u := range used {
				if box.Intersects(u) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				break
			}

			if s.RowPos%2 == 0 {
				y += cfg.LabelStep
			} else {
				y -= cfg.LabelStep
			}
			y = clampY(y)
		}

		used = append(used, geometry.RectInt{X: x, Y: y - textH, Width: textW, Height: textH})
		labels = append(labels, Label{Text: text, X: x, Y: y, Index: s.Index, FontScale: scale})
	}

	return labels
}

// Annotate renders the measurement overlay onto a copy of the source frame:
// contour outlines, simplified skeleton polylines in per-sprout colors, and
// outlined captions. Returns the rendered frame and the placed labels so the
// overlay export can reuse them.
func Annotate(src image.Image, res *sprout.ImageResult, cfg config.VisualConfig) (image.Image, []Label) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	dc := gg.NewContextForImage(src)
	dc.SetLineWidth(cfg.LineWidth)

	// Contours of every attempted object, in a uniform color.
	dc.SetRGB(0, 0, 1)
	for _, contour := range res.Contours {
		strokeClosed(dc, contour)
	}

	// Simplified paths, one distinct hue per sprout.
	for i, s := range res.Sprouts {
		dc.SetColor(pathColor(i))
		for j := 0; j < len(s.Simplified)-1; j++ {
			a, b := s.Simplified[j], s.Simplified[j+1]
			dc.DrawLine(a.X, a.Y, b.X, b.Y)
		}
		dc.Stroke()
	}

	// Captions: black underlay pass, then white on top.
	labels := placeLabels(res.Sprouts, w, h, cfg)
	dc.SetFontFace(basicfont.Face7x13)
	for _, l := range labels {
		x, y := float64(l.X), float64(l.Y)
		dc.Push()
		dc.ScaleAbout(l.FontScale, l.FontScale, x, y)
		dc.SetRGB(0, 0, 0)
		for _, off := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			dc.DrawString(l.Text, x+off[0], y+off[1])
		}
		dc.SetRGB(1, 1, 1)
		dc.DrawString(l.Text, x, y)
		dc.Pop()
	}

	return dc.Image(), labels
}

// pathColor walks the golden angle around the hue circle so adjacent
// sprouts get visually distinct path colors.
func pathColor(i int) colorful.Color {
	hue := math.Mod(float64(i)*137.5, 360)
	return colorful.Hsv(hue, 0.85, 0.95)
}

func strokeClosed(dc *gg.Context, contour []geometry.PointInt) {
	if len(contour) < 2 {
		return
	}
	dc.MoveTo(float64(contour[0].X), float64(contour[0].Y))
	for _, p := range contour[1:] {
		dc.LineTo(float64(p.X), float64(p.Y))
	}
	dc.ClosePath()
	dc.Stroke()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
