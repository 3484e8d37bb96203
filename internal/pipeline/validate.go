package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"sprout-meter/internal/calibration"
)

const (
	maxImageBytes = 50 << 20
	maxCSVBytes   = 10 << 20
)

// Report collects the findings of a dry-run check. Fatal findings mean a
// real run would fail outright; warnings flag inputs that will likely be
// skipped or slow things down.
type Report struct {
	Fatal    []string
	Warnings []string
	Info     []string
}

// OK reports whether a run can proceed at all.
func (r *Report) OK() bool { return len(r.Fatal) == 0 }

func (r *Report) fatalf(format string, args ...interface{}) {
	r.Fatal = append(r.Fatal, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) infof(format string, args ...interface{}) {
	r.Info = append(r.Info, fmt.Sprintf(format, args...))
}

// Validate inspects the image folder and calibration CSV without processing
// anything, so operators can catch bad inputs before a long batch run.
func Validate(imagesDir, csvPath string) *Report {
	rep := &Report{}

	info, err := os.Stat(imagesDir)
	switch {
	case err != nil:
		rep.fatalf("image folder %s: %v", imagesDir, err)
	case !info.IsDir():
		rep.fatalf("image folder %s is not a directory", imagesDir)
	}

	csvInfo, err := os.Stat(csvPath)
	switch {
	case err != nil:
		rep.fatalf("calibration CSV %s: %v", csvPath, err)
	case csvInfo.IsDir():
		rep.fatalf("calibration CSV %s is a directory", csvPath)
	case csvInfo.Size() > maxCSVBytes:
		rep.warnf("calibration CSV %s is unusually large (%d bytes)", csvPath, csvInfo.Size())
	}

	if !rep.OK() {
		return rep
	}

	images, err := ListImages(imagesDir)
	if err != nil {
		rep.fatalf("listing images: %v", err)
		return rep
	}
	if len(images) == 0 {
		rep.fatalf("no supported images found in %s", imagesDir)
		return rep
	}
	rep.infof("%d image(s) found in %s", len(images), imagesDir)

	for _, name := range images {
		fi, err := os.Stat(filepath.Join(imagesDir, name))
		if err != nil {
			rep.warnf("image %s: %v", name, err)
			continue
		}
		if fi.Size() > maxImageBytes {
			rep.warnf("image %s is unusually large (%d bytes)", name, fi.Size())
		}
	}

	table, err := calibration.Load(csvPath)
	if err != nil {
		rep.fatalf("calibration CSV: %v", err)
		return rep
	}
	rep.infof("%d calibration row(s) loaded", table.Len())

	uncovered := 0
	for _, name := range images {
		if !table.Has(baseName(name)) {
			uncovered++
			rep.warnf("image %s has no calibration row and will be skipped", name)
		}
	}
	if uncovered == 0 {
		rep.infof("all images have calibration rows")
	}

	return rep
}
