// Package calibration loads per-image pixel-to-distance calibration data.
package calibration

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrMissing is returned when an image has no calibration row. The caller
// skips that image; processing of other images continues.
var ErrMissing = errors.New("no calibration data for image")

// Required CSV columns. file_name is the image name without extension;
// the ratio is distance/pixel.
var requiredColumns = []string{"file_name", "pixel", "distance"}

type entry struct {
	pixel    string
	distance string
}

// Table holds calibration rows keyed by image name.
type Table struct {
	entries map[string]entry
}

// Load reads and validates a calibration CSV file. Column headers and image
// names are whitespace-trimmed. Numeric values are validated lazily at
// lookup so a single bad row only affects its own image.
func Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("calibration CSV not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("calibration path is not a file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calibration CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV parse error: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty: %s", path)
	}

	header := records[0]
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV missing required columns %v, found %v", missing, header)
	}

	t := &Table{entries: make(map[string]entry, len(records)-1)}
	for _, rec := range records[1:] {
		if len(rec) < len(header) {
			continue
		}
		name := strings.TrimSpace(rec[cols["file_name"]])
		if name == "" {
			continue
		}
		t.entries[name] = entry{
			pixel:    strings.TrimSpace(rec[cols["pixel"]]),
			distance: strings.TrimSpace(rec[cols["distance"]]),
		}
	}

	return t, nil
}

// Len returns the number of calibration rows.
func (t *Table) Len() int {
	return len(t.entries)
}

// Has reports whether an image name has a calibration row.
func (t *Table) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Ratio returns the real-world distance per pixel for an image name.
// Returns ErrMissing when the image has no row, and a descriptive error
// when its values are non-numeric or non-positive.
func (t *Table) Ratio(name string) (float64, error) {
	e, ok := t.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissing, name)
	}

	pixel, err := strconv.ParseFloat(e.pixel, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric calibration for '%s': pixel=%q", name, e.pixel)
	}
	distance, err := strconv.ParseFloat(e.distance, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric calibration for '%s': distance=%q", name, e.distance)
	}

	if pixel <= 0 || distance <= 0 {
		return 0, fmt.Errorf("invalid calibration for '%s': pixel=%v, distance=%v (must be positive)",
			name, pixel, distance)
	}

	return distance / pixel, nil
}
