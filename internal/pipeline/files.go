package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var supportedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
}

// ListImages returns the file names (not paths) of all supported images in
// dir, sorted lexicographically so runs are deterministic.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading image folder: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExt[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// baseName strips the extension from an image file name. Calibration rows
// and output folders are keyed by this stem.
func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// EnsureImageFolder creates (if needed) the per-image output folder under
// root and returns its path.
func EnsureImageFolder(root, base string) (string, error) {
	dir := filepath.Join(root, base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output folder %s: %w", dir, err)
	}
	return dir, nil
}
