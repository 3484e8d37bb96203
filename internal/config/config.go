// Package config holds all tunable processing parameters in one place.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ProcessingConfig covers preprocessing and contour filtering.
type ProcessingConfig struct {
	MeanShiftSpatial  float64 `toml:"mean_shift_spatial"`
	MeanShiftColor    float64 `toml:"mean_shift_color"`
	BlurKernel        int     `toml:"blur_kernel"`
	MorphKernel       int     `toml:"morph_kernel"`
	MinContourArea    float64 `toml:"min_contour_area"`
	RowToleranceRatio float64 `toml:"row_tolerance_ratio"`
}

// GraphConfig covers the skeleton-graph measurement engine.
type GraphConfig struct {
	SimplifyTolerance float64 `toml:"simplify_tolerance"`
}

// VisualConfig covers annotation rendering and label placement.
type VisualConfig struct {
	MinFontScale     float64 `toml:"min_font_scale"`
	FontScaleDivisor float64 `toml:"font_scale_divisor"`
	LabelOffsetY     int     `toml:"label_offset_y"`
	LabelMargin      int     `toml:"label_margin"`
	LabelStep        int     `toml:"label_step"`
	LineWidth        float64 `toml:"line_width"`
}

// OutputConfig covers result file naming and encoding.
type OutputConfig struct {
	JPEGQuality       int    `toml:"jpeg_quality"`
	SkeletonPrefix    string `toml:"skeleton_prefix"`
	MeasurementPrefix string `toml:"measurement_prefix"`
	CSVPrefix         string `toml:"csv_prefix"`
}

// PipelineConfig covers batch execution.
type PipelineConfig struct {
	Workers int `toml:"workers"`
}

// Config is the root configuration document.
type Config struct {
	Processing ProcessingConfig `toml:"processing"`
	Graph      GraphConfig      `toml:"graph"`
	Visual     VisualConfig     `toml:"visual"`
	Output     OutputConfig     `toml:"output"`
	Pipeline   PipelineConfig   `toml:"pipeline"`
}

// Default returns the stock configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Processing: ProcessingConfig{
			MeanShiftSpatial:  20,
			MeanShiftColor:    40,
			BlurKernel:        5,
			MorphKernel:       3,
			MinContourArea:    300,
			RowToleranceRatio: 0.08,
		},
		Graph: GraphConfig{
			SimplifyTolerance: 2.0,
		},
		Visual: VisualConfig{
			MinFontScale:     0.45,
			FontScaleDivisor: 1500,
			LabelOffsetY:     30,
			LabelMargin:      8,
			LabelStep:        22,
			LineWidth:        2,
		},
		Output: OutputConfig{
			JPEGQuality:       95,
			SkeletonPrefix:    "skeletons_",
			MeasurementPrefix: "length_measurement_",
			CSVPrefix:         "sprout_lengths_",
		},
		Pipeline: PipelineConfig{
			Workers: 1,
		},
	}
}

// Load reads a TOML config file over the defaults, so a file only needs to
// name the values it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
