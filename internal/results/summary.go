package results

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// LengthStats summarizes a set of real-world sprout lengths.
type LengthStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ComputeStats aggregates lengths. An empty input yields a zero-valued
// summary.
func ComputeStats(lengths []float64) LengthStats {
	if len(lengths) == 0 {
		return LengthStats{}
	}

	s := LengthStats{
		Count: len(lengths),
		Mean:  stat.Mean(lengths, nil),
		Min:   lengths[0],
		Max:   lengths[0],
	}
	if len(lengths) > 1 {
		s.StdDev = stat.StdDev(lengths, nil)
	}
	for _, v := range lengths[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

// ImageOutcome is one image's entry in the run summary.
type ImageOutcome struct {
	Name     string       `json:"name"`
	Status   string       `json:"status"` // processed, skipped, error
	Measured int          `json:"measured"`
	Rejected int          `json:"rejected"`
	Stats    *LengthStats `json:"stats,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// RunSummary aggregates a whole batch run.
type RunSummary struct {
	RunID       string         `json:"run_id"`
	Started     time.Time      `json:"started"`
	Duration    string         `json:"duration"`
	TotalImages int            `json:"total_images"`
	Processed   int            `json:"processed"`
	Skipped     int            `json:"skipped"`
	Errored     int            `json:"errored"`
	Images      []ImageOutcome `json:"images"`
	Overall     LengthStats    `json:"overall"`
}

// NewRunSummary starts a summary with a fresh run ID.
func NewRunSummary() *RunSummary {
	return &RunSummary{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
}

// Save writes the summary as indented JSON.
func (s *RunSummary) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}
	return nil
}
