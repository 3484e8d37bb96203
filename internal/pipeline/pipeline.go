// Package pipeline drives batch runs: it pairs images with calibration
// rows, fans the work out over a small worker pool, and aggregates the
// per-image outcomes into a run summary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"sprout-meter/internal/calibration"
	"sprout-meter/internal/config"
	"sprout-meter/internal/preprocess"
	"sprout-meter/internal/results"
	"sprout-meter/internal/sprout"
)

// Options configures a batch run.
type Options struct {
	ImagesDir  string
	CSVPath    string
	OutputRoot string // defaults to ImagesDir
	Workers    int    // overrides config when > 0
	Config     *config.Config
	Thinner    preprocess.Thinner // defaults to preprocess.ZhangSuen
}

// imageReport carries a worker's outcome back to the aggregator along with
// the raw lengths, which feed the run-wide statistics.
type imageReport struct {
	outcome results.ImageOutcome
	lengths []float64
}

// Run processes every supported image in the folder and writes per-image
// artifacts plus a run summary under the output root. A missing calibration
// row skips the image; any other per-image failure is recorded and the
// remaining images still run. Run returns an error when at least one image
// errored, alongside the completed summary.
func Run(ctx context.Context, opts Options) (*results.RunSummary, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	thin := opts.Thinner
	if thin == nil {
		thin = preprocess.ZhangSuen
	}
	outputRoot := opts.OutputRoot
	if outputRoot == "" {
		outputRoot = opts.ImagesDir
	}
	workers := cfg.Pipeline.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	if workers < 1 {
		workers = 1
	}

	table, err := calibration.Load(opts.CSVPath)
	if err != nil {
		return nil, err
	}

	images, err := ListImages(opts.ImagesDir)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no supported images found in %s", opts.ImagesDir)
	}

	summary := results.NewRunSummary()
	summary.TotalImages = len(images)
	log.Printf("run %s: %d image(s), %d worker(s)", summary.RunID, len(images), workers)

	jobs := make(chan string)
	reports := make(chan imageReport, len(images))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				reports <- processImage(name, opts.ImagesDir, outputRoot, table, cfg, thin)
			}
		}()
	}

	enqueued := 0
feed:
	for _, name := range images {
		select {
		case <-ctx.Done():
			log.Printf("run %s: canceled after %d of %d image(s)", summary.RunID, enqueued, len(images))
			break feed
		case jobs <- name:
			enqueued++
		}
	}
	close(jobs)
	wg.Wait()
	close(reports)

	var allLengths []float64
	for rep := range reports {
		summary.Images = append(summary.Images, rep.outcome)
		switch rep.outcome.Status {
		case "processed":
			summary.Processed++
			allLengths = append(allLengths, rep.lengths...)
		case "skipped":
			summary.Skipped++
		default:
			summary.Errored++
		}
	}
	sort.Slice(summary.Images, func(i, j int) bool {
		return summary.Images[i].Name < summary.Images[j].Name
	})
	summary.Overall = results.ComputeStats(allLengths)
	summary.Duration = time.Since(summary.Started).Round(time.Millisecond).String()

	if err := summary.Save(filepath.Join(outputRoot, "run_summary.json")); err != nil {
		log.Printf("run %s: %v", summary.RunID, err)
	}
	log.Printf("run %s: processed=%d skipped=%d errored=%d in %s",
		summary.RunID, summary.Processed, summary.Skipped, summary.Errored, summary.Duration)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	if summary.Errored > 0 {
		return summary, fmt.Errorf("%d image(s) failed", summary.Errored)
	}
	return summary, nil
}

func processImage(name, imagesDir, outputRoot string, table *calibration.Table, cfg *config.Config, thin preprocess.Thinner) imageReport {
	base := baseName(name)
	outcome := results.ImageOutcome{Name: name}

	ratio, err := table.Ratio(base)
	if err != nil {
		if errors.Is(err, calibration.ErrMissing) {
			log.Printf("%s: skipped, no calibration row", name)
			outcome.Status = "skipped"
			outcome.Error = err.Error()
			return imageReport{outcome: outcome}
		}
		return fail(outcome, name, err)
	}

	img, err := preprocess.LoadImage(filepath.Join(imagesDir, name))
	if err != nil {
		return fail(outcome, name, err)
	}
	defer img.Close()

	cleaned, err := preprocess.Clean(img, cfg.Processing)
	if err != nil {
		return fail(outcome, name, err)
	}
	defer cleaned.Close()

	res := sprout.AnalyzeImage(cleaned, ratio, cfg, thin)
	defer res.Close()

	folder, err := EnsureImageFolder(outputRoot, base)
	if err != nil {
		return fail(outcome, name, err)
	}
	if err := results.SaveImageResults(folder, base, img, res, cfg); err != nil {
		return fail(outcome, name, err)
	}

	lengths := make([]float64, 0, len(res.Sprouts))
	for _, s := range res.Sprouts {
		lengths = append(lengths, s.RealLength)
	}
	stats := results.ComputeStats(lengths)

	outcome.Status = "processed"
	outcome.Measured = len(res.Sprouts)
	outcome.Rejected = len(res.Rejects)
	outcome.Stats = &stats
	log.Printf("%s: %d measured, %d rejected", name, outcome.Measured, outcome.Rejected)
	return imageReport{outcome: outcome, lengths: lengths}
}

func fail(outcome results.ImageOutcome, name string, err error) imageReport {
	log.Printf("%s: %v", name, err)
	outcome.Status = "error"
	outcome.Error = err.Error()
	return imageReport{outcome: outcome}
}
