// Package main provides the entry point for the sprout measurement tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sprout-meter/internal/config"
	"sprout-meter/internal/pipeline"
	"sprout-meter/internal/results"
	"sprout-meter/internal/version"
)

const appTitle = "Sprout Meter"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	imagesDir := flag.String("images", envOr("SPROUT_IMAGES", ""), "Folder of sprout images")
	csvPath := flag.String("csv", envOr("SPROUT_CSV", ""), "Calibration CSV (file_name,pixel,distance)")
	outputRoot := flag.String("output", "", "Output root folder (default: the image folder)")
	configPath := flag.String("config", "", "Optional TOML config file")
	workers := flag.Int("workers", 0, "Worker count (overrides config when > 0)")
	dryRun := flag.Bool("dry-run", false, "Validate inputs without processing")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s (built %s, commit %s)\n", appTitle, version.Version, version.BuildTime, version.GitCommit)
		return
	}

	if *imagesDir == "" || *csvPath == "" {
		fmt.Println("Usage: sprout-meter -images <folder> -csv <calibration.csv> [-output <folder>] [-config <file.toml>] [-workers N] [-dry-run]")
		os.Exit(1)
	}

	log.Printf("Starting %s v%s", appTitle, version.Version)

	if *dryRun {
		os.Exit(runValidation(*imagesDir, *csvPath))
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := pipeline.Run(ctx, pipeline.Options{
		ImagesDir:  *imagesDir,
		CSVPath:    *csvPath,
		OutputRoot: *outputRoot,
		Workers:    *workers,
		Config:     cfg,
	})
	if err != nil {
		if summary != nil {
			printSummary(summary)
		}
		log.Fatalf("Run failed: %v", err)
	}
	printSummary(summary)
}

func runValidation(imagesDir, csvPath string) int {
	rep := pipeline.Validate(imagesDir, csvPath)
	for _, msg := range rep.Info {
		fmt.Printf("  info: %s\n", msg)
	}
	for _, msg := range rep.Warnings {
		fmt.Printf("  warn: %s\n", msg)
	}
	for _, msg := range rep.Fatal {
		fmt.Printf("  FATAL: %s\n", msg)
	}
	if !rep.OK() {
		fmt.Println("Validation failed")
		return 1
	}
	fmt.Println("Validation passed")
	return 0
}

func printSummary(s *results.RunSummary) {
	fmt.Printf("Run %s: %d image(s) in %s\n", s.RunID, s.TotalImages, s.Duration)
	fmt.Printf("  processed: %d  skipped: %d  errored: %d\n", s.Processed, s.Skipped, s.Errored)
	if s.Overall.Count > 0 {
		fmt.Printf("  lengths: n=%d mean=%.2f stddev=%.2f min=%.2f max=%.2f\n",
			s.Overall.Count, s.Overall.Mean, s.Overall.StdDev, s.Overall.Min, s.Overall.Max)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
