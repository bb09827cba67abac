package processor

import (
	"fmt"
	"os"
	"path/filepath"
)

// Outcome is the categorical result of one file's transform attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSkippedExists
	OutcomeSkippedGrew
	OutcomeSkippedFiltered
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkippedExists:
		return "skipped-exists"
	case OutcomeSkippedGrew:
		return "skipped-grew"
	case OutcomeSkippedFiltered:
		return "skipped-filtered"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileResult is the immutable outcome of processing one file. A worker
// constructs it exactly once; nothing mutates it afterwards, which is what
// keeps the pipeline free of shared state.
type FileResult struct {
	Path         string
	Outcome      Outcome
	OriginalSize int64
	OutputSize   int64
	Message      string
}

// Transform maps one source file to its FileResult. Implementations never
// panic across the boundary; every failure is captured in the result.
type Transform func(path string) FileResult

// DefaultWorkers bounds the pool when no worker count is configured.
const DefaultWorkers = 4

// JobConfig is the resolved, validated configuration for one run. It is
// read-only once the pipeline starts.
type JobConfig struct {
	Root       string // scan root, absolute after Validate
	OutDir     string // output tree; empty means alongside the source
	Quality    int    // 1-100
	Lossless   bool
	KeepExif   bool
	Overwrite  bool
	DryRun     bool
	Workers    int
	MaxDepth   int   // -1 = unlimited; 0 = no subdirectory descent
	MinSize    int64 // 0 = no lower bound
	MaxSize    int64 // 0 = no upper bound
	Extensions []string
}

// Validate checks the configuration before any work starts and normalizes
// Root to an absolute path. Failures here are the only fatal errors in a run.
func (cfg *JobConfig) Validate() error {
	if cfg.Quality < 1 || cfg.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", cfg.Quality)
	}
	if cfg.MinSize > 0 && cfg.MaxSize > 0 && cfg.MinSize > cfg.MaxSize {
		return fmt.Errorf("min-size (%d) exceeds max-size (%d)", cfg.MinSize, cfg.MaxSize)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return fmt.Errorf("invalid directory %q: %w", cfg.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", cfg.Root)
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return err
	}
	cfg.Root = abs
	if cfg.OutDir != "" {
		if abs, err = filepath.Abs(cfg.OutDir); err != nil {
			return err
		}
		cfg.OutDir = abs
	}
	return nil
}

// Summary is the single-threaded fold over all FileResults of a run.
type Summary struct {
	Success         int
	SkippedExists   int
	SkippedGrew     int
	SkippedFiltered int
	Failed          int
	TotalOriginal   int64 // Success results only
	TotalOutput     int64 // Success results only
}

// Discovered is the number of candidate files the run touched.
func (s Summary) Discovered() int {
	return s.Success + s.SkippedExists + s.SkippedGrew + s.SkippedFiltered + s.Failed
}

func (s Summary) BytesSaved() int64 {
	return s.TotalOriginal - s.TotalOutput
}

func (s Summary) PercentSaved() float64 {
	if s.TotalOriginal == 0 {
		return 0
	}
	return float64(s.BytesSaved()) / float64(s.TotalOriginal) * 100
}

// ProgressUpdate carries counter deltas from the pipeline to the progress UI.
type ProgressUpdate struct {
	TotalDelta   int
	DoneDelta    int
	FailedDelta  int
	SkippedDelta int
	SavedDelta   int64
}
