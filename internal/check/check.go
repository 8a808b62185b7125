// Package check provides environment diagnostics (--check mode) and
// pre-pipeline validation (CheckEnv) for the data directory and output
// paths.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/faremeter/internal/config"
	"github.com/backmassage/faremeter/internal/dataset"
	"github.com/backmassage/faremeter/internal/pipeline"
)

// Sentinel errors returned by CheckEnv.
var (
	ErrDataDirNotFound   = errors.New("data directory not found")
	ErrDataDirNotADir    = errors.New("data path is not a directory")
	ErrOutputNotWritable = errors.New("chart output directory is not writable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: data directory presence,
// Parquet file discovery, a trial read of the first file, and output path
// writability. Informational only, it does not stop on failure; the return
// value reports whether everything passed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Environment Check ===")

	ok := checkDataDir(cfg, log)
	if ok {
		ok = checkParquetFiles(cfg, log)
	}
	if cfg.WriteChart {
		ok = checkOutputPath(cfg.ChartPath, log) && ok
	}
	if cfg.SummaryCSV != "" {
		ok = checkOutputPath(cfg.SummaryCSV, log) && ok
	}
	return ok
}

// checkDataDir verifies the data directory exists and is a directory.
func checkDataDir(cfg *config.Config, log Logger) bool {
	fi, err := os.Stat(cfg.DataDir)
	if err != nil {
		log.Error("Data directory not found: %s", cfg.DataDir)
		return false
	}
	if !fi.IsDir() {
		log.Error("Not a directory: %s", cfg.DataDir)
		return false
	}
	log.Success("Data directory: %s", cfg.DataDir)
	return true
}

// checkParquetFiles discovers trip files and trial-reads the first one.
func checkParquetFiles(cfg *config.Config, log Logger) bool {
	files, err := pipeline.Discover(cfg.DataDir)
	if err != nil {
		log.Error("Discovery failed: %v", err)
		return false
	}
	if len(files) == 0 {
		log.Error("No Parquet files (.parquet) found in %s", cfg.DataDir)
		return false
	}
	log.Success("Found %d Parquet file(s)", len(files))

	src := dataset.NewParquetSource(files[0])
	records, malformed, err := src.Read(context.Background())
	if err != nil {
		log.Error("Cannot read %s: %v", src.Name(), err)
		return false
	}
	log.Success("Read %s: %d rows (%d malformed)", src.Name(), len(records), malformed)
	return true
}

// checkOutputPath verifies the parent directory of path can be written to,
// by creating and removing a probe file.
func checkOutputPath(path string, log Logger) bool {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("Cannot create output directory %s: %v", dir, err)
		return false
	}
	probe := filepath.Join(dir, ".faremeter-write-check")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		log.Error("Output directory not writable: %s", dir)
		return false
	}
	os.Remove(probe)
	log.Success("Output path writable: %s", path)
	return true
}

// CheckEnv is the pre-pipeline validation: the data directory must exist
// and, when a chart is requested, its destination directory must be
// creatable and writable. Returns a sentinel error on failure.
func CheckEnv(cfg *config.Config) error {
	fi, err := os.Stat(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDataDirNotFound, cfg.DataDir)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrDataDirNotADir, cfg.DataDir)
	}

	if cfg.WriteChart && !cfg.DryRun {
		dir := filepath.Dir(cfg.ChartPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %s", ErrOutputNotWritable, dir)
		}
		probe := filepath.Join(dir, ".faremeter-write-check")
		if err := os.WriteFile(probe, nil, 0o644); err != nil {
			return fmt.Errorf("%w: %s", ErrOutputNotWritable, dir)
		}
		os.Remove(probe)
	}
	return nil
}
