// pkg/extract/extract.go
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/creativeyann17/go-arcbatch/internal/format"
	"github.com/creativeyann17/go-arcbatch/internal/workdir"
)

// intermediatePattern names the decompressed container handed to the second pass
const intermediatePattern = "arcbatch-*.arc"

// Outcome describes what a single extraction did
type Outcome struct {
	// Absolute source archive and destination folder
	Source      string
	Destination string

	// Detected container format ("YAZ0", "RARC" or "UNKNOWN")
	Format string

	// Compressed is true when the two-pass pipeline was used
	Compressed bool

	// Number of codec invocations attempted (0, 1 or 2)
	Stages int

	// Intermediate decompressed file, empty for single-pass extractions
	Intermediate string

	// IntermediateRemoved is true once the intermediate file is gone from disk
	IntermediateRemoved bool
}

// Extractor runs the one- or two-pass pipeline for one archive at a time
type Extractor struct {
	opts *Options
}

// New validates opts and prepares the intermediate directory
func New(opts *Options) (*Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tempDir, err := filepath.Abs(opts.TempDir)
	if err != nil {
		return nil, fmt.Errorf("resolve temp dir: %w", err)
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	opts.TempDir = tempDir

	return &Extractor{opts: opts}, nil
}

// Extract is a convenience wrapper around New and Extractor.Extract
func Extract(opts *Options, sourceArchive, destinationFolder string) (*Outcome, error) {
	e, err := New(opts)
	if err != nil {
		return nil, err
	}
	return e.Extract(sourceArchive, destinationFolder)
}

// Extract unpacks sourceArchive into destinationFolder.
//
// Compressed containers are first decompressed into a fresh intermediate
// file, which is then extracted; raw containers are extracted directly.
// The working directory is restored and the intermediate file removed
// whether or not the codec succeeds.
func (e *Extractor) Extract(sourceArchive, destinationFolder string) (outcome *Outcome, err error) {
	// The codec may chdir between passes, so relative paths are not safe
	src, err := filepath.Abs(sourceArchive)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}
	dst, err := filepath.Abs(destinationFolder)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFile, src, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFile, src)
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, fmt.Errorf("create destination folder: %w", err)
	}

	outcome = &Outcome{Source: src, Destination: dst}

	// Runs after the working directory has been restored, panics included
	defer func() {
		if outcome.Intermediate != "" {
			outcome.IntermediateRemoved = e.removeIntermediate(outcome.Intermediate)
		}
	}()

	err = workdir.WithRestored(func() error {
		detected := format.Sniff(src)
		outcome.Format = detected.String()
		outcome.Compressed = detected.Compressed()

		if !outcome.Compressed {
			outcome.Stages++
			return e.opts.Codec.Run(dst, src)
		}

		intermediate, err := e.newIntermediate()
		if err != nil {
			return err
		}
		outcome.Intermediate = intermediate

		outcome.Stages++
		if err := e.opts.Codec.Run(intermediate, src); err != nil {
			return fmt.Errorf("decompress: %w", err)
		}
		if err := checkIntermediate(intermediate); err != nil {
			return fmt.Errorf("decompress: %w", err)
		}

		outcome.Stages++
		if err := e.opts.Codec.Run(dst, intermediate); err != nil {
			return fmt.Errorf("extract: %w", err)
		}
		return nil
	})

	return outcome, err
}

// newIntermediate reserves a uniquely named file for the decompression pass
func (e *Extractor) newIntermediate() (string, error) {
	f, err := os.CreateTemp(e.opts.TempDir, intermediatePattern)
	if err != nil {
		return "", fmt.Errorf("create intermediate file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("close intermediate file: %w", err)
	}
	return name, nil
}

// checkIntermediate makes sure the first pass actually left data behind
func checkIntermediate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("intermediate file: %w", err)
	}
	if info.Size() == 0 {
		return ErrEmptyIntermediate
	}
	return nil
}

// removeIntermediate deletes path and reports whether it is gone
func (e *Extractor) removeIntermediate(path string) bool {
	err := os.Remove(path)
	switch {
	case err == nil:
		e.opts.Logger.Debug("removed intermediate file", "path", path)
		return true
	case errors.Is(err, fs.ErrNotExist):
		e.opts.Logger.Info("intermediate file does not exist", "path", path)
		return true
	default:
		e.opts.Logger.Warn("failed to remove intermediate file", "path", path, "error", err)
		return false
	}
}
