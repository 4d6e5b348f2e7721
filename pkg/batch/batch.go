// pkg/batch/batch.go
package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/creativeyann17/go-arcbatch/pkg/extract"
)

// walker carries the state of one ExtractAll run
type walker struct {
	opts       *Options
	log        *slog.Logger
	dstRoot    string
	extractor  *extract.Extractor
	manifest   *Manifest
	progressCb ProgressCallback
	result     *Result
}

// ExtractAll extracts every archive under opts.SourceRoot into a mirrored
// tree under opts.DestinationRoot, one archive at a time.
//
// A failing archive is recorded in the result and the batch moves on.
// The returned error is non-nil only when the run cannot start at all
// (invalid options, unreadable source root).
func ExtractAll(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	srcRoot, err := filepath.Abs(opts.SourceRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRoot, err)
	}
	// WalkDir does not descend into a symlinked root
	srcRoot, err = filepath.EvalSymlinks(srcRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRoot, err)
	}
	dstRoot, err := filepath.Abs(opts.DestinationRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve destination root: %w", err)
	}

	result := &Result{
		SourceRoot:      srcRoot,
		DestinationRoot: dstRoot,
		Started:         time.Now(),
	}

	ignoreFile := ""
	if opts.UseIgnoreFiles {
		ignoreFile = DefaultIgnoreFile
	}
	matcher, err := newIgnoreMatcher(srcRoot, opts.Excludes, ignoreFile)
	if err != nil {
		return nil, fmt.Errorf("load exclusions: %w", err)
	}

	candidates, err := collectCandidates(srcRoot, resolvePath(dstRoot), opts.Extension, matcher, result)
	if err != nil {
		return nil, err
	}
	result.CandidatesTotal = len(candidates)

	log := opts.Logger
	log.Info(fmt.Sprintf("found %d archives", len(candidates)), "source", srcRoot, "extension", opts.Extension)

	if len(candidates) == 0 {
		result.Finished = time.Now()
		return result, nil
	}

	w := &walker{
		opts:       opts,
		log:        log,
		dstRoot:    dstRoot,
		progressCb: progressCb,
		result:     result,
	}

	if !opts.DryRun {
		w.extractor, err = extract.New(&extract.Options{
			Codec:   opts.Codec,
			TempDir: opts.TempDir,
			Logger:  log,
		})
		if err != nil {
			return nil, err
		}

		if opts.Incremental {
			w.manifest, err = LoadManifest(opts.ManifestPath)
			if err != nil {
				// Start over rather than refuse to run
				log.Warn("ignoring unreadable manifest", "path", opts.ManifestPath, "error", err)
				result.Errors = append(result.Errors, err)
			}
		}
	}

	w.emit(ProgressEvent{Type: EventStart, Total: int64(len(candidates))})

	for i, c := range candidates {
		w.process(i, len(candidates), c)
	}

	if w.manifest != nil {
		if err := w.manifest.Save(); err != nil {
			log.Warn("failed to save manifest", "path", opts.ManifestPath, "error", err)
			result.Errors = append(result.Errors, err)
		}
	}

	result.Finished = time.Now()

	w.emit(ProgressEvent{
		Type:    EventComplete,
		Current: int64(result.Succeeded + result.Skipped),
		Total:   int64(result.CandidatesTotal),
	})

	log.Info("batch finished",
		"extracted", result.Succeeded,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"elapsed", result.Elapsed().Round(time.Millisecond))

	return result, nil
}

func (w *walker) emit(event ProgressEvent) {
	if w.progressCb != nil {
		w.progressCb(event)
	}
}

// process handles one candidate; nothing it does can abort the batch
func (w *walker) process(index, total int, c Candidate) {
	dest, fellBack := destinationFor(c, w.dstRoot, w.opts.Extension)
	if fellBack {
		w.log.Warn("archive is outside the source root, extracting at destination root",
			"source", c.Path, "destination", dest)
	}

	item := ItemResult{
		Source:      c.Path,
		RelPath:     filepath.ToSlash(c.RelPath),
		Destination: dest,
	}
	started := time.Now()

	if w.opts.DryRun {
		w.log.Info(fmt.Sprintf("%d/%d: %s -> %s", index+1, total, c.Path, dest), "dry_run", true)
		item.Status = StatusPlanned
		w.result.record(item)
		w.emit(ProgressEvent{Type: EventItemSkipped, Source: c.Path, Destination: dest})
		return
	}

	var digest string
	if w.manifest != nil {
		var err error
		digest, err = FileDigest(c.Path)
		if err != nil {
			w.log.Debug("cannot fingerprint archive", "source", c.Path, "error", err)
		} else if w.manifest.Unchanged(c.RelPath, digest, dest) {
			w.log.Info(fmt.Sprintf("%d/%d: %s -> %s", index+1, total, c.Path, dest), "unchanged", true)
			item.Status = StatusSkipped
			w.result.record(item)
			w.emit(ProgressEvent{Type: EventItemSkipped, Source: c.Path, Destination: dest})
			return
		}
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		w.fail(&item, fmt.Errorf("create destination folder: %w", err), started)
		return
	}

	w.log.Info(fmt.Sprintf("%d/%d: %s -> %s", index+1, total, c.Path, dest))
	w.emit(ProgressEvent{
		Type:        EventItemStart,
		Source:      c.Path,
		Destination: dest,
		Current:     int64(index + 1),
		Total:       int64(total),
	})

	outcome, err := w.extractIsolated(c.Path, dest)
	if outcome != nil {
		item.Format = outcome.Format
		item.Stages = outcome.Stages
		if outcome.Intermediate != "" && !outcome.IntermediateRemoved {
			w.result.Errors = append(w.result.Errors,
				fmt.Errorf("%s: intermediate file %s was not removed", item.RelPath, outcome.Intermediate))
		}
	}
	if err != nil {
		w.fail(&item, err, started)
		return
	}

	item.Status = StatusSucceeded
	item.Duration = time.Since(started)
	if w.manifest != nil && digest != "" {
		w.manifest.Record(c.RelPath, digest, dest)
	}
	w.result.record(item)
	w.emit(ProgressEvent{Type: EventItemComplete, Source: c.Path, Destination: dest})
}

// extractIsolated runs the extractor and turns a panic into an error
func (w *walker) extractIsolated(src, dest string) (outcome *extract.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return w.extractor.Extract(src, dest)
}

func (w *walker) fail(item *ItemResult, err error, started time.Time) {
	w.log.Warn("failed to extract archive", "source", item.Source, "error", err)

	item.Status = StatusFailed
	item.Err = err
	item.Error = err.Error()
	item.Duration = time.Since(started)

	if w.manifest != nil {
		w.manifest.Forget(item.RelPath)
	}
	w.result.Errors = append(w.result.Errors, fmt.Errorf("%s: %w", item.Source, err))
	w.result.record(*item)
	w.emit(ProgressEvent{Type: EventError, Source: item.Source, Destination: item.Destination, Err: err})
}
