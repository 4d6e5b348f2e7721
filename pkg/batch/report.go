// pkg/batch/report.go
package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Report is the serialized form of a Result
type Report struct {
	SourceRoot      string       `json:"source_root"`
	DestinationRoot string       `json:"destination_root"`
	Candidates      int          `json:"candidates"`
	Succeeded       int          `json:"succeeded"`
	Failed          int          `json:"failed"`
	Skipped         int          `json:"skipped"`
	Started         time.Time    `json:"started"`
	Finished        time.Time    `json:"finished"`
	Items           []ItemResult `json:"items"`
	Warnings        []string     `json:"warnings,omitempty"`
}

// NewReport converts a result into its serializable form
func NewReport(result *Result) *Report {
	r := &Report{
		SourceRoot:      result.SourceRoot,
		DestinationRoot: result.DestinationRoot,
		Candidates:      result.CandidatesTotal,
		Succeeded:       result.Succeeded,
		Failed:          result.Failed,
		Skipped:         result.Skipped,
		Started:         result.Started,
		Finished:        result.Finished,
		Items:           result.Items,
	}
	if r.Items == nil {
		r.Items = []ItemResult{}
	}
	for _, err := range result.Errors {
		r.Warnings = append(r.Warnings, err.Error())
	}
	return r
}

// countingWriter counts bytes reaching the underlying writer
type countingWriter struct {
	Writer io.Writer
	Count  int64
}

func (cw *countingWriter) Write(p []byte) (n int, err error) {
	n, err = cw.Writer.Write(p)
	cw.Count += int64(n)
	return n, err
}

// WriteReport writes result as JSON to path. The suffix selects the
// compression: ".zst" (zstd), ".xz", ".lz4", anything else is plain JSON.
// Returns the number of bytes written to disk.
func WriteReport(path string, result *Result) (int64, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("create report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	counter := &countingWriter{Writer: f}
	w, err := compressedWriter(path, counter)
	if err != nil {
		return 0, err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(result)); err != nil {
		w.Close()
		return 0, fmt.Errorf("encode report: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("flush report: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close report: %w", err)
	}

	return counter.Count, nil
}

// ReadReport reads a report written by WriteReport
func ReadReport(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	r, err := decompressedReader(path, f)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var report Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressedWriter(path string, w io.Writer) (io.WriteCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		return enc, nil
	case ".xz":
		xzw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create xz writer: %w", err)
		}
		return xzw, nil
	case ".lz4":
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

func decompressedReader(path string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		return dec.IOReadCloser(), nil
	case ".xz":
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create xz reader: %w", err)
		}
		return io.NopCloser(xzr), nil
	case ".lz4":
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
