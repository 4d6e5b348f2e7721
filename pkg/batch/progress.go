// pkg/batch/progress.go
package batch

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressCallback is called for various progress events
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type        EventType
	Source      string
	Destination string
	Current     int64
	Total       int64
	Err         error
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventItemStart
	EventItemComplete
	EventItemSkipped
	EventError
	EventComplete
)

// ProgressBarCallback creates a progress callback that displays an overall bar
// with the archive currently being extracted.
// Returns the callback function and the progress container (call Wait() after the batch)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	progress := mpb.New(
		mpb.WithWidth(60),
		mpb.WithRefreshRate(150*time.Millisecond),
	)

	var overallBar *mpb.Bar
	var mu sync.Mutex
	current := ""

	currentName := func(decor.Statistics) string {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	callback := func(event ProgressEvent) {
		switch event.Type {
		case EventStart:
			if event.Total == 0 {
				return
			}
			overallBar = progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.Name("Archives", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
					decor.Any(currentName, decor.WC{C: decor.DextraSpace}),
				),
			)

		case EventItemStart:
			mu.Lock()
			current = TruncateLeft(event.Source, 40)
			mu.Unlock()

		case EventItemComplete, EventItemSkipped, EventError:
			if overallBar != nil {
				overallBar.Increment()
			}

		case EventComplete:
			mu.Lock()
			current = ""
			mu.Unlock()
			if overallBar != nil {
				// Completes the bar even if some increments were missed
				overallBar.SetTotal(-1, true)
			}
		}
	}

	return callback, progress
}

// FormatSummary formats a batch result into a human-readable summary string
func FormatSummary(result *Result) string {
	var sb strings.Builder

	if len(result.Errors) > 0 {
		fmt.Fprintf(&sb, "Completed with %d errors:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(&sb, "  - %v\n", e)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  Archives found:  %d\n", result.CandidatesTotal)
	fmt.Fprintf(&sb, "  Extracted:       %d\n", result.Succeeded)
	if result.Skipped > 0 {
		fmt.Fprintf(&sb, "  Unchanged:       %d\n", result.Skipped)
	}
	fmt.Fprintf(&sb, "  Failed:          %d\n", result.Failed)
	fmt.Fprintf(&sb, "  Elapsed:         %s\n", result.Elapsed().Round(time.Millisecond))

	return sb.String()
}

// FormatSize formats bytes into human-readable string
func FormatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// TruncateLeft keeps the last maxLen-3 characters of path behind "...".
// It counts runes, so multi-byte names are never cut mid-character.
func TruncateLeft(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}

	keep := max(maxLen-3, 0)
	return "..." + string(runes[len(runes)-keep:])
}
