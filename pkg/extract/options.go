// pkg/extract/options.go
package extract

import (
	"io"
	"log/slog"
	"os"

	"github.com/creativeyann17/go-arcbatch/pkg/codec"
)

// Options configures a single-archive extraction
type Options struct {
	// Codec runs the external archive tool (required)
	Codec codec.Codec

	// TempDir holds intermediate decompressed containers
	// Default: os.TempDir()
	TempDir string

	// Logger receives debug traces and cleanup notices
	// Default: discards everything
	Logger *slog.Logger
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		TempDir: os.TempDir(),
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.Codec == nil {
		return ErrCodecRequired
	}
	if o.TempDir == "" {
		o.TempDir = os.TempDir()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nil
}
