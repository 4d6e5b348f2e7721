// pkg/batch/options.go
package batch

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/creativeyann17/go-arcbatch/pkg/codec"
)

// DefaultExtension is the archive extension matched when none is configured
const DefaultExtension = ".arc"

// DefaultIgnoreFile is the per-directory exclusion file read when UseIgnoreFiles is set
const DefaultIgnoreFile = ".arcignore"

// Options configures a batch extraction
type Options struct {
	// Root of the tree to scan for archives
	SourceRoot string

	// Root of the mirrored output tree
	DestinationRoot string

	// Archive extension, matched case-insensitively
	// Default: ".arc"
	Extension string

	// Codec runs the external archive tool
	// Required unless DryRun is set
	Codec codec.Codec

	// TempDir holds intermediate decompressed containers
	// Default: os.TempDir()
	TempDir string

	// Excludes are gitignore-style patterns relative to SourceRoot
	Excludes []string

	// UseIgnoreFiles honours .arcignore files found in the source tree
	UseIgnoreFiles bool

	// Incremental skips archives whose content is unchanged since the
	// last successful run, tracked in a manifest file
	Incremental bool

	// ManifestPath overrides the manifest location
	// Default: <DestinationRoot>/.arcbatch-manifest.json
	ManifestPath string

	// DryRun lists the planned extractions without touching the filesystem
	DryRun bool

	// Logger receives progress lines and warnings
	// Default: discards everything
	Logger *slog.Logger
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		Extension: DefaultExtension,
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.SourceRoot == "" {
		return ErrSourceRequired
	}
	if o.DestinationRoot == "" {
		return ErrDestinationRequired
	}
	if o.Codec == nil && !o.DryRun {
		return ErrCodecRequired
	}

	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
	if o.Extension == "." {
		return ErrInvalidExtension
	}

	if o.Incremental && o.ManifestPath == "" {
		o.ManifestPath = filepath.Join(o.DestinationRoot, DefaultManifestName)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nil
}
