// pkg/batch/errors.go
package batch

import "errors"

var (
	// ErrSourceRequired is returned when the source root is not specified
	ErrSourceRequired = errors.New("source root is required")

	// ErrDestinationRequired is returned when the destination root is not specified
	ErrDestinationRequired = errors.New("destination root is required")

	// ErrCodecRequired is returned when no codec is configured outside dry-run mode
	ErrCodecRequired = errors.New("codec is required")

	// ErrInvalidExtension is returned when the archive extension is empty
	ErrInvalidExtension = errors.New("archive extension must not be empty")

	// ErrSourceRoot is returned when the source root cannot be enumerated
	ErrSourceRoot = errors.New("cannot read source root")

	// ErrPanic wraps a panic recovered while extracting one archive
	ErrPanic = errors.New("extraction panicked")
)
