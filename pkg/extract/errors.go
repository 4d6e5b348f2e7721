// pkg/extract/errors.go
package extract

import "errors"

var (
	// ErrCodecRequired is returned when no codec is configured
	ErrCodecRequired = errors.New("codec is required")

	// ErrSourceNotFile is returned when the source archive is missing or not a regular file
	ErrSourceNotFile = errors.New("source archive is not a regular file")

	// ErrEmptyIntermediate is returned when the decompression pass produced no data
	ErrEmptyIntermediate = errors.New("decompression produced an empty intermediate file")
)
