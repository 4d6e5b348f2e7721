// internal/format/detect.go
package format

import (
	"io"
	"os"
)

// MagicSize is the number of leading bytes inspected to classify a container
const MagicSize = 4

const (
	// Yaz0Magic identifies a compressed container
	Yaz0Magic = "Yaz0"

	// RARCMagic identifies a raw (uncompressed) container
	RARCMagic = "RARC"
)

// ContainerFormat represents the detected container format
type ContainerFormat int

const (
	FormatUnknown ContainerFormat = iota
	FormatYaz0
	FormatRARC
)

// String returns the string representation of the format
func (f ContainerFormat) String() string {
	switch f {
	case FormatYaz0:
		return "YAZ0"
	case FormatRARC:
		return "RARC"
	default:
		return "UNKNOWN"
	}
}

// Compressed reports whether the format needs a decompression pass before extraction
func (f ContainerFormat) Compressed() bool {
	return f == FormatYaz0
}

// DetectFormat detects the container format from magic bytes
// Requires at least MagicSize bytes, anything shorter is FormatUnknown
func DetectFormat(magic []byte) ContainerFormat {
	if len(magic) < MagicSize {
		return FormatUnknown
	}

	switch string(magic[:MagicSize]) {
	case Yaz0Magic:
		return FormatYaz0
	case RARCMagic:
		return FormatRARC
	}

	return FormatUnknown
}

// IsYaz0 returns true if the magic bytes indicate a Yaz0 compressed container
func IsYaz0(magic []byte) bool {
	return DetectFormat(magic) == FormatYaz0
}

// Sniff reads the first MagicSize bytes of path and classifies them.
// Missing files, directories, short files and read failures all yield
// FormatUnknown; the error is never surfaced to the caller.
func Sniff(path string) ContainerFormat {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return FormatUnknown
	}

	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown
	}
	defer f.Close()

	magic := make([]byte, MagicSize)
	if _, err := io.ReadFull(f, magic); err != nil {
		return FormatUnknown
	}

	return DetectFormat(magic)
}

// IsCompressedContainer returns true iff path is a regular file starting with the Yaz0 magic
func IsCompressedContainer(path string) bool {
	return Sniff(path).Compressed()
}
