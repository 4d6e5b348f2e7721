// Package codectest provides an in-process stand-in for the archive tool.
package codectest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creativeyann17/go-arcbatch/internal/format"
)

// PayloadName is the file the fake writes inside an extraction folder
const PayloadName = "payload.bin"

var (
	// ErrNotCompressed is returned when a decompression pass gets a non-Yaz0 input
	ErrNotCompressed = errors.New("fake codec: input is not Yaz0")

	// ErrNotContainer is returned when an extraction pass gets a non-RARC input
	ErrNotContainer = errors.New("fake codec: input is not RARC")
)

// Call records one invocation
type Call struct {
	Output string
	Input  string
}

// Fake mimics the tool's two modes over a toy encoding:
// a raw container is "RARC"+payload, a compressed one is "Yaz0"+raw.
// A directory output extracts the payload into PayloadName; any other
// output receives the decompressed raw container.
type Fake struct {
	Calls []Call

	// ChdirTo, when set, is entered on every call, like the real tool does
	ChdirTo string

	// FailOn maps input base names to the error returned for them
	FailOn map[string]error

	// PanicOn lists input base names that make the fake panic
	PanicOn map[string]bool

	// SkipDecompressOutput leaves the decompression target untouched
	SkipDecompressOutput bool

	// RemoveInputAfterExtract deletes the input after an extraction pass
	RemoveInputAfterExtract bool
}

// Run implements codec.Codec
func (f *Fake) Run(output, input string) error {
	f.Calls = append(f.Calls, Call{Output: output, Input: input})

	if f.ChdirTo != "" {
		if err := os.Chdir(f.ChdirTo); err != nil {
			return err
		}
	}

	base := filepath.Base(input)
	if f.PanicOn[base] {
		panic(fmt.Sprintf("fake codec: crash on %s", base))
	}
	if err := f.FailOn[base]; err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	if info, err := os.Stat(output); err == nil && info.IsDir() {
		if format.DetectFormat(data) != format.FormatRARC {
			return fmt.Errorf("%w: %s", ErrNotContainer, input)
		}
		if err := os.WriteFile(filepath.Join(output, PayloadName), data[format.MagicSize:], 0644); err != nil {
			return err
		}
		if f.RemoveInputAfterExtract {
			return os.Remove(input)
		}
		return nil
	}

	if !format.IsYaz0(data) {
		return fmt.Errorf("%w: %s", ErrNotCompressed, input)
	}
	if f.SkipDecompressOutput {
		return nil
	}
	return os.WriteFile(output, data[format.MagicSize:], 0644)
}

// Raw encodes payload as a raw container
func Raw(payload string) []byte {
	return append([]byte(format.RARCMagic), payload...)
}

// Compressed encodes payload as a compressed container
func Compressed(payload string) []byte {
	return append([]byte(format.Yaz0Magic), Raw(payload)...)
}
