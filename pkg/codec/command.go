// pkg/codec/command.go
package codec

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
)

// maxLogTail bounds how much tool output is kept for error reports
const maxLogTail = 4096

// Command runs the archive tool as a child process:
//
//	<Path> <Args...> -o <output> <input>
type Command struct {
	// Path is the tool executable, looked up in PATH when it has no separator
	Path string

	// Args are placed before "-o", e.g. ["ARCTool.py"] when Path is python3
	Args []string

	// Env is appended to the current environment
	Env []string

	// Stdout receives the tool's output as it runs (optional)
	Stdout io.Writer

	Logger *slog.Logger
}

// NewCommand creates a Command for the given program and leading arguments
func NewCommand(path string, args ...string) *Command {
	return &Command{
		Path: path,
		Args: args,
	}
}

// Validate checks that the tool program can be located
func (c *Command) Validate() error {
	if c.Path == "" {
		return ErrCommandRequired
	}
	if _, err := exec.LookPath(c.Path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCommandNotFound, c.Path, err)
	}
	return nil
}

// Run invokes the tool once and waits for it to exit
func (c *Command) Run(output, input string) error {
	if c.Path == "" {
		return ErrCommandRequired
	}

	args := append(slices.Clone(c.Args), "-o", output, input)
	cmd := exec.Command(c.Path, args...)
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	tail := &tailBuffer{limit: maxLogTail}
	var sink io.Writer = tail
	if c.Stdout != nil {
		sink = io.MultiWriter(tail, c.Stdout)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink

	if c.Logger != nil {
		c.Logger.Debug("running codec", "command", c.Path, "args", args)
	}

	if err := cmd.Run(); err != nil {
		return &Error{
			Output: output,
			Input:  input,
			Err:    err,
			Log:    tail.String(),
		}
	}
	return nil
}

// tailBuffer keeps the last limit bytes written to it
type tailBuffer struct {
	limit int
	buf   []byte
}

func (tb *tailBuffer) Write(p []byte) (int, error) {
	tb.buf = append(tb.buf, p...)
	if over := len(tb.buf) - tb.limit; over > 0 {
		tb.buf = tb.buf[over:]
	}
	return len(p), nil
}

func (tb *tailBuffer) String() string {
	return string(tb.buf)
}
