// Package codec invokes the external archive tool.
//
// The tool has a single calling convention, "-o <target> <input>", and two
// implicit modes chosen by the shape of the target:
//
//   - a file target decompresses a compressed container into that file
//   - a directory target extracts a raw container into that directory
//
// Callers only supply the right argument shape per stage; the mode
// selection itself stays inside the tool.
package codec

// Codec runs one invocation of the archive tool.
// Run must not return before the tool has finished writing output.
// Implementations may change the process working directory.
type Codec interface {
	Run(output, input string) error
}

// Func adapts an ordinary function to the Codec interface
type Func func(output, input string) error

// Run calls f(output, input)
func (f Func) Run(output, input string) error {
	return f(output, input)
}
