// cmd/arcbatch/main.go

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-arcbatch/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd(env config.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "arcbatch",
		Short:   "arcbatch - batch extractor for .arc game archives",
		Long:    "arcbatch walks a directory tree and extracts every .arc archive into a mirrored output tree.",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	}

	rootCmd.AddCommand(
		versionCmd(),
		extractCmd(env),
		sniffCmd(),
	)
	return rootCmd
}

func main() {
	// Flag defaults come from the environment, so .env goes first
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := newRootCmd(config.Read()).Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the text logger on stderr
func newLogger(levelName string, verbose, quiet bool) (*slog.Logger, error) {
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = max(level, slog.LevelWarn)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
