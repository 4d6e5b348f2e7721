// cmd/arcbatch/extract_cmd.go

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/go-arcbatch/internal/config"
	"github.com/creativeyann17/go-arcbatch/pkg/batch"
	"github.com/creativeyann17/go-arcbatch/pkg/codec"
)

func extractCmd(env config.Env) *cobra.Command {
	var codecPath string
	var codecArgs []string
	var extension, tempDir string
	var excludes []string
	var useIgnoreFiles bool
	var incremental bool
	var manifestPath string
	var reportPath string
	var dryRun bool
	var strict bool
	var showProgress bool
	var verbose bool
	var quiet bool
	var logLevel string

	defaultExt := env.Extension
	if defaultExt == "" {
		defaultExt = batch.DefaultExtension
	}

	cmd := &cobra.Command{
		Use:   "extract <source-root> <destination-root>",
		Short: "Extract every archive under a directory into a mirrored tree",
		Long: "Extract walks <source-root>, and for every file with the archive extension\n" +
			"runs the codec into <destination-root>/<relative dir>/<archive name>.\n" +
			"Yaz0-compressed archives are decompressed to a temporary file first.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel, verbose, quiet || showProgress)
			if err != nil {
				return err
			}

			tool := codec.NewCommand(codecPath, codecArgs...)
			tool.Logger = logger
			if verbose && !showProgress {
				tool.Stdout = os.Stderr
			}
			if !dryRun {
				if err := tool.Validate(); err != nil {
					return err
				}
			}

			// Prepare options
			opts := batch.DefaultOptions()
			opts.SourceRoot = args[0]
			opts.DestinationRoot = args[1]
			opts.Extension = extension
			opts.Codec = tool
			opts.TempDir = tempDir
			opts.Excludes = excludes
			opts.UseIgnoreFiles = useIgnoreFiles
			opts.Incremental = incremental
			opts.ManifestPath = manifestPath
			opts.DryRun = dryRun
			opts.Logger = logger

			// Validate and set defaults
			if err := opts.Validate(); err != nil {
				return err
			}

			// Logging helper
			out := cmd.OutOrStdout()
			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Fprintf(out, format+"\n", args...)
				}
			}

			log("Starting extraction...")
			log("  Source:      %s", opts.SourceRoot)
			log("  Destination: %s", opts.DestinationRoot)
			log("  Codec:       %s", strings.Join(append([]string{codecPath}, codecArgs...), " "))
			log("  Extension:   %s", opts.Extension)
			if dryRun {
				log("  Mode:        DRY-RUN (nothing extracted)")
			}
			if incremental {
				log("  Manifest:    %s", opts.ManifestPath)
			}
			log("")

			var progressCb batch.ProgressCallback
			var progress *mpb.Progress

			if showProgress && !quiet {
				progressCb, progress = batch.ProgressBarCallback()
			}

			result, err := batch.ExtractAll(opts, progressCb)

			// Wait for progress bars to finish rendering
			if progress != nil {
				progress.Wait()
			}

			if err != nil {
				return err
			}

			log("")
			if !quiet {
				fmt.Fprint(out, batch.FormatSummary(result))
			}

			if reportPath != "" {
				n, err := batch.WriteReport(reportPath, result)
				if err != nil {
					return err
				}
				log("  Report:          %s (%s)", reportPath, batch.FormatSize(uint64(n)))
			}

			if strict && !result.Success() {
				return fmt.Errorf("finished with %d errors", len(result.Errors))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&codecPath, "codec", env.Codec, "Archive tool executable (env "+config.CodecVar+")")
	cmd.Flags().StringArrayVar(&codecArgs, "codec-arg", env.CodecArgs, "Argument placed before -o, repeatable (env "+config.CodecArgsVar+")")
	cmd.Flags().StringVar(&extension, "ext", defaultExt, "Archive extension, case-insensitive (env "+config.ExtensionVar+")")
	cmd.Flags().StringVar(&tempDir, "temp-dir", env.TempDir, "Directory for intermediate files (env "+config.TempDirVar+")")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "Gitignore-style pattern to skip, repeatable")
	cmd.Flags().BoolVar(&useIgnoreFiles, "arcignore", false, "Honour "+batch.DefaultIgnoreFile+" files in the source tree")
	cmd.Flags().BoolVar(&incremental, "incremental", false, "Skip archives unchanged since the last run")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest path for --incremental (default <destination-root>/"+batch.DefaultManifestName+")")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON report; .zst, .xz or .lz4 suffix compresses it")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List planned extractions without running the codec")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any archive fails")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar instead of per-archive log lines")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show debug logs and codec output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Only warnings and errors (overrides verbose)")
	cmd.Flags().StringVar(&logLevel, "log-level", env.LogLevel, "DEBUG, INFO, WARN or ERROR (env "+config.LogLevelVar+")")

	return cmd
}
