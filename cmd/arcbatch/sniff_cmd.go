// cmd/arcbatch/sniff_cmd.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-arcbatch/internal/format"
)

func sniffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sniff <file>...",
		Short: "Show the container format of each file",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, path := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%-7s  %s\n", format.Sniff(path), path)
			}
		},
	}
}
