// Command plink is the parallel hard-linker (spec.md §4.G): it reads
// newline-separated source paths from stdin and hard-links each one into a
// target root, popping the externally-fed worklist in batches to amortize
// lock cost.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fsnitro/pwalk/internal/linker"
)

var errLinkFailed = fmt.Errorf("one or more links failed")

func main() {
	os.Exit(run())
}

func run() int {
	var (
		targetRoot  string
		parallelism int
		batchSize   int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:           "plink",
		Short:         "hard-link a set of source paths into a target root, read from stdin",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetRoot == "" {
				return fmt.Errorf("-d/--dir is required")
			}

			cfg := linker.Config{
				TargetRoot:  targetRoot,
				Parallelism: parallelism,
				BatchSize:   batchSize,
			}

			start := time.Now()
			exitCode := linker.Run(cfg, os.Stdin, os.Stderr)

			if verbose {
				log.NewWithOptions(os.Stderr, log.Options{Prefix: "plink"}).
					Info("run finished", "elapsed", time.Since(start).Round(time.Millisecond))
			}

			if exitCode != 0 {
				return errLinkFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetRoot, "dir", "d", "", "target root to link into (required)")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 15, "worker count, clamped to [1, 128]")
	cmd.Flags().IntVarP(&batchSize, "batch", "n", 50, "worklist pop batch size (minimum 1)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log a run summary to the diagnostic stream")

	if err := cmd.Execute(); err != nil {
		if err == errLinkFailed {
			return 1
		}
		fmt.Fprintf(os.Stderr, "plink: %v\n", err)
		return 1
	}
	return 0
}
