// Command pfind is the parallel recursive lister (spec.md §4.F): it prints
// either the non-directory descendants or the directory descendants of a
// starting path, in tree pre-order, using pwalk's worker pool to expand
// directories concurrently.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fsnitro/pwalk/internal/lister"
)

// dirsFlag and filesFlag are pflag.Value implementations sharing the same
// *lister.Mode. pflag calls Set on whichever flag was parsed, in
// command-line order, so registering -d and -f against the same backing
// variable gives spec.md §9's "last flag wins" open-question resolution
// for free, without inspecting raw argv.
type dirsFlag struct{ mode *lister.Mode }

func (f dirsFlag) String() string   { return boolStr(*f.mode == lister.ModeDirs) }
func (f dirsFlag) Set(string) error { *f.mode = lister.ModeDirs; return nil }
func (f dirsFlag) Type() string     { return "bool" }
func (f dirsFlag) IsBoolFlag() bool { return true }

type filesFlag struct{ mode *lister.Mode }

func (f filesFlag) String() string   { return boolStr(*f.mode == lister.ModeFiles) }
func (f filesFlag) Set(string) error { *f.mode = lister.ModeFiles; return nil }
func (f filesFlag) Type() string     { return "bool" }
func (f filesFlag) IsBoolFlag() bool { return true }

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

var errTraversalFailed = fmt.Errorf("traversal reported a failure")

func main() {
	os.Exit(run())
}

func run() int {
	var (
		mode            = lister.ModeFiles
		parallelism     int
		quiet           bool
		forceStat       bool
		includeSnapshot bool
		nulTerminator   bool
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:           "pfind DIR",
		Short:         "list a directory tree with a bounded-concurrency worker pool",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := lister.Config{
				Root:            args[0],
				Mode:            mode,
				Parallelism:     parallelism,
				Quiet:           quiet,
				ForceStat:       forceStat,
				IncludeSnapshot: includeSnapshot,
				NulTerminator:   nulTerminator,
				Verbose:         verbose,
			}

			start := time.Now()
			exitCode, stats := lister.Run(cfg, os.Stdout, os.Stderr)

			if verbose {
				logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pfind"})
				logger.Info("traversal summary",
					"elapsed", time.Since(start).Round(time.Millisecond),
					"waits", humanize.Comma(stats.Waits),
					"stat_calls", humanize.Comma(stats.Stats),
				)
			}

			if exitCode != 0 {
				return errTraversalFailed
			}
			return nil
		},
	}

	cmd.Flags().VarP(dirsFlag{&mode}, "dirs", "d", "emit directories instead of files")
	cmd.Flags().VarP(filesFlag{&mode}, "files", "f", "emit files (default)")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 30, "worker count, clamped to [1, 128]")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress permission-denied warnings")
	cmd.Flags().BoolVarP(&forceStat, "stat", "s", false, "force a metadata call on every entry")
	cmd.Flags().BoolVarP(&includeSnapshot, "snapshot", "t", false, "include .snapshot directories")
	cmd.Flags().BoolVarP(&nulTerminator, "null", "0", false, "terminate records with NUL instead of newline")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "write summary counters to the diagnostic stream")
	cmd.Flags().Lookup("dirs").NoOptDefVal = "true"
	cmd.Flags().Lookup("files").NoOptDefVal = "true"

	if err := cmd.Execute(); err != nil {
		if err == errTraversalFailed {
			return 1
		}
		fmt.Fprintf(os.Stderr, "pfind: %v\n", err)
		return 1
	}
	return 0
}
