// Command prmdir is the parallel recursive deleter (spec.md §4.H): it
// parallel-unlinks every non-directory descendant of a starting directory,
// then performs a single-threaded bottom-up rmdir pass once the pool joins.
//
// It requires the literal sentinel argument "-rfp" as a destruction
// safeguard (spec.md §4.H); this is enforced before cobra flag parsing
// runs, exactly as the safeguard is meant to work: its absence must have
// no effect on the filesystem whatsoever.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fsnitro/pwalk/internal/remover"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(rawArgs []string) int {
	if !hasSentinel(rawArgs) {
		fmt.Fprintln(os.Stderr, "usage: prmdir -rfp DIR")
		return 1
	}
	rawArgs = rawArgs[1:]

	var errRemoveFailed = fmt.Errorf("one or more removals failed")

	cmd := &cobra.Command{
		Use:           "prmdir -rfp DIR",
		Short:         "recursively remove a directory tree with a bounded-concurrency worker pool",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := remover.Config{
				Root:        args[0],
				Parallelism: 100,
			}
			if remover.Run(cfg, os.Stderr) != 0 {
				return errRemoveFailed
			}
			return nil
		},
	}

	// The sentinel was already consumed positionally by hasSentinel above;
	// the rest of argv is handed to cobra as-is (it must be exactly the
	// one positional DIR argument spec.md §6 prescribes).
	cmd.SetArgs(rawArgs)

	if err := cmd.Execute(); err != nil {
		if err == errRemoveFailed {
			return 1
		}
		fmt.Fprintf(os.Stderr, "prmdir: %v\n", err)
		return 1
	}
	return 0
}

// hasSentinel requires the sentinel at argv[1] position — i.e. rawArgs[0],
// since rawArgs is os.Args with the program name already stripped — mirroring
// the ground-truth original's `strcmp(argv[1], "-rfp")` (pfind_src/pfind/prmdir.cc,
// main()). Any other position is a usage error, not a match: "prmdir DIR -rfp"
// must be rejected exactly like "prmdir DIR" (spec.md §6: "Any deviation is a
// usage error").
func hasSentinel(rawArgs []string) bool {
	return len(rawArgs) >= 1 && rawArgs[0] == remover.Sentinel
}
