// Package lister implements pfind, the recursive lister driver of
// spec.md §4.F: it wires the shared [pwalk] engine with an action that
// builds an in-memory tree (package tree) while traversing, then walks the
// finished tree once to print either files or directories in pre-order.
package lister

import (
	"bufio"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/fsnitro/pwalk"
	"github.com/fsnitro/pwalk/internal/tree"
)

// Mode selects what pfind prints.
type Mode int

const (
	// ModeFiles prints every non-directory descendant (pfind default / -f).
	ModeFiles Mode = iota
	// ModeDirs prints every directory descendant, including the root (-d).
	ModeDirs
)

// Config holds pfind's resolved command-line options (spec.md §6). Flag
// parsing itself lives in cmd/pfind; this package is the testable core.
type Config struct {
	Root            string
	Mode            Mode
	Parallelism     int
	Quiet           bool // -q: suppress EACCES warnings
	ForceStat       bool // -s
	IncludeSnapshot bool // -t
	NulTerminator   bool // -0
	Verbose         bool // -v
}

// dirJob is the lister's WorkItem (spec.md §3): a directory path paired
// with the tree node that owns it.
type dirJob struct {
	path string
	node *tree.Node
}

// Stats reports the -v summary counters.
type Stats struct {
	Waits int64
	Stats int64
}

// Run executes one pfind invocation: traverses cfg.Root, then prints the
// selected mode's output to out. Recoverable errors are written to errOut
// as "pfind: message: path" lines (spec.md §7). It returns the process
// exit code (0 or 1) and the -v counters.
func Run(cfg Config, out io.Writer, errOut io.Writer) (exitCode int, stats Stats) {
	var rc pwalk.ResultCode
	var statCalls atomic.Int64

	arena, root := tree.NewArena(cfg.Root)
	wl := pwalk.NewWorklist(false)
	wl.Push(dirJob{path: cfg.Root, node: root})

	reportOpen := func(e *pwalk.OpenDirFailure) {
		if cfg.Quiet && pwalk.IsPermissionDenied(e.Err) {
			return
		}
		rc.SetFailed()
		fmt.Fprintf(errOut, "pfind: %s: %s\n", e.Err, e.Path)
	}
	reportRead := func(e *pwalk.ReadDirFailure) {
		rc.SetFailed()
		fmt.Fprintf(errOut, "pfind: reading directory: %s: %s\n", e.Err, e.Path)
	}
	reportStat := func(e *pwalk.MetadataFailure) {
		rc.SetFailed()
		fmt.Fprintf(errOut, "pfind: trying to stat: %s: %s\n", e.Err, e.Path)
	}

	action := func(item pwalk.Item, push func(pwalk.Item)) {
		job := item.(dirJob)

		opts := pwalk.ExpandDirOptions{
			IncludeSnapshot: cfg.IncludeSnapshot,
			ForceStat:       cfg.ForceStat,
			OnOpenError:     reportOpen,
			OnReadError:     reportRead,
			OnStatError:     reportStat,
			StatCalls:       &statCalls,
		}

		_ = pwalk.ExpandDir(job.path, opts, func(entry pwalk.DirEntry, kind pwalk.Kind) {
			isDir := kind == pwalk.KindDir
			child := arena.NewChild(job.node, entry.Name, isDir)
			if isDir {
				push(dirJob{path: pwalk.JoinPath(job.path, entry.Name), node: child})
			}
		})
	}

	pool := pwalk.NewPool(wl, cfg.Parallelism, action)
	if err := pool.Run(); err != nil {
		fmt.Fprintf(errOut, "pfind: %v\n", err)
		return 1, Stats{Waits: wl.Waits(), Stats: statCalls.Load()}
	}

	term := byte('\n')
	if cfg.NulTerminator {
		term = 0
	}

	w := bufio.NewWriter(out)
	switch cfg.Mode {
	case ModeDirs:
		tree.Walk(arena, root, cfg.Root, func(path string, n *tree.Node) {
			if n.IsDir {
				fmt.Fprintf(w, "%s%c", path, term)
			}
		})
	default:
		tree.Walk(arena, root, cfg.Root, func(path string, n *tree.Node) {
			if !n.IsDir {
				fmt.Fprintf(w, "%s%c", path, term)
			}
		})
	}
	_ = w.Flush()

	return rc.ExitCode(), Stats{Waits: wl.Waits(), Stats: statCalls.Load()}
}
