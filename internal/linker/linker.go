// Package linker implements plink, the parallel hard-linker driver of
// spec.md §4.G: source relative paths are read from stdin, and a hard link
// is created for each one under a target root. Parent directories under
// the target are assumed to already exist; plink never creates them.
package linker

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fsnitro/pwalk"
)

// maxLineBytes is the longest accepted stdin line, excluding the trailing
// newline (spec.md §4.G: "refuse any input line exceeding 1999 bytes").
const maxLineBytes = 1999

// Config holds plink's resolved command-line options.
type Config struct {
	TargetRoot  string
	Parallelism int // default 15
	BatchSize   int // default 50, minimum 1
}

// Run reads newline-separated source paths from stdin and hard-links each
// one into cfg.TargetRoot. It returns the process exit code: 0 on success,
// 1 on a malformed input line, a link failure, or a pool join failure
// (spec.md §7).
func Run(cfg Config, stdin io.Reader, errOut io.Writer) int {
	var rc pwalk.ResultCode

	wl := pwalk.NewWorklist(true)

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, maxLineBytes+2), maxLineBytes+2)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > maxLineBytes {
			fmt.Fprintf(errOut, "plink: input too long: %s\n", line)
			return 1
		}
		wl.Push(line)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "plink: reading stdin: %v\n", err)
		return 1
	}
	wl.MarkEOF()

	action := func(item pwalk.Item, _ func(pwalk.Item)) {
		batch := item.([]pwalk.Item)
		for _, raw := range batch {
			from := raw.(string)
			to := pwalk.JoinPath(cfg.TargetRoot, from)
			if err := os.Link(from, to); err != nil {
				rc.SetFailed()
				fmt.Fprintf(errOut, "plink: %v: from %s to %s\n", err, from, to)
			}
		}
	}

	pool := pwalk.NewPool(wl, cfg.Parallelism, action)
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	if err := pool.RunBatched(batchSize); err != nil {
		fmt.Fprintf(errOut, "plink: %v\n", err)
		return 1
	}

	return rc.ExitCode()
}
