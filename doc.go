// Package pwalk implements a bounded-concurrency worker pool for
// latency-bound directory-tree traversal.
//
// It is the shared engine behind three command-line tools: a recursive
// lister, a parallel hard-linker, and a parallel recursive remover (see
// cmd/pfind, cmd/plink, cmd/prmdir). Each driver parameterizes the engine
// with its own per-item action; the pool, worklist and termination
// protocol are identical across all three.
//
// # Symlinks
//
// Symlinks are never followed. Directory entries are classified via
// type-preserving metadata (Lstat-equivalent); no cycle detection is
// required as a consequence.
//
// # Concurrency model
//
// A fixed number of goroutines ("workers") consume a shared [Worklist].
// Each worker pops an item, runs the caller-supplied [Action] on it, and
// may push further items (for directory traversal, the subdirectories it
// discovers) before looping. The pool terminates when the worklist is
// empty and no worker is mid-action — see [Worklist] for the exact
// termination predicate, which differs slightly between traversal-fed
// worklists (pfind, prmdir) and externally-fed ones (plink).
//
// # Errors
//
// Recoverable errors (a single directory failing to open, a stat call
// failing) are reported through [ExpandDirOptions]'s OnOpenError,
// OnReadError and OnStatError callbacks and do not stop the pool. Only a
// [JoinFailure] or the inability to start any worker at all terminates
// processing early; [Pool.Run] reports both as its returned error.
package pwalk
