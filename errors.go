package pwalk

import (
	"errors"
	"fmt"
	"io/fs"
	"sync/atomic"
)

// IsPermissionDenied reports whether err represents an access-denied
// failure, the one OpenDirFailure cause pfind -q is allowed to suppress
// (spec.md §7).
func IsPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// OpenDirFailure is reported when a directory cannot be opened for reading.
//
// Permission-denied failures are suppressed by drivers when the caller asked
// for it (pfind -q); every other cause is always reported.
type OpenDirFailure struct {
	Path string
	Err  error
}

func (e *OpenDirFailure) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *OpenDirFailure) Unwrap() error { return e.Err }

// ReadDirFailure is reported when reading the entries of an already-open
// directory fails partway through. It aborts that directory only.
type ReadDirFailure struct {
	Path string
	Err  error
}

func (e *ReadDirFailure) Error() string { return fmt.Sprintf("reading directory %s: %v", e.Path, e.Err) }
func (e *ReadDirFailure) Unwrap() error { return e.Err }

// MetadataFailure is reported when a metadata (stat) call on an entry fails.
// The entry is treated as a non-directory (or, for the remover, as
// un-actionable) and traversal continues.
type MetadataFailure struct {
	Path string
	Err  error
}

func (e *MetadataFailure) Error() string { return fmt.Sprintf("trying to stat %s: %v", e.Path, e.Err) }
func (e *MetadataFailure) Unwrap() error { return e.Err }

// LinkFailure is reported when plink cannot create a hard link.
type LinkFailure struct {
	From string
	To   string
	Err  error
}

func (e *LinkFailure) Error() string {
	return fmt.Sprintf("%v: from %s to %s", e.Err, e.From, e.To)
}
func (e *LinkFailure) Unwrap() error { return e.Err }

// UnlinkFailure is reported when prmdir cannot remove a non-directory entry.
type UnlinkFailure struct {
	Path string
	Err  error
}

func (e *UnlinkFailure) Error() string { return fmt.Sprintf("unlink %s: %v", e.Path, e.Err) }
func (e *UnlinkFailure) Unwrap() error { return e.Err }

// RmdirFailure is reported when prmdir's bottom-up pass cannot remove a
// directory.
type RmdirFailure struct {
	Path string
	Err  error
}

func (e *RmdirFailure) Error() string { return fmt.Sprintf("rmdir %s: %v", e.Path, e.Err) }
func (e *RmdirFailure) Unwrap() error { return e.Err }

// ThreadStartFailure records that a worker goroutine could not be started.
//
// Go's scheduler cannot actually fail to launch a goroutine the way
// pthread_create can fail to start an OS thread; this type exists so the
// pool's pre-flight validation (parallelism resolves to zero usable
// workers) can still flow through the same error taxonomy as the original
// design. See [Pool.Run].
type ThreadStartFailure struct {
	Err error
}

func (e *ThreadStartFailure) Error() string { return e.Err.Error() }
func (e *ThreadStartFailure) Unwrap() error { return e.Err }

// JoinFailure means the pool could not determine that all workers had
// finished. It is always fatal: the caller cannot safely read the results
// of traversal (e.g. the lister's tree) without that guarantee.
type JoinFailure struct {
	Err error
}

func (e *JoinFailure) Error() string { return e.Err.Error() }
func (e *JoinFailure) Unwrap() error { return e.Err }

// UsageError signals a fatal command-line usage mistake. No driver in this
// module constructs it: the cmd/ binaries print usage mistakes themselves
// and exit 1 before any worker is started.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// ResultCode is the process-wide "did anything fail" flag described in
// spec.md §5: any recoverable failure sets it, and it is read once at exit
// to pick between status 0 and 1.
//
// It is backed by atomic.Bool rather than the plain racy int the original
// tool used. spec.md explicitly tolerates the race ("last-writer-wins
// still yields the correct disjunction"); atomic.Bool gives the identical
// disjunction without tripping the race detector, so there is no reason to
// keep the intentionally-racy version.
type ResultCode struct {
	failed atomic.Bool
}

// SetFailed marks that at least one recoverable error occurred.
func (r *ResultCode) SetFailed() { r.failed.Store(true) }

// Failed reports whether SetFailed was ever called.
func (r *ResultCode) Failed() bool { return r.failed.Load() }

// ExitCode returns 1 if Failed, 0 otherwise.
func (r *ResultCode) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}
