package pwalk

import "sync/atomic"

// EntryHandler is invoked once per directory entry surfaced by [ExpandDir],
// with its kind fully resolved (never [KindUnknown]).
type EntryHandler func(entry DirEntry, kind Kind)

// ExpandDirOptions configures one [ExpandDir] call.
type ExpandDirOptions struct {
	// IncludeSnapshot disables the default ".snapshot" filter (pfind -t).
	IncludeSnapshot bool
	// ForceStat forces a metadata call on every entry, even ones with a
	// cheap kind hint (pfind -s: prewarms the client's attribute cache).
	ForceStat bool

	// OnOpenError, OnReadError and OnStatError report recoverable failures
	// (spec.md §7). Any of them may be nil, in which case that class of
	// failure is silently dropped by ExpandDir itself — callers that care
	// about exit codes must still set [ResultCode] from these callbacks.
	OnOpenError func(*OpenDirFailure)
	OnReadError func(*ReadDirFailure)
	OnStatError func(*MetadataFailure)

	// StatCalls, if non-nil, is incremented once per metadata call this
	// ExpandDir call makes (successful or not). Backs pfind -v's "stats"
	// counter (spec.md §6).
	StatCalls *atomic.Int64
}

// ExpandDir is the generic traversal-engine action of spec.md §4.D: it
// opens dirPath, reads its entries through a [Reader], and resolves each
// entry's [Kind] per the kind-resolution policy —
//
//	DIR hint         -> directory
//	NON_DIR hint      -> non-directory
//	UNKNOWN or ForceStat -> a non-symlink-following metadata call, treating
//	                        a failed stat as non-directory (or, for the
//	                        remover, "un-actionable": not enqueued, not
//	                        unlinked — the caller decides that by simply
//	                        not reacting to a directory classification)
//
// handle is called once per entry with its resolved kind. ExpandDir itself
// never pushes to any worklist; that decision belongs to the driver-specific
// [Action] that calls ExpandDir (lister builds tree nodes, remover unlinks
// or enqueues, linker doesn't use ExpandDir at all since its worklist is
// externally fed).
func ExpandDir(dirPath string, opts ExpandDirOptions, handle EntryHandler) error {
	r, err := OpenReader(dirPath, opts.IncludeSnapshot)
	if err != nil {
		if opts.OnOpenError != nil {
			opts.OnOpenError(&OpenDirFailure{Path: dirPath, Err: err})
		}
		return err
	}
	defer func() { _ = r.Close() }()

	for {
		entry, ok, err := r.Next()
		if err != nil {
			if opts.OnReadError != nil {
				opts.OnReadError(&ReadDirFailure{Path: dirPath, Err: err})
			}
			return err
		}
		if !ok {
			return nil
		}

		kind := entry.Kind
		if kind == KindUnknown || opts.ForceStat {
			childPath := JoinPath(dirPath, entry.Name)
			if opts.StatCalls != nil {
				opts.StatCalls.Add(1)
			}
			resolved, statErr := statEntry(childPath)
			if statErr != nil {
				if opts.OnStatError != nil {
					opts.OnStatError(&MetadataFailure{Path: childPath, Err: statErr})
				}
				kind = KindNonDir
			} else {
				kind = resolved
			}
		}

		handle(entry, kind)
	}
}
