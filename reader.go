package pwalk

// Kind classifies a directory entry without necessarily requiring a stat
// call, per spec.md §3's DirEntry triple.
type Kind uint8

const (
	// KindUnknown means the OS did not cheaply supply a type hint; the
	// traversal engine must stat the entry to resolve it (spec.md §4.D).
	KindUnknown Kind = iota
	KindDir
	KindNonDir
)

// DirEntry is one entry yielded by a [Reader]: a name, an optional cheap
// kind hint, and the directory that owns it.
type DirEntry struct {
	Name     string
	Kind     Kind
	OwnerDir string
}

// Reader lists the contents of one directory. It is not safe for
// concurrent use — each pool worker opens and owns its own Reader instance
// for the duration of one directory (spec.md §4.A), then closes it on every
// exit path, including error paths.
type Reader interface {
	// Next returns the next entry, or ok=false at end of directory. It
	// never yields "." or "..". It skips ".snapshot" unless the reader was
	// opened with includeSnapshot.
	Next() (entry DirEntry, ok bool, err error)
	Close() error
}

// skipName reports whether a raw directory-entry name should never be
// surfaced to callers, independent of the .snapshot flag.
func skipName(name string) bool {
	return name == "." || name == ".."
}

// snapshotName is the filer convention filtered by default (spec.md §4.A);
// -t / include_snapshot re-admits it.
const snapshotName = ".snapshot"
