//go:build unix

package pwalk

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// classifyType turns the OS-supplied d_type hint (surfaced portably via
// fs.DirEntry.Type()) into a [Kind]. Symlinks are classified as non-dir:
// spec.md requires they are never followed, so a symlink entry — even one
// pointing at a directory — must never be pushed onto the worklist.
//
// fs.ModeIrregular means the Go runtime's readdir wrapper could not
// determine the type cheaply (some filesystems report DT_UNKNOWN); that
// maps to KindUnknown, forcing the traversal engine's non-symlink-following
// metadata call (spec.md §4.D).
func classifyType(e fs.DirEntry) Kind {
	switch t := e.Type(); {
	case t&fs.ModeSymlink != 0:
		return KindNonDir
	case t&fs.ModeDir != 0:
		return KindDir
	case t&fs.ModeIrregular != 0:
		return KindUnknown
	default:
		return KindNonDir
	}
}

// statEntry performs the "non-symlink-following metadata call" spec.md §4.D
// requires for KindUnknown entries and for -s/force_stat. It uses
// unix.Lstat directly (rather than os.Lstat) so the backend stays grounded
// in the same raw-syscall style the teacher's io_unix.go uses for its
// fast-path stat calls.
func statEntry(path string) (Kind, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return KindNonDir, err
	}
	if st.Mode&unix.S_IFMT == unix.S_IFDIR {
		return KindDir, nil
	}
	return KindNonDir, nil
}
