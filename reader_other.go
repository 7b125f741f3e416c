//go:build !unix

package pwalk

import (
	"io/fs"
	"os"
)

// classifyType always reports KindUnknown on non-unix platforms. spec.md
// §9 ("Kind hint portability") requires the design not assume a cheap type
// hint is available at all; the traversal engine's KindUnknown branch then
// performs the metadata call unconditionally.
func classifyType(_ fs.DirEntry) Kind {
	return KindUnknown
}

// statEntry falls back to os.Lstat, the closest portable equivalent to a
// non-symlink-following metadata call when unix.Lstat isn't available.
func statEntry(path string) (Kind, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return KindNonDir, err
	}
	if fi.IsDir() {
		return KindDir, nil
	}
	return KindNonDir, nil
}
