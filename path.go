package pwalk

// JoinPath concatenates a directory path and a child name with "/", exactly
// as the original tool does (spec.md §3: "Paths are treated as opaque byte
// strings plus a separator; no normalization."). filepath.Join is
// deliberately not used here: it cleans the result (collapsing "a/./b",
// stripping trailing slashes), which would silently change paths containing
// unusual bytes that spec.md requires to survive verbatim.
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if dir[len(dir)-1] == '/' {
		return dir + name
	}
	return dir + "/" + name
}
