package pwalk

import (
	"errors"
	"io"
	"os"
)

// direntBatchSize is the number of entries pulled from the OS per
// (*os.File).ReadDir call. Matches the teacher's habit of batching
// directory reads rather than issuing one syscall per entry (see
// nameBatch in the teacher's name_batch.go); unlike the teacher we don't
// need an arena here because os.DirEntry values are already cheap.
const direntBatchSize = 256

// osReader is the portable core of the directory reader: it drives
// (*os.File).ReadDir in batches and applies the ".", "..", ".snapshot"
// filtering policy from spec.md §4.A. The platform-specific piece is only
// how a raw fs.DirEntry's type bit is turned into a [Kind] hint, supplied
// by classifyType (reader_unix.go / reader_other.go).
type osReader struct {
	f               *os.File
	dirPath         string
	includeSnapshot bool

	batch []os.DirEntry
	idx   int
	err   error // sticky terminal error from a failed ReadDir batch
}

// StatEntry performs the non-symlink-following metadata call spec.md §4.D
// requires to resolve a [KindUnknown] entry. It is exported so drivers that
// need to re-resolve an entry's kind outside of [ExpandDir] (prmdir's
// post-join cleanup pass) can reuse the same platform-specific backend.
func StatEntry(path string) (Kind, error) { return statEntry(path) }

// OpenReader opens dirPath for directory listing. includeSnapshot disables
// the default ".snapshot" filter (pfind -t).
func OpenReader(dirPath string, includeSnapshot bool) (Reader, error) {
	f, err := os.Open(dirPath)
	if err != nil {
		return nil, err
	}
	return &osReader{f: f, dirPath: dirPath, includeSnapshot: includeSnapshot}, nil
}

func (r *osReader) Next() (DirEntry, bool, error) {
	for {
		if r.idx >= len(r.batch) {
			if r.err != nil {
				return DirEntry{}, false, r.err
			}
			batch, err := r.f.ReadDir(direntBatchSize)
			if err != nil {
				// io.EOF means a clean end of directory; any other error
				// is a ReadDirFailure the caller must report, but entries
				// already delivered from prior batches remain valid.
				if len(batch) == 0 {
					if isEOF(err) {
						return DirEntry{}, false, nil
					}
					return DirEntry{}, false, err
				}
				// Entries were returned alongside the error: drain them,
				// then surface the error on the next call.
				r.err = err
			}
			r.batch = batch
			r.idx = 0
			if len(r.batch) == 0 {
				if r.err != nil {
					return DirEntry{}, false, r.err
				}
				return DirEntry{}, false, nil
			}
		}

		ent := r.batch[r.idx]
		r.idx++

		name := ent.Name()
		if skipName(name) {
			continue
		}
		if !r.includeSnapshot && name == snapshotName {
			continue
		}

		return DirEntry{
			Name:     name,
			Kind:     classifyType(ent),
			OwnerDir: r.dirPath,
		}, true, nil
	}
}

func (r *osReader) Close() error { return r.f.Close() }

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
