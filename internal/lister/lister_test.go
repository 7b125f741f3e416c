package lister_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/fsnitro/pwalk/internal/lister"
)

// buildTree lays out r/{a, b/c, b/d/, e/} per spec.md §8's concrete
// end-to-end scenario.
func buildTree(t *testing.T, root string) {
	t.Helper()
	mustMkdirAll(t, filepath.Join(root, "b", "d"))
	mustMkdirAll(t, filepath.Join(root, "e"))
	mustWriteFile(t, filepath.Join(root, "a"))
	mustWriteFile(t, filepath.Join(root, "b", "c"))
}

func Test_Run_FileMode_Lists_Every_NonDirectory_Descendant(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "r")
	buildTree(t, root)

	var out, errOut bytes.Buffer
	cfg := lister.Config{Root: root, Mode: lister.ModeFiles, Parallelism: 4}
	code, _ := lister.Run(cfg, &out, &errOut)

	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut.String())
	}

	got := lines(out.String())
	want := []string{root + "/a", root + "/b/c"}
	assertSetEqual(t, got, want)
}

func Test_Run_DirMode_Lists_Every_Directory_Including_Root(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "r")
	buildTree(t, root)

	var out, errOut bytes.Buffer
	cfg := lister.Config{Root: root, Mode: lister.ModeDirs, Parallelism: 4}
	code, _ := lister.Run(cfg, &out, &errOut)

	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut.String())
	}

	got := lines(out.String())
	want := []string{root, root + "/b", root + "/b/d", root + "/e"}
	assertSetEqual(t, got, want)
}

func Test_Run_Omits_Snapshot_By_Default_And_Includes_It_When_Requested(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "r")
	buildTree(t, root)
	mustMkdirAll(t, filepath.Join(root, "b", ".snapshot"))
	mustWriteFile(t, filepath.Join(root, "b", ".snapshot", "x"))

	var out, errOut bytes.Buffer
	code, _ := lister.Run(lister.Config{Root: root, Mode: lister.ModeFiles, Parallelism: 4}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if strings.Contains(out.String(), ".snapshot") {
		t.Fatalf("output must not contain .snapshot by default: %s", out.String())
	}

	out.Reset()
	errOut.Reset()
	code, _ = lister.Run(lister.Config{Root: root, Mode: lister.ModeFiles, Parallelism: 4, IncludeSnapshot: true}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), ".snapshot") {
		t.Fatalf("output must contain .snapshot when IncludeSnapshot is set: %s", out.String())
	}
}

func Test_Run_NulTerminator_Separates_Records_With_NUL(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "r")
	buildTree(t, root)

	var out, errOut bytes.Buffer
	code, _ := lister.Run(lister.Config{Root: root, Mode: lister.ModeFiles, Parallelism: 4, NulTerminator: true}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if strings.Contains(out.String(), "\n") {
		t.Fatal("NUL-terminated output must contain no newlines")
	}
	if !strings.Contains(out.String(), "\x00") {
		t.Fatal("NUL-terminated output must contain NUL bytes")
	}
}

func Test_Run_Is_Parallelism_Invariant_For_Output_Set(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "r")
	buildTree(t, root)
	for i := 0; i < 20; i++ {
		mustWriteFile(t, filepath.Join(root, "e", strings.Repeat("f", 1)+string(rune('a'+i))))
	}

	var want []string
	for _, p := range []int{1, 2, 30, 128} {
		var out, errOut bytes.Buffer
		code, _ := lister.Run(lister.Config{Root: root, Mode: lister.ModeFiles, Parallelism: p}, &out, &errOut)
		if code != 0 {
			t.Fatalf("p=%d: exit code = %d, stderr=%s", p, code, errOut.String())
		}
		got := lines(out.String())
		if want == nil {
			want = got
		} else {
			assertSetEqual(t, got, want)
		}
	}
}

func Test_Run_Reports_NonZero_Exit_When_Directory_Is_Unreadable(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("running as root: permission bits don't deny access")
	}

	root := filepath.Join(t.TempDir(), "r")
	buildTree(t, root)
	locked := filepath.Join(root, "locked")
	mustMkdirAll(t, locked)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o750) })

	var out, errOut bytes.Buffer
	code, _ := lister.Run(lister.Config{Root: root, Mode: lister.ModeFiles, Parallelism: 4}, &out, &errOut)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1 (stderr=%s)", code, errOut.String())
	}
	if errOut.Len() == 0 {
		t.Fatal("expected a diagnostic message on stderr")
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func assertSetEqual(t *testing.T, got, want []string) {
	t.Helper()
	g := append([]string(nil), got...)
	w := append([]string(nil), want...)
	sort.Strings(g)
	sort.Strings(w)
	if len(g) != len(w) {
		t.Fatalf("set mismatch: got=%v want=%v", g, w)
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("set mismatch: got=%v want=%v", g, w)
		}
	}
}
