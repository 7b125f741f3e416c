package tree_test

import (
	"sort"
	"testing"

	"github.com/fsnitro/pwalk/internal/tree"
)

func Test_Walk_Visits_Root_Then_Children_In_Append_Order(t *testing.T) {
	t.Parallel()

	arena, root := tree.NewArena("r")
	b := arena.NewChild(root, "b", true)
	arena.NewChild(root, "a", false)
	arena.NewChild(b, "c", false)

	var visited []string
	tree.Walk(arena, root, "r", func(path string, n *tree.Node) {
		visited = append(visited, path)
	})

	want := []string{"r", "r/b", "r/b/c", "r/a"}
	if len(visited) != len(want) {
		t.Fatalf("got %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("got %v, want %v", visited, want)
		}
	}
}

func Test_Walk_Distinguishes_Files_From_Directories(t *testing.T) {
	t.Parallel()

	arena, root := tree.NewArena("r")
	arena.NewChild(root, "dir", true)
	arena.NewChild(root, "file", false)

	var dirs, files []string
	tree.Walk(arena, root, "r", func(path string, n *tree.Node) {
		if n.IsDir {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	})

	sort.Strings(dirs)
	sort.Strings(files)

	if len(dirs) != 2 { // root + "dir"
		t.Fatalf("dirs = %v, want 2 entries (root and dir)", dirs)
	}
	if len(files) != 1 || files[0] != "r/file" {
		t.Fatalf("files = %v, want [r/file]", files)
	}
}

func Test_NewChild_Appends_To_Parent_Children_In_Call_Order(t *testing.T) {
	t.Parallel()

	arena, root := tree.NewArena("r")
	arena.NewChild(root, "first", false)
	arena.NewChild(root, "second", false)
	arena.NewChild(root, "third", false)

	if len(root.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(root.Children))
	}

	var order []string
	tree.Walk(arena, root, "r", func(path string, n *tree.Node) {
		if path != "r" {
			order = append(order, n.Name)
		}
	})
	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("children order = %v, want %v", order, want)
		}
	}
}
