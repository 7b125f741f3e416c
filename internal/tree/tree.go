// Package tree implements the lister's deferred, ordered tree model
// (spec.md §4.E): directories are expanded concurrently and recorded as
// nodes in a shared arena; once the worker pool joins, the arena is walked
// once, single-threaded, in pre-order to produce output.
//
// Every node is recorded in one arena slice, and a directory's children are
// stored as stable [ID] indices into it. Workers themselves still hold and
// pass *Node values: [Arena.NewChild] takes the parent as a *Node and
// returns the child as a *Node, and there is no ID-based append handle.
package tree

import "sync"

// ID addresses a [Node] in an [Arena]. The zero ID always identifies the
// arena's root.
type ID int32

// Root is the ID of the tree's root node.
const Root ID = 0

// Node is one entry in the tree: a name, whether it is a directory, and
// (for directories) the IDs of its children in the order the OS yielded
// them.
//
// Invariant (spec.md §3, invariant 5): Children is appended to by exactly
// one goroutine — the worker that popped this node's directory off the
// worklist — and is only read after the whole pool has joined.
type Node struct {
	Name     string
	IsDir    bool
	Children []ID
}

// Arena owns every Node created during one traversal. NewChild's appends
// of new node records are synchronized by mu; established Node values are never
// moved or copied after creation, so callers may retain a *Node across
// further arena growth and append to its Children field without taking mu
// (per the invariant above, only one goroutine ever does so for a given
// node).
type Arena struct {
	mu    sync.Mutex
	nodes []*Node
}

// NewArena creates an arena with a single root node named rootName.
func NewArena(rootName string) (*Arena, *Node) {
	root := &Node{Name: rootName, IsDir: true}
	a := &Arena{nodes: []*Node{root}}
	return a, root
}

// NewChild allocates a new node and appends its ID to parent.Children. It
// returns the new node so the caller (always the worker that owns parent)
// can keep expanding it — e.g. pushing it onto the worklist if it's a
// directory — without another arena lookup.
func (a *Arena) NewChild(parent *Node, name string, isDir bool) *Node {
	child := &Node{Name: name, IsDir: isDir}

	a.mu.Lock()
	a.nodes = append(a.nodes, child)
	id := ID(len(a.nodes) - 1)
	a.mu.Unlock()

	parent.Children = append(parent.Children, id)
	return child
}

// node resolves an ID to its Node. Only called during the post-join walk,
// after every NewChild call for this arena has already happened-before via
// the pool join, so no locking is needed here.
func (a *Arena) node(id ID) *Node { return a.nodes[id] }

// Walk traverses the arena depth-first, pre-order, starting at root,
// calling visit(path, node) for every node including root itself. path is
// the ancestor-joined "/"-separated path (spec.md §4.E).
//
// Walk must only be called after the worker pool that built the arena has
// joined (spec.md: "Printed occurs after full join").
func Walk(a *Arena, root *Node, rootPath string, visit func(path string, n *Node)) {
	visit(rootPath, root)
	for _, id := range root.Children {
		child := a.node(id)
		childPath := rootPath + "/" + child.Name
		Walk(a, child, childPath, visit)
	}
}
