// Package vfs models the simulated project tree shown in the explorer and
// the random structural changes applied to it.
package vfs

import (
	"sort"
	"strings"
)

// Kind distinguishes files from folders.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// Node is one entry in the project tree. Children is only meaningful for folders.
type Node struct {
	Name     string
	Kind     Kind
	Children []*Node
	Expanded bool
}

// File returns a new file node.
func File(name string) *Node {
	return &Node{Name: name, Kind: KindFile}
}

// Folder returns a new folder node holding the given children.
func Folder(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Name: name, Kind: KindFolder, Children: children}
}

// IsFolder reports whether n is a folder.
func (n *Node) IsFolder() bool {
	return n != nil && n.Kind == KindFolder
}

// Clone returns a deep copy that shares nothing with n. Folders with nil
// children come back with an empty slice and files never carry children.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Name: n.Name, Kind: n.Kind, Expanded: n.Expanded}
	if n.Kind != KindFolder {
		return out
	}
	out.Children = make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		out.Children = append(out.Children, child.Clone())
	}
	return out
}

// Equal reports structural equality, ignoring the Expanded flag.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Name != other.Name || n.Kind != other.Kind {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the tree, n included.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, child := range n.Children {
		count += child.Count()
	}
	return count
}

// Files returns every file node in pre-order.
func (n *Node) Files() []*Node {
	var out []*Node
	n.Walk(func(_ string, _ int, node *Node) bool {
		if node.Kind == KindFile {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Walk visits n and its descendants in pre-order. Paths are slash separated
// and start at n's children; n itself is visited with an empty path. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(path string, depth int, node *Node) bool) {
	if n == nil {
		return
	}
	walk(n, "", 0, fn)
}

func walk(n *Node, path string, depth int, fn func(string, int, *Node) bool) {
	if !fn(path, depth, n) {
		return
	}
	for _, child := range n.Children {
		childPath := child.Name
		if path != "" {
			childPath = path + "/" + child.Name
		}
		walk(child, childPath, depth+1, fn)
	}
}

// Find resolves a slash separated path below n. The empty path is n itself.
func (n *Node) Find(path string) *Node {
	if n == nil {
		return nil
	}
	if path == "" {
		return n
	}
	cur := n
	for _, part := range strings.Split(path, "/") {
		var next *Node
		for _, child := range cur.Children {
			if child.Name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Normalize rewrites nil folder children as empty slices and strips children
// from files, in place.
func (n *Node) Normalize() {
	if n == nil {
		return
	}
	if n.Kind != KindFolder {
		n.Children = nil
		return
	}
	if n.Children == nil {
		n.Children = []*Node{}
	}
	kept := n.Children[:0]
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		child.Normalize()
		kept = append(kept, child)
	}
	n.Children = kept
}

// SortChildren orders siblings folders first, then by name.
func SortChildren(children []*Node) {
	sort.SliceStable(children, func(i, j int) bool {
		return lessSibling(children[i], children[j])
	})
}

// IsSorted reports whether children follow the sibling ordering.
func IsSorted(children []*Node) bool {
	return sort.SliceIsSorted(children, func(i, j int) bool {
		return lessSibling(children[i], children[j])
	})
}

func lessSibling(a, b *Node) bool {
	if a.Kind != b.Kind {
		return a.Kind == KindFolder
	}
	la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if la != lb {
		return la < lb
	}
	return a.Name < b.Name
}

func hasChild(parent *Node, name string) bool {
	for _, child := range parent.Children {
		if child.Name == name {
			return true
		}
	}
	return false
}

// Toggle returns a copy of root with the folder at path expanded or collapsed.
func Toggle(root *Node, path string) *Node {
	out := root.Clone()
	if target := out.Find(path); target != nil && target.Kind == KindFolder {
		target.Expanded = !target.Expanded
	}
	return out
}
