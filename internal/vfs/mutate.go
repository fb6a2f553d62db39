package vfs

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultFolderProb is the chance that Add creates a folder instead of a file.
const DefaultFolderProb = 0.2

// DefaultReserved lists folder names never used as mutation targets.
var DefaultReserved = []string{"node_modules", "dist", "build", ".git"}

// Op names one structural change.
type Op int

const (
	OpAdd Op = iota
	OpDelete
	OpRename
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	case OpRename:
		return "rename"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// ParseOp maps a name to an Op.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return OpAdd, nil
	case "delete", "del", "rm":
		return OpDelete, nil
	case "rename", "mv":
		return OpRename, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", s)
	}
}

// Mutator applies one random structural change per call. Every operation
// deep-copies its input first and never modifies it.
type Mutator struct {
	rnd        *rand.Rand
	reserved   map[string]struct{}
	folderProb float64
}

// NewMutator builds a Mutator. A nil rnd is seeded with the current time; a
// nil reserved list falls back to DefaultReserved.
func NewMutator(rnd *rand.Rand, reserved []string, folderProb float64) *Mutator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if reserved == nil {
		reserved = DefaultReserved
	}
	set := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		set[name] = struct{}{}
	}
	if folderProb < 0 {
		folderProb = 0
	}
	if folderProb > 1 {
		folderProb = 1
	}
	return &Mutator{rnd: rnd, reserved: set, folderProb: folderProb}
}

// Mutate dispatches op.
func (m *Mutator) Mutate(op Op, tree *Node) *Node {
	switch op {
	case OpAdd:
		return m.Add(tree)
	case OpDelete:
		return m.Delete(tree)
	case OpRename:
		return m.Rename(tree)
	default:
		return prepare(tree)
	}
}

// Random applies one uniformly chosen operation and reports which.
func (m *Mutator) Random(tree *Node) (*Node, Op) {
	op := Op(m.rnd.Intn(3))
	return m.Mutate(op, tree), op
}

func (m *Mutator) isReserved(name string) bool {
	_, ok := m.reserved[name]
	return ok
}

func prepare(tree *Node) *Node {
	out := tree.Clone()
	out.Normalize()
	return out
}

// Add inserts one generated file or folder into a random eligible folder.
func (m *Mutator) Add(tree *Node) *Node {
	out := prepare(tree)
	if out == nil {
		return nil
	}
	var folders []*Node
	out.Walk(func(_ string, _ int, n *Node) bool {
		if n.Kind == KindFolder && !m.isReserved(n.Name) {
			folders = append(folders, n)
		}
		return true
	})
	if len(folders) == 0 {
		return out
	}

	target := folders[m.rnd.Intn(len(folders))]
	if m.rnd.Float64() < m.folderProb {
		name := uniqueFolderName(target, folderNameFor(m.rnd))
		child := Folder(name, File(DefaultFolderFile))
		child.Expanded = true
		target.Children = append(target.Children, child)
	} else {
		name := uniqueFileName(target, fileNameFor(m.rnd, target.Name))
		target.Children = append(target.Children, File(name))
	}
	SortChildren(target.Children)
	return out
}

type slot struct {
	parent *Node
	index  int
}

// Delete removes one random entry, with its subtree, from a non-reserved parent.
func (m *Mutator) Delete(tree *Node) *Node {
	out := prepare(tree)
	if out == nil {
		return nil
	}
	var candidates []slot
	out.Walk(func(_ string, _ int, n *Node) bool {
		if m.isReserved(n.Name) {
			return true
		}
		for i := range n.Children {
			candidates = append(candidates, slot{parent: n, index: i})
		}
		return true
	})
	if len(candidates) == 0 {
		return out
	}
	target := candidates[m.rnd.Intn(len(candidates))]
	children := target.parent.Children
	target.parent.Children = append(children[:target.index:target.index], children[target.index+1:]...)
	return out
}

// Rename rewrites the name of one random file with a random strategy.
func (m *Mutator) Rename(tree *Node) *Node {
	out, target, parent := m.pickFile(tree)
	if target == nil {
		return out
	}
	strategy := RenameStrategies[m.rnd.Intn(len(RenameStrategies))]
	rename(parent, target, strategy)
	return out
}

// RenameWith renames one random file using a fixed strategy.
func (m *Mutator) RenameWith(tree *Node, strategy RenameStrategy) *Node {
	out, target, parent := m.pickFile(tree)
	if target == nil {
		return out
	}
	rename(parent, target, strategy)
	return out
}

func (m *Mutator) pickFile(tree *Node) (out, target, parent *Node) {
	out = prepare(tree)
	if out == nil {
		return nil, nil, nil
	}
	var candidates []slot
	out.Walk(func(_ string, _ int, n *Node) bool {
		for i, child := range n.Children {
			if child.Kind == KindFile {
				candidates = append(candidates, slot{parent: n, index: i})
			}
		}
		return true
	})
	if len(candidates) == 0 {
		return out, nil, nil
	}
	s := candidates[m.rnd.Intn(len(candidates))]
	return out, s.parent.Children[s.index], s.parent
}

func rename(parent, target *Node, strategy RenameStrategy) {
	target.Name = uniqueFileName(parent, ApplyRename(target.Name, strategy))
	SortChildren(parent.Children)
}
