package vfs

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func newTestMutator(seed int64) *Mutator {
	return NewMutator(rand.New(rand.NewSource(seed)), nil, DefaultFolderProb)
}

func TestDeleteRemovesExactlyOneChild(t *testing.T) {
	tree := Folder("root", Folder("A"), File("B"))
	withoutA := Folder("root", File("B"))
	withoutB := Folder("root", Folder("A"))

	seen := map[string]bool{}
	for seed := int64(0); seed < 50; seed++ {
		out := newTestMutator(seed).Delete(tree)
		switch {
		case out.Equal(withoutA):
			seen["A"] = true
		case out.Equal(withoutB):
			seen["B"] = true
		default:
			t.Fatalf("seed %d: unexpected tree with %d nodes", seed, out.Count())
		}
	}
	if !seen["A"] || !seen["B"] {
		t.Fatalf("expected both children to be picked across seeds, got %v", seen)
	}
}

func TestDeleteRemovesSubtree(t *testing.T) {
	tree := Folder("root", Folder("src", File("a.ts"), File("b.ts")))
	for seed := int64(0); seed < 20; seed++ {
		out := newTestMutator(seed).Delete(tree)
		if out.Count() != tree.Count()-1 && out.Count() != 1 {
			t.Fatalf("seed %d: unexpected count %d", seed, out.Count())
		}
	}
}

func TestDeleteNoCandidatesIsNoop(t *testing.T) {
	tree := Folder("root")
	out := newTestMutator(1).Delete(tree)
	if !out.Equal(tree) {
		t.Fatalf("expected unchanged tree")
	}
	if out == tree {
		t.Fatalf("expected a copy, got the input")
	}
}

func TestDeleteSkipsReservedParents(t *testing.T) {
	tree := Folder("root", Folder("node_modules", File("react.js")), File("main.ts"))
	for seed := int64(0); seed < 20; seed++ {
		out := newTestMutator(seed).Delete(tree)
		if out.Find("node_modules") != nil && out.Find("node_modules/react.js") == nil {
			t.Fatalf("seed %d: child of reserved folder was deleted", seed)
		}
		if out.Count() != tree.Count()-1 && out.Count() != tree.Count()-2 {
			t.Fatalf("seed %d: unexpected count %d", seed, out.Count())
		}
	}
}

func TestRenameVersionStrategy(t *testing.T) {
	tree := Folder("root", File("Button.tsx"))
	out := newTestMutator(3).RenameWith(tree, RenameVersion)
	if out.Find("ButtonV2.tsx") == nil {
		t.Fatalf("expected ButtonV2.tsx, got %q", out.Children[0].Name)
	}
	if tree.Find("Button.tsx") == nil {
		t.Fatalf("input tree was modified")
	}
}

func TestApplyRename(t *testing.T) {
	cases := []struct {
		name     string
		strategy RenameStrategy
		want     string
	}{
		{"Button.tsx", RenameVersion, "ButtonV2.tsx"},
		{"Button.tsx", RenameLegacy, "Button.legacy.tsx"},
		{"Button.tsx", RenameTest, "Button.test.tsx"},
		{"auth.ts", RenameUsePrefix, "Useauth.ts"},
		{"vite-env.d.ts", RenameUnderscore, "_vite-env.d.ts"},
		{"user.ts", RenameController, "userController.ts"},
		{"Makefile", RenameVersion, "MakefileV2"},
	}
	for _, tc := range cases {
		if got := ApplyRename(tc.name, tc.strategy); got != tc.want {
			t.Fatalf("ApplyRename(%q, %s) = %q, want %q", tc.name, tc.strategy, got, tc.want)
		}
	}
}

func TestApplyRenameAlwaysChangesName(t *testing.T) {
	for _, name := range []string{"Button.tsx", "Makefile", ".gitignore", "a.b.c", "x"} {
		for _, strategy := range RenameStrategies {
			if got := ApplyRename(name, strategy); got == name {
				t.Fatalf("ApplyRename(%q, %s) kept the name", name, strategy)
			}
		}
	}
}

func TestRenameDoesNotPrefixLoneFile(t *testing.T) {
	for _, strategy := range RenameStrategies {
		tree := Folder("root", File("Button.tsx"))
		out := newTestMutator(1).RenameWith(tree, strategy)
		want := ApplyRename("Button.tsx", strategy)
		if out.Children[0].Name != want {
			t.Fatalf("%s: expected %q, got %q", strategy, want, out.Children[0].Name)
		}
	}
}

func TestRenameNoFilesIsNoop(t *testing.T) {
	tree := Folder("root", Folder("empty"), Folder("other", Folder("deeper")))
	out := newTestMutator(9).Rename(tree)
	if !out.Equal(tree) {
		t.Fatalf("expected unchanged tree")
	}
}

func TestRenameKeepsSiblingsUnique(t *testing.T) {
	tree := Folder("root", File("a.ts"), File("aV2.ts"))
	out := newTestMutator(0).RenameWith(tree, RenameVersion)
	assertSiblingInvariant(t, out)
}

func TestAddKeepsSiblingInvariant(t *testing.T) {
	m := newTestMutator(42)
	tree := ReactProject()
	for i := 0; i < 300; i++ {
		tree = m.Add(tree)
		assertSiblingInvariant(t, tree)
	}
	if tree.Count() != ReactProject().Count()+300+countFolders(tree)-countFolders(ReactProject()) {
		t.Fatalf("unexpected node count %d", tree.Count())
	}
}

func TestAddPrepopulatesFolders(t *testing.T) {
	m := NewMutator(rand.New(rand.NewSource(5)), nil, 1)
	out := m.Add(Folder("root"))
	if len(out.Children) != 1 {
		t.Fatalf("expected one child, got %d", len(out.Children))
	}
	child := out.Children[0]
	if child.Kind != KindFolder {
		t.Fatalf("expected folder")
	}
	if len(child.Children) != 1 || child.Children[0].Name != DefaultFolderFile {
		t.Fatalf("expected folder to contain %s", DefaultFolderFile)
	}
}

func TestAddNoEligibleFolderIsNoop(t *testing.T) {
	m := NewMutator(rand.New(rand.NewSource(1)), []string{"root"}, DefaultFolderProb)
	tree := Folder("root", File("a.ts"))
	out := m.Add(tree)
	if !out.Equal(tree) {
		t.Fatalf("expected unchanged tree")
	}
}

func TestAddUsesContextualNames(t *testing.T) {
	m := NewMutator(rand.New(rand.NewSource(7)), nil, 0)
	tree := Folder("hooks")
	for i := 0; i < 20; i++ {
		tree = m.Add(tree)
	}
	for _, child := range tree.Children {
		base := strings.TrimLeft(child.Name, "Copy0123456789_")
		if !strings.HasPrefix(base, "use") || !strings.HasSuffix(base, ".ts") {
			t.Fatalf("expected hook-like name, got %q", child.Name)
		}
	}
}

func TestMutatorsNeverModifyInput(t *testing.T) {
	tree := ReactProject()
	snapshot := tree.Clone()
	m := newTestMutator(11)
	for i := 0; i < 100; i++ {
		m.Add(tree)
		m.Delete(tree)
		m.Rename(tree)
		if !tree.Equal(snapshot) {
			t.Fatalf("iteration %d: input tree modified", i)
		}
	}
}

func TestSameSeedSameResult(t *testing.T) {
	a := newTestMutator(77)
	b := newTestMutator(77)
	ta, tb := ReactProject(), ReactProject()
	for i := 0; i < 50; i++ {
		ta, _ = a.Random(ta)
		tb, _ = b.Random(tb)
	}
	if !ta.Equal(tb) {
		t.Fatalf("expected identical trees for identical seeds")
	}
}

func TestMalformedFolderChildren(t *testing.T) {
	tree := &Node{Name: "root", Kind: KindFolder, Children: []*Node{
		{Name: "broken", Kind: KindFolder},
		nil,
	}}
	m := newTestMutator(2)
	for i := 0; i < 20; i++ {
		out := m.Add(tree)
		out.Walk(func(_ string, _ int, n *Node) bool {
			if n.Kind == KindFolder && n.Children == nil {
				t.Fatalf("folder %q left with nil children", n.Name)
			}
			return true
		})
		_ = m.Delete(tree)
		_ = m.Rename(tree)
	}
}

func TestRowsHonorsExpanded(t *testing.T) {
	tree := Folder("root", Folder("src", File("a.ts")), File("b.ts"))
	if got := len(Rows(tree, false)); got != 2 {
		t.Fatalf("expected 2 visible rows, got %d", got)
	}
	tree = Toggle(tree, "src")
	rows := Rows(tree, false)
	if len(rows) != 3 {
		t.Fatalf("expected 3 visible rows, got %d", len(rows))
	}
	if rows[1].Path != "src/a.ts" || rows[1].Depth != 1 {
		t.Fatalf("unexpected row %+v", rows[1])
	}
}

func TestRenderTruncates(t *testing.T) {
	var buf bytes.Buffer
	tree := Folder("root", File("a-very-long-file-name.tsx"))
	if err := Render(&buf, tree, 10); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if len([]rune(line)) > 10 {
			t.Fatalf("line not truncated: %q", line)
		}
	}
}

func TestInitialFile(t *testing.T) {
	if got := InitialFile(ReactProject()); got != "src/App.tsx" {
		t.Fatalf("unexpected initial file %q", got)
	}
	if got := InitialFile(NodeProject()); got != "src/app.ts" {
		t.Fatalf("unexpected initial file %q", got)
	}
	if got := InitialFile(Folder("root", Folder("x", File("y.md")))); got != "x/y.md" {
		t.Fatalf("unexpected initial file %q", got)
	}
}

func assertSiblingInvariant(t *testing.T, tree *Node) {
	t.Helper()
	tree.Walk(func(path string, _ int, n *Node) bool {
		if n.Kind != KindFolder {
			if n.Children != nil {
				t.Fatalf("file %q has children", path)
			}
			return true
		}
		if !IsSorted(n.Children) {
			t.Fatalf("children of %q are not sorted", path)
		}
		names := map[string]struct{}{}
		for _, child := range n.Children {
			if _, ok := names[child.Name]; ok {
				t.Fatalf("duplicate sibling %q under %q", child.Name, path)
			}
			names[child.Name] = struct{}{}
		}
		return true
	})
}

func countFolders(tree *Node) int {
	count := 0
	tree.Walk(func(_ string, _ int, n *Node) bool {
		if n.Kind == KindFolder {
			count++
		}
		return true
	})
	return count
}
