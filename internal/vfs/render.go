package vfs

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Row is one visible line of the explorer.
type Row struct {
	Path  string
	Depth int
	Node  *Node
}

// Rows flattens the tree below root into explorer rows. Collapsed folders
// hide their children unless all is set. The root itself is not included.
func Rows(root *Node, all bool) []Row {
	var rows []Row
	root.Walk(func(path string, depth int, n *Node) bool {
		if n == root {
			return true
		}
		rows = append(rows, Row{Path: path, Depth: depth - 1, Node: n})
		return all || n.Kind != KindFolder || n.Expanded
	})
	return rows
}

// Label renders the row the way the explorer shows it.
func (r Row) Label() string {
	indent := strings.Repeat("  ", r.Depth)
	if r.Node.Kind == KindFolder {
		marker := "▸"
		if r.Node.Expanded {
			marker = "▾"
		}
		return indent + marker + " " + r.Node.Name + "/"
	}
	return indent + "  " + r.Node.Name
}

// Render prints the whole tree, truncating lines to width when width > 0.
func Render(w io.Writer, root *Node, width int) error {
	if root == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, fit(root.Name+"/", width)); err != nil {
		return err
	}
	for _, row := range Rows(root, true) {
		line := strings.Repeat("  ", row.Depth+1) + row.Node.Name
		if row.Node.Kind == KindFolder {
			line += "/"
		}
		if _, err := fmt.Fprintln(w, fit(line, width)); err != nil {
			return err
		}
	}
	return nil
}

func fit(line string, width int) string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, "…")
}
