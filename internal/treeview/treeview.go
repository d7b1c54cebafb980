// Package treeview renders the spatial index for inspection: the tree
// shape printed sideways plus the four standard traversal orders. It
// is wired to a debug key in game and usable from tests when a
// balancing question comes up.
package treeview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chivarun/internal/index"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	edgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const indentPerLevel = 6

// Fprint writes the tree shape sideways (root at the left, right
// subtree above) followed by the traversal orders.
func Fprint[V any](w io.Writer, t *index.Tree[V]) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("spatial index: %d nodes, height %d", t.Len(), t.Height())))

	if t.Len() == 0 {
		fmt.Fprintln(w, labelStyle.Render("  (empty)"))
		return
	}

	t.VisitShape(func(key index.Key, depth int) {
		indent := edgeStyle.Render(strings.Repeat(" ", depth*indentPerLevel))
		fmt.Fprintf(w, "%s%s\n", indent, keyStyle.Render(key.String()))
	})

	fmt.Fprintln(w)
	printOrder(w, "in-order   ", t.InOrder())
	printOrder(w, "pre-order  ", t.PreOrder())
	printOrder(w, "post-order ", t.PostOrder())
	printOrder(w, "level-order", t.LevelOrder())
}

// Sprint renders the same view into a string, one line per slice
// element, for overlaying on a live screen.
func Sprint[V any](t *index.Tree[V]) []string {
	var sb strings.Builder
	Fprint(&sb, t)
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	return lines
}

func printOrder(w io.Writer, label string, keys []index.Key) {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label), keyStyle.Render(strings.Join(parts, " ")))
}
