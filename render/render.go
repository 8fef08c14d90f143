// Package render draws trees for the terminal with lipgloss.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/inspect"
	"github.com/rskv-p/treekit/pkg/x_log"
	"github.com/rskv-p/treekit/tree"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	pipe       = "│   "
	gap        = "    "
)

// Renderer holds the styles used for one output.
type Renderer struct {
	Color bool

	root     lipgloss.Style
	internal lipgloss.Style
	leaf     lipgloss.Style
	guide    lipgloss.Style
	label    lipgloss.Style
	box      lipgloss.Style
}

// New creates a renderer. With color off output is plain text.
func New(color bool) *Renderer {
	return &Renderer{
		Color:    color,
		root:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(x_log.ColorBlueBase)),
		internal: lipgloss.NewStyle().Foreground(lipgloss.Color(x_log.ColorBlue40)),
		leaf:     lipgloss.NewStyle().Foreground(lipgloss.Color(x_log.ColorTeal40)),
		guide:    lipgloss.NewStyle().Foreground(lipgloss.Color(x_log.ColorGray60)),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color(x_log.ColorOrange40)),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(x_log.ColorGray60)).
			Padding(0, 1),
	}
}

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) node(text string, depth int, leaf bool) string {
	switch {
	case depth == 0:
		return r.paint(r.root, text)
	case leaf:
		return r.paint(r.leaf, text)
	default:
		return r.paint(r.internal, text)
	}
}

//---------------------
// General trees
//---------------------

// Tree draws t with branch guides, one node per line. Absent child
// slots are skipped. A nil tree renders as "".
func Tree[T any](r *Renderer, t *tree.Node[T]) string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	writeTree(r, &b, t, "", "", 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func writeTree[T any](r *Renderer, b *strings.Builder, t *tree.Node[T], lead, prefix string, depth int) {
	b.WriteString(r.paint(r.guide, lead))
	b.WriteString(r.node(fmt.Sprint(t.Value), depth, t.IsLeaf()))
	b.WriteByte('\n')

	var kids []*tree.Node[T]
	for _, c := range t.Children {
		if c != nil {
			kids = append(kids, c)
		}
	}
	for i, c := range kids {
		if i == len(kids)-1 {
			writeTree(r, b, c, prefix+branchLast, prefix+gap, depth+1)
		} else {
			writeTree(r, b, c, prefix+branchMid, prefix+pipe, depth+1)
		}
	}
}

//---------------------
// Binary trees
//---------------------

// Binary draws t like Tree, tagging each child "L" or "R".
func Binary[T any](r *Renderer, t *bintree.Node[T]) string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	writeBinary(r, &b, t, "", "", "", 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func writeBinary[T any](r *Renderer, b *strings.Builder, t *bintree.Node[T], lead, prefix, side string, depth int) {
	b.WriteString(r.paint(r.guide, lead))
	if side != "" {
		b.WriteString(r.paint(r.label, side) + " ")
	}
	b.WriteString(r.node(fmt.Sprint(t.Value), depth, t.IsLeaf()))
	b.WriteByte('\n')

	switch {
	case t.Left != nil && t.Right != nil:
		writeBinary(r, b, t.Left, prefix+branchMid, prefix+pipe, "L", depth+1)
		writeBinary(r, b, t.Right, prefix+branchLast, prefix+gap, "R", depth+1)
	case t.Left != nil:
		writeBinary(r, b, t.Left, prefix+branchLast, prefix+gap, "L", depth+1)
	case t.Right != nil:
		writeBinary(r, b, t.Right, prefix+branchLast, prefix+gap, "R", depth+1)
	}
}

//---------------------
// Summaries
//---------------------

// Stats renders s as an aligned key/value block, boxed when colored.
func (r *Renderer) Stats(s inspect.Stats) string {
	rows := [][2]string{
		{"kind", s.Kind},
		{"height", fmt.Sprint(s.Height)},
		{"nodes", fmt.Sprint(s.Count)},
		{"leaves", fmt.Sprint(s.Leaves)},
		{"internal", fmt.Sprint(s.Internal)},
		{"arity", fmt.Sprint(s.Arity)},
		{"widths", fmt.Sprint(s.Widths)},
	}
	if s.IsBST != nil {
		rows = append(rows, [2]string{"bst", fmt.Sprint(*s.IsBST)})
	}

	keys := make([]string, len(rows))
	vals := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = r.paint(r.label, row[0])
		vals[i] = row[1]
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(2).Render(strings.Join(keys, "\n")),
		strings.Join(vals, "\n"),
	)
	if !r.Color {
		return body
	}
	return r.box.Render(body)
}

// Values renders a traversal result as "a b c".
func Values[T any](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
