package tree

import "strings"

// Lines renders the tree one node per line, indented two spaces per level.
// Folders get a trailing "/"; collapsed folders hide their children unless
// all is set.
func (t *Tree) Lines(all bool) []string {
	var out []string
	t.Walk(nil, func(n *Node, depth int) bool {
		if n == t.root {
			return true
		}
		name := n.Name
		if n.IsFolder() {
			name += "/"
		}
		out = append(out, strings.Repeat("  ", depth-1)+name)
		return !n.IsFolder() || all || n.Expanded
	})
	return out
}
