package tree

// Snapshot is a plain, ID-free copy of a subtree for comparisons.
type Snapshot struct {
	Name     string
	Folder   bool
	Children []Snapshot
}

// Snapshot copies the subtree rooted at n (the whole tree when n is nil).
func (t *Tree) Snapshot(n *Node) Snapshot {
	if n == nil {
		n = t.root
	}
	s := Snapshot{Name: n.Name, Folder: n.IsFolder()}
	for _, c := range n.children {
		s.Children = append(s.Children, t.Snapshot(c))
	}
	return s
}
