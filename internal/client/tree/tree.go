// Package tree is the in-memory model of a workspace's files and folders.
//
// Every node gets a stable opaque ID when it enters the tree. Paths are not
// stored; Path walks parent links up to the root each time it is called, so
// renaming a folder never invalidates the IDs of its descendants.
//
// A Tree is not safe for concurrent use.
package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/google/uuid"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrNotFolder    = errors.New("not a folder")
	ErrNotFile      = errors.New("not a file")
	ErrRoot         = errors.New("operation not allowed on the root")
	ErrCycle        = errors.New("cannot copy a folder into itself")
)

type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return models.EntryFolder
	}
	return models.EntryFile
}

// Node is a file or folder. Fields are read-only for callers; use Tree
// methods to change them.
type Node struct {
	ID   string
	Name string
	Kind Kind

	// Contents caches the text of a file once it was saved through the tree.
	Contents string
	Loaded   bool

	// Expanded is a display-only flag on folders.
	Expanded bool

	parent   *Node
	children []*Node
}

func (n *Node) IsFolder() bool { return n.Kind == KindFolder }

// Parent returns nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list in display order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) child(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Tree owns the nodes of one workspace under an unnamed root folder.
type Tree struct {
	root  *Node
	index map[string]*Node
}

// New returns an empty tree.
func New() *Tree {
	t := &Tree{}
	t.Reset()
	return t
}

// Reset drops every node.
func (t *Tree) Reset() {
	t.root = &Node{ID: uuid.NewString(), Kind: KindFolder, Expanded: true}
	t.index = map[string]*Node{t.root.ID: t.root}
}

func (t *Tree) Root() *Node { return t.root }

// Len is the number of nodes, not counting the root.
func (t *Tree) Len() int { return len(t.index) - 1 }

// FromEntries builds a tree from the nested server listing. Duplicate names
// within one folder are rejected.
func FromEntries(entries []models.FileEntry) (*Tree, error) {
	t := New()
	if err := t.addEntries(t.root, entries); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) addEntries(parent *Node, entries []models.FileEntry) error {
	for _, e := range entries {
		kind := KindFile
		if e.IsFolder() {
			kind = KindFolder
		}
		n, err := t.insert(parent, e.Name, kind)
		if err != nil {
			return fmt.Errorf("%s: %w", joinPath(t.path(parent), e.Name), err)
		}
		if kind == KindFolder {
			if err := t.addEntries(n, e.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find returns the node with the given ID.
func (t *Tree) Find(id string) (*Node, bool) {
	n, ok := t.index[id]
	return n, ok
}

// FindByPath resolves a workspace-relative path; "" and "/" are the root.
func (t *Tree) FindByPath(p string) (*Node, bool) {
	n := t.root
	for _, part := range splitPath(p) {
		if !n.IsFolder() {
			return nil, false
		}
		if n = n.child(part); n == nil {
			return nil, false
		}
	}
	return n, true
}

// Path computes the workspace-relative path of a node by walking to the
// root. The root's path is "".
func (t *Tree) Path(id string) (string, error) {
	n, ok := t.index[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return t.path(n), nil
}

func (t *Tree) path(n *Node) string {
	var parts []string
	for ; n != nil && n != t.root; n = n.parent {
		parts = append(parts, n.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Children lists the children of a folder.
func (t *Tree) Children(id string) ([]*Node, error) {
	n, err := t.folder(id)
	if err != nil {
		return nil, err
	}
	return n.Children(), nil
}

// CheckAdd reports whether Add(parentID, name, ...) would succeed.
func (t *Tree) CheckAdd(parentID, name string) error {
	parent, err := t.folder(parentID)
	if err != nil {
		return err
	}
	return checkChildName(parent, name, nil)
}

// Add appends a new node under the folder parentID.
func (t *Tree) Add(parentID, name string, kind Kind) (*Node, error) {
	parent, err := t.folder(parentID)
	if err != nil {
		return nil, err
	}
	return t.insert(parent, name, kind)
}

func checkChildName(parent *Node, name string, self *Node) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if other := parent.child(name); other != nil && other != self {
		return fmt.Errorf("%w: %q", common.ErrNameConflict, name)
	}
	return nil
}

func (t *Tree) insert(parent *Node, name string, kind Kind) (*Node, error) {
	if err := checkChildName(parent, name, nil); err != nil {
		return nil, err
	}
	n := &Node{ID: uuid.NewString(), Name: name, Kind: kind, parent: parent}
	parent.children = append(parent.children, n)
	t.index[n.ID] = n
	return n, nil
}

// Remove deletes a node and, for folders, its whole subtree.
func (t *Tree) Remove(id string) error {
	n, err := t.nonRoot(id)
	if err != nil {
		return err
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	t.Walk(n, func(d *Node, _ int) bool {
		delete(t.index, d.ID)
		return true
	})
	n.parent = nil
	return nil
}

// CheckRename reports whether Rename(id, newName) would succeed.
func (t *Tree) CheckRename(id, newName string) error {
	n, err := t.nonRoot(id)
	if err != nil {
		return err
	}
	return checkChildName(n.parent, newName, n)
}

// Rename changes a node's name in place. Its ID and its siblings are
// untouched.
func (t *Tree) Rename(id, newName string) error {
	if err := t.CheckRename(id, newName); err != nil {
		return err
	}
	t.index[id].Name = newName
	return nil
}

// CheckClone reports whether Clone(id, destID) would succeed.
func (t *Tree) CheckClone(id, destID string) error {
	src, err := t.nonRoot(id)
	if err != nil {
		return err
	}
	dest, err := t.folder(destID)
	if err != nil {
		return err
	}
	for p := dest; p != nil; p = p.parent {
		if p == src {
			return ErrCycle
		}
	}
	return checkChildName(dest, src.Name, nil)
}

// Clone deep-copies the node id under the folder destID, keeping its name.
// Copies get fresh IDs.
func (t *Tree) Clone(id, destID string) (*Node, error) {
	if err := t.CheckClone(id, destID); err != nil {
		return nil, err
	}
	return t.copyInto(t.index[destID], t.index[id]), nil
}

func (t *Tree) copyInto(parent, src *Node) *Node {
	n := &Node{
		ID:       uuid.NewString(),
		Name:     src.Name,
		Kind:     src.Kind,
		Contents: src.Contents,
		Loaded:   src.Loaded,
		parent:   parent,
	}
	parent.children = append(parent.children, n)
	t.index[n.ID] = n
	for _, c := range src.children {
		t.copyInto(n, c)
	}
	return n
}

// SetContents caches the contents of a file.
func (t *Tree) SetContents(id, contents string) error {
	n, ok := t.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if n.IsFolder() {
		return ErrNotFile
	}
	n.Contents = contents
	n.Loaded = true
	return nil
}

// ToggleExpanded flips the display flag of a folder and returns the new value.
func (t *Tree) ToggleExpanded(id string) (bool, error) {
	n, err := t.folder(id)
	if err != nil {
		return false, err
	}
	n.Expanded = !n.Expanded
	return n.Expanded, nil
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the children of that node.
func (t *Tree) Walk(n *Node, fn func(n *Node, depth int) bool) {
	if n == nil {
		n = t.root
	}
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	visit(n, 0)
}

func (t *Tree) folder(id string) (*Node, error) {
	n, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if !n.IsFolder() {
		return nil, fmt.Errorf("%w: %s", ErrNotFolder, n.Name)
	}
	return n, nil
}

func (t *Tree) nonRoot(id string) (*Node, error) {
	n, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if n == t.root {
		return nil, ErrRoot
	}
	return n, nil
}

// ValidateName rejects names that cannot be a single path segment.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return common.ErrEmptyName
	case strings.Contains(name, "/"), name == ".", name == "..":
		return fmt.Errorf("%w: %q", common.ErrInvalidName, name)
	}
	return nil
}

func splitPath(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			parts = append(parts, s)
		}
	}
	return parts
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// JoinPath joins a folder path and a child name the way Path renders them.
func JoinPath(dir, name string) string {
	return joinPath(strings.Trim(dir, "/"), name)
}
