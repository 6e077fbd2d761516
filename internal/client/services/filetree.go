package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/codepad/internal/client/client"
	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/client/notify"
	"github.com/dmitrijs2005/codepad/internal/client/tree"
	"github.com/dmitrijs2005/codepad/internal/logging"
)

// FileTreeAPI is the subset of the API the file tree manager talks to.
type FileTreeAPI interface {
	client.FileAPI
	GetWorkspace(ctx context.Context, name string) (*models.Workspace, error)
}

// OpenResult describes what Open did. For files Contents holds the text
// fetched from the server; for folders Expanded holds the new flag.
type OpenResult struct {
	ID       string
	Name     string
	Path     string
	Folder   bool
	Expanded bool
	Contents string
}

// FileTreeManager keeps the in-memory tree of one workspace in sync with the
// server. Each operation resolves the node's current path, calls the server
// and touches the local tree only after the call succeeded. A failure is
// logged, reported once through the notifier and returned as *FetchError or
// *WriteError.
type FileTreeManager struct {
	api      FileTreeAPI
	log      logging.Logger
	notifier notify.Notifier

	mu        sync.Mutex
	workspace string
	tree      *tree.Tree
}

func NewFileTreeManager(api FileTreeAPI, log logging.Logger, n notify.Notifier) *FileTreeManager {
	if log == nil {
		log = logging.Discard()
	}
	if n == nil {
		n = notify.Discard
	}
	return &FileTreeManager{api: api, log: log, notifier: n, tree: tree.New()}
}

// Workspace returns the name of the last loaded workspace.
func (m *FileTreeManager) Workspace() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.workspace
}

// View runs fn with exclusive access to the tree. fn must not keep references
// to nodes after it returns.
func (m *FileTreeManager) View(fn func(t *tree.Tree)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.tree)
}

// Lines renders the tree for display, see tree.Tree.Lines.
func (m *FileTreeManager) Lines(all bool) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Lines(all)
}

// Lookup resolves a workspace-relative path to a node ID.
func (m *FileTreeManager) Lookup(p string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.tree.FindByPath(p)
	if !ok {
		return "", false
	}
	return n.ID, true
}

// Path returns the current workspace-relative path of id.
func (m *FileTreeManager) Path(id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Path(id)
}

// Load replaces the tree with the server's listing of ws. On failure the tree
// is left empty.
func (m *FileTreeManager) Load(ctx context.Context, ws string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workspace = ws
	m.tree.Reset()

	w, err := m.api.GetWorkspace(ctx, ws)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			err = fmt.Errorf("workspace %q not found: %w", ws, err)
		}
		return m.fetchFailed(ctx, "load", "", err)
	}

	t, err := tree.FromEntries(w.Files)
	if err != nil {
		return m.fetchFailed(ctx, "load", "", err)
	}
	m.tree = t
	m.log.Info(ctx, "workspace loaded", "workspace", ws, "nodes", t.Len())
	return nil
}

// CreateFile creates an empty file name inside the folder at dir ("" is the
// workspace root) and returns the new node's ID.
func (m *FileTreeManager) CreateFile(ctx context.Context, dir, name string) (string, error) {
	return m.create(ctx, dir, name, tree.KindFile)
}

// CreateFolder creates folder name inside the folder at dir.
func (m *FileTreeManager) CreateFolder(ctx context.Context, dir, name string) (string, error) {
	return m.create(ctx, dir, name, tree.KindFolder)
}

func (m *FileTreeManager) create(ctx context.Context, dir, name string, kind tree.Kind) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	op := "create " + kind.String()
	target := tree.JoinPath(dir, name)

	parent, ok := m.tree.FindByPath(dir)
	if !ok {
		return "", m.writeFailed(ctx, op, target, fmt.Errorf("%w: %q", tree.ErrNodeNotFound, dir))
	}
	if err := m.tree.CheckAdd(parent.ID, name); err != nil {
		return "", m.writeFailed(ctx, op, target, err)
	}

	var err error
	if kind == tree.KindFolder {
		err = m.api.CreateFolder(ctx, m.workspace, target)
	} else {
		err = m.api.CreateFile(ctx, m.workspace, target)
	}
	if err != nil {
		return "", m.writeFailed(ctx, op, target, err)
	}

	n, err := m.tree.Add(parent.ID, name, kind)
	if err != nil {
		return "", m.writeFailed(ctx, op, target, err)
	}
	if kind == tree.KindFile {
		_ = m.tree.SetContents(n.ID, "")
	}
	m.log.Debug(ctx, "item created", "workspace", m.workspace, "path", target)
	return n.ID, nil
}

// Delete removes the node and, for folders, everything below it.
func (m *FileTreeManager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.nodePath(id)
	if err != nil {
		return m.writeFailed(ctx, "delete", "", err)
	}
	if err := m.api.DeleteItem(ctx, m.workspace, p); err != nil {
		return m.writeFailed(ctx, "delete", p, err)
	}
	_ = m.tree.Remove(id)
	m.log.Debug(ctx, "item deleted", "workspace", m.workspace, "path", p)
	return nil
}

// Rename gives the node a new name in the same folder.
func (m *FileTreeManager) Rename(ctx context.Context, id, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.nodePath(id)
	if err != nil {
		return m.writeFailed(ctx, "rename", "", err)
	}
	if err := m.tree.CheckRename(id, newName); err != nil {
		return m.writeFailed(ctx, "rename", p, err)
	}

	n, _ := m.tree.Find(id)
	parentPath, _ := m.tree.Path(n.Parent().ID)
	newPath := tree.JoinPath(parentPath, newName)

	if err := m.api.RenameItem(ctx, m.workspace, p, newPath); err != nil {
		return m.writeFailed(ctx, "rename", p, err)
	}
	_ = m.tree.Rename(id, newName)
	m.log.Debug(ctx, "item renamed", "workspace", m.workspace, "path", p, "new_path", newPath)
	return nil
}

// Copy duplicates the node into the folder at destination, keeping its name,
// and returns the ID of the copy.
func (m *FileTreeManager) Copy(ctx context.Context, id, destination string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.nodePath(id)
	if err != nil {
		return "", m.writeFailed(ctx, "copy", "", err)
	}
	dest, ok := m.tree.FindByPath(destination)
	if !ok {
		return "", m.writeFailed(ctx, "copy", p, fmt.Errorf("%w: %q", tree.ErrNodeNotFound, destination))
	}
	if err := m.tree.CheckClone(id, dest.ID); err != nil {
		return "", m.writeFailed(ctx, "copy", p, err)
	}

	n, _ := m.tree.Find(id)
	dst := tree.JoinPath(destination, n.Name)
	if err := m.api.CopyItem(ctx, m.workspace, p, dst); err != nil {
		return "", m.writeFailed(ctx, "copy", p, err)
	}

	c, err := m.tree.Clone(id, dest.ID)
	if err != nil {
		return "", m.writeFailed(ctx, "copy", p, err)
	}
	m.log.Debug(ctx, "item copied", "workspace", m.workspace, "path", p, "dst", dst)
	return c.ID, nil
}

// Open fetches a file's contents from the server, or toggles a folder's
// expanded flag without any network call. The cached contents of a file only
// change on Save.
func (m *FileTreeManager) Open(ctx context.Context, id string) (*OpenResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.nodePath(id)
	if err != nil {
		return nil, m.fetchFailed(ctx, "open", "", err)
	}
	n, _ := m.tree.Find(id)
	res := &OpenResult{ID: id, Name: n.Name, Path: p, Folder: n.IsFolder()}

	if n.IsFolder() {
		res.Expanded, _ = m.tree.ToggleExpanded(id)
		return res, nil
	}

	contents, err := m.api.ReadFile(ctx, m.workspace, p)
	if err != nil {
		return nil, m.fetchFailed(ctx, "open", p, err)
	}
	res.Contents = contents
	return res, nil
}

// Save writes contents to the file id on the server and then caches them.
func (m *FileTreeManager) Save(ctx context.Context, id, contents string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.nodePath(id)
	if err != nil {
		return m.writeFailed(ctx, "save", "", err)
	}
	n, _ := m.tree.Find(id)
	if n.IsFolder() {
		return m.writeFailed(ctx, "save", p, tree.ErrNotFile)
	}
	if err := m.api.WriteFile(ctx, m.workspace, p, contents); err != nil {
		return m.writeFailed(ctx, "save", p, err)
	}
	_ = m.tree.SetContents(id, contents)
	m.log.Debug(ctx, "file saved", "workspace", m.workspace, "path", p, "bytes", len(contents))
	return nil
}

// nodePath recomputes the path of a non-root node from the current tree.
func (m *FileTreeManager) nodePath(id string) (string, error) {
	if id == m.tree.Root().ID {
		return "", tree.ErrRoot
	}
	return m.tree.Path(id)
}

func (m *FileTreeManager) fetchFailed(ctx context.Context, op, p string, err error) error {
	m.log.Error(ctx, op+" failed", "workspace", m.workspace, "path", p, "error", err)
	fe := &FetchError{Op: op, Workspace: m.workspace, Path: p, Err: err}
	notify.Error(ctx, m.notifier, "%s", userMessage(fe))
	return fe
}

func (m *FileTreeManager) writeFailed(ctx context.Context, op, p string, err error) error {
	m.log.Error(ctx, op+" failed", "workspace", m.workspace, "path", p, "error", err)
	we := &WriteError{Op: op, Workspace: m.workspace, Path: p, Err: err}
	notify.Error(ctx, m.notifier, "%s", userMessage(we))
	return we
}

// userMessage turns an error into a short line for the notifier, preferring
// the server's own explanation.
func userMessage(err error) string {
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Detail != "" {
		return apiErr.Detail
	}
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "please sign in again"
	case errors.Is(err, client.ErrUnavailable):
		return "server is unavailable"
	}
	return err.Error()
}
