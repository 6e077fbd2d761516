package state

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/dmitrijs2005/codepad/internal/client/editor"
	"github.com/dmitrijs2005/codepad/internal/client/services"
	"github.com/dmitrijs2005/codepad/internal/client/tree"
)

// ErrNoSuchPath is returned for paths that are not in the loaded tree.
var ErrNoSuchPath = errors.New("no such file or folder")

// Workbench is one open workspace: its file tree and the editor panel. Tabs
// are keyed by node ID so they follow renames.
type Workbench struct {
	Files  *services.FileTreeManager
	Editor *editor.Panel
}

func (w *Workbench) resolve(p string) (string, error) {
	id, ok := w.Files.Lookup(p)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoSuchPath, p)
	}
	return id, nil
}

// Open opens the file at p in a tab, or toggles the folder at p. An already
// open file just becomes the active tab again without a refetch.
func (w *Workbench) Open(ctx context.Context, p string) (*services.OpenResult, error) {
	id, err := w.resolve(p)
	if err != nil {
		return nil, err
	}
	for i, t := range w.Editor.Tabs() {
		if t.Key == id {
			return &services.OpenResult{ID: id, Name: t.Filename, Path: p, Contents: t.Content}, w.Editor.Activate(i)
		}
	}
	res, err := w.Files.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	if !res.Folder {
		w.Editor.Open(res.ID, res.Name, res.Contents)
	}
	return res, nil
}

// Save writes the active tab back to its file.
func (w *Workbench) Save(ctx context.Context) (string, error) {
	t, ok := w.Editor.Active()
	if !ok {
		return "", editor.ErrNoActiveTab
	}
	if t.Key == editor.ScratchName {
		return "", fmt.Errorf("%s is not backed by a file", editor.ScratchName)
	}
	if err := w.Files.Save(ctx, t.Key, t.Content); err != nil {
		return "", err
	}
	return w.Files.Path(t.Key)
}

// Delete removes the item at p and closes the tabs of every file below it.
func (w *Workbench) Delete(ctx context.Context, p string) error {
	id, err := w.resolve(p)
	if err != nil {
		return err
	}
	var gone []string
	w.Files.View(func(t *tree.Tree) {
		n, _ := t.Find(id)
		t.Walk(n, func(n *tree.Node, _ int) bool {
			gone = append(gone, n.ID)
			return true
		})
	})
	if err := w.Files.Delete(ctx, id); err != nil {
		return err
	}
	for _, key := range gone {
		w.Editor.CloseKey(key)
	}
	return nil
}

// Rename renames the item at p and retitles its tab.
func (w *Workbench) Rename(ctx context.Context, p, newName string) error {
	id, err := w.resolve(p)
	if err != nil {
		return err
	}
	if err := w.Files.Rename(ctx, id, newName); err != nil {
		return err
	}
	w.Editor.Retitle(id, newName)
	return nil
}

// Copy copies the item at p into the folder dest.
func (w *Workbench) Copy(ctx context.Context, p, dest string) (string, error) {
	id, err := w.resolve(p)
	if err != nil {
		return "", err
	}
	cid, err := w.Files.Copy(ctx, id, dest)
	if err != nil {
		return "", err
	}
	return w.Files.Path(cid)
}

// Store writes contents to the file at p, creating it first when it does not
// exist. An open tab of that file gets the new contents so a later Save does
// not put the old text back.
func (w *Workbench) Store(ctx context.Context, p, contents string) error {
	id, ok := w.Files.Lookup(p)
	if !ok {
		dir, name := path.Split(p)
		var err error
		if id, err = w.Files.CreateFile(ctx, strings.TrimSuffix(dir, "/"), name); err != nil {
			return err
		}
	}
	if err := w.Files.Save(ctx, id, contents); err != nil {
		return err
	}
	w.Editor.Replace(id, contents)
	return nil
}

// Reload refetches the tree. Tabs whose files still exist at the same path
// are relinked to the new nodes.
func (w *Workbench) Reload(ctx context.Context) error {
	paths := map[string]string{}
	for _, t := range w.Editor.Tabs() {
		if p, err := w.Files.Path(t.Key); err == nil {
			paths[t.Key] = p
		}
	}
	if err := w.Files.Load(ctx, w.Files.Workspace()); err != nil {
		return err
	}
	for key, p := range paths {
		if id, ok := w.Files.Lookup(p); ok {
			w.Editor.Rekey(key, id)
		}
	}
	return nil
}
