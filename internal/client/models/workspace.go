package models

// Entry kinds as reported by the workspace listing.
const (
	EntryFile   = "file"
	EntryFolder = "folder"
)

// Workspace is a named project container owned by a user.
type Workspace struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	IsActive    bool        `json:"is_active"`
	IsPublic    bool        `json:"is_public"`
	Files       []FileEntry `json:"files,omitempty"`
}

// FileEntry is one node of the nested listing returned with a workspace.
type FileEntry struct {
	Name     string      `json:"name"`
	Filename string      `json:"filename,omitempty"`
	Type     string      `json:"type"`
	Size     int64       `json:"size,omitempty"`
	Children []FileEntry `json:"children,omitempty"`
}

// IsFolder reports whether the entry is a folder.
func (e FileEntry) IsFolder() bool {
	return e.Type == EntryFolder
}

// WorkspaceCreate holds the fields accepted by the create endpoint.
type WorkspaceCreate struct {
	Name        string
	Description string
	IsActive    bool
	IsPublic    bool
}
