package services

import (
	"errors"
	"fmt"
)

// FetchError reports a failed read (workspace load, file open). Path is empty
// for workspace-level failures.
type FetchError struct {
	Op        string
	Workspace string
	Path      string
	Err       error
}

func (e *FetchError) Error() string {
	return describe("fetch", e.Op, e.Workspace, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError reports a failed mutation of the workspace.
type WriteError struct {
	Op        string
	Workspace string
	Path      string
	Err       error
}

func (e *WriteError) Error() string {
	return describe("write", e.Op, e.Workspace, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func describe(kind, op, ws, path string, err error) string {
	target := ws
	if path != "" {
		target += ":" + path
	}
	return fmt.Sprintf("%s %s (%s): %v", op, target, kind, err)
}

// IsFetchError reports whether err is, or wraps, a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsWriteError reports whether err is, or wraps, a *WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
