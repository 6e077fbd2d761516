package common

import "errors"

var (
	// Session errors.
	ErrInvalidToken     = errors.New("invalid token")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Input validation errors raised before any remote call.
	ErrEmptyName    = errors.New("name must not be empty")
	ErrInvalidName  = errors.New("invalid name")
	ErrNameConflict = errors.New("an item with this name already exists")
)
