// Package common contains shared constants, sentinel errors and small helpers
// used across the codepad client components.
package common

const (
	// AccessTokenKey is the persistent storage key holding the bearer credential.
	AccessTokenKey = "access_token"

	// ThemeKey is the persistent storage key holding the selected theme.
	ThemeKey = "theme"

	// AppName is used for the data directory and the CLI name.
	AppName = "codepad"
)
