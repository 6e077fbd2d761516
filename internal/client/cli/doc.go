// Package cli is the codepad command-line front end.
//
// Commands are grouped by area: auth, profile, search, workspaces, run, admin
// and theme. The edit command opens a workspace in an
// interactive shell that keeps the file tree and editor tabs in memory until
// it exits.
//
// Every command gets a fresh state.App from the root command's pre-run hook,
// which loads the configuration, opens the local store and restores the
// persisted session.
package cli
