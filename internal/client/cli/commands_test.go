package cli

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/codepad/internal/client/client/clienttest"
	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	srv   *clienttest.Server
	store string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	srv := clienttest.NewServer(t)
	id := srv.AddUser(models.User{Username: "ada", Name: "Ada", Surname: "Lovelace"}, "secret")
	srv.AddUser(models.User{Username: "grace", Name: "Grace", Surname: "Hopper"}, "cobol")
	srv.AddWorkspace(id, "demo", map[string]string{
		"src/main.py": "print('Hello, world!')",
		"README.md":   "# demo",
	})
	return &cliEnv{srv: srv, store: filepath.Join(t.TempDir(), "codepad.db")}
}

// run executes one CLI invocation against the fake backend and the shared
// local store.
func (e *cliEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root, sh := newRoot()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(e.flags(args...))
	err := root.ExecuteContext(context.Background())
	require.NoError(t, sh.close())
	return out.String(), errOut.String(), err
}

func (e *cliEnv) flags(args ...string) []string {
	return append(args,
		"--api-url", e.srv.APIURL(),
		"--admin-url", e.srv.AdminURL(),
		"--store-path", e.store,
		"--log-level", "error",
	)
}

func (e *cliEnv) signIn(t *testing.T) {
	t.Helper()
	out, _, err := e.run(t, "secret\n", "auth", "signin", "ada")
	require.NoError(t, err)
	require.Contains(t, out, "Signed in as Ada Lovelace (ada)")
}

func TestVersionNeedsNoStore(t *testing.T) {
	e := newCLIEnv(t)

	out, _, err := e.run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version:")
	_, statErr := os.Stat(e.store)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSignInPersistsSession(t *testing.T) {
	e := newCLIEnv(t)

	out, _, err := e.run(t, "", "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	e.signIn(t)

	out, _, err = e.run(t, "", "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace (ada)")

	_, _, err = e.run(t, "", "auth", "signout")
	require.NoError(t, err)

	_, _, err = e.run(t, "", "workspaces", "list")
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestSignInWrongPassword(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "nope\n", "auth", "signin", "ada")
	require.Error(t, err)

	out, _, err := e.run(t, "", "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestSignUp(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "pw\nother\n", "auth", "signup", "linus")
	assert.EqualError(t, err, "passwords do not match")

	out, _, err := e.run(t, "pw\npw\n", "auth", "signup", "linus", "--name", "Linus", "--age", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Account created")

	_, _, err = e.run(t, "pw\n", "auth", "signin", "linus")
	require.NoError(t, err)
}

func TestWorkspacesCommands(t *testing.T) {
	e := newCLIEnv(t)
	e.signIn(t)

	_, _, err := e.run(t, "", "workspaces", "create", "scratch", "-d", "playground", "--private")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "ws", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "playground")

	out, _, err = e.run(t, "", "workspaces", "show", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "README.md\nsrc/\n  main.py\n")

	out, _, err = e.run(t, "n\n", "workspaces", "delete", "scratch")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	_, _, err = e.run(t, "", "workspaces", "delete", "scratch", "--yes")
	require.NoError(t, err)

	out, _, err = e.run(t, "", "workspaces", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "playground")
}

func TestProfileAndSearch(t *testing.T) {
	e := newCLIEnv(t)
	e.signIn(t)

	out, _, err := e.run(t, "", "profile", "update", "--email", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")

	_, _, err = e.run(t, "", "profile", "update")
	assert.Error(t, err)

	out, _, err = e.run(t, "", "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")

	out, _, err = e.run(t, "", "search", "hopper")
	require.NoError(t, err)
	assert.Contains(t, out, "grace")
	assert.NotContains(t, out, "ada@example.com")
}

func TestRunCommand(t *testing.T) {
	e := newCLIEnv(t)
	e.signIn(t)
	e.srv.Exec = func(code, language string) models.ExecResult {
		return models.ExecResult{Output: language + ": " + code}
	}

	file := filepath.Join(t.TempDir(), "hello.go")
	require.NoError(t, os.WriteFile(file, []byte("package main"), 0o644))

	out, _, err := e.run(t, "", "run", file)
	require.NoError(t, err)
	assert.Equal(t, "go: package main\n", out)

	_, _, err = e.run(t, "", "run", file, "--lang", "cobol")
	assert.Error(t, err)
}

func TestAdminUsers(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "hunter2\n", "admin", "users", "create", "--username", "linus", "--name", "Linus")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "admin", "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "linus")
	assert.Contains(t, out, "3 user(s)")

	out, _, err = e.run(t, "", "admin", "users", "update", "3", "--surname", "Torvalds")
	require.NoError(t, err)
	assert.Contains(t, out, "Linus Torvalds (linus)")

	_, _, err = e.run(t, "", "admin", "users", "delete", "3", "-y")
	require.NoError(t, err)

	_, _, err = e.run(t, "", "admin", "users", "get", "3")
	assert.Error(t, err)
}

func TestThemeIsPersisted(t *testing.T) {
	e := newCLIEnv(t)

	out, _, err := e.run(t, "", "theme", "show")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	_, _, err = e.run(t, "", "theme", "toggle")
	require.NoError(t, err)

	out, _, err = e.run(t, "", "theme", "show")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	_, _, err = e.run(t, "", "theme", "set", "purple")
	assert.Error(t, err)
}

func TestEditSession(t *testing.T) {
	e := newCLIEnv(t)
	e.signIn(t)
	e.srv.Exec = func(code, language string) models.ExecResult {
		return models.ExecResult{Output: "ran " + language}
	}

	script := strings.Join([]string{
		"open src/main.py",
		"write",
		"print(2 + 2)",
		".",
		"save",
		"run",
		"tabs",
		"mkdir lib",
		"touch lib/util.py",
		"cp src/main.py lib",
		"mv README.md NOTES.md",
		"tree",
		"exit",
	}, "\n")
	out, errOut, err := e.run(t, script, "edit", "demo")
	require.NoError(t, err)
	assert.Empty(t, errOut)

	got, ok := e.srv.Contents("demo", "src/main.py")
	require.True(t, ok)
	assert.Equal(t, "print(2 + 2)\n", got)

	assert.Contains(t, out, "Saved src/main.py")
	assert.Contains(t, out, "ran python")
	assert.Contains(t, out, "main.py")
	assert.Contains(t, out, "NOTES.md\nsrc/\n  main.py\nlib/\n  util.py\n  main.py\n")
	assert.True(t, e.srv.Exists("demo", "lib/main.py"))
	assert.False(t, e.srv.Exists("demo", "README.md"))
}

func TestEditSessionReportsFailuresOnce(t *testing.T) {
	e := newCLIEnv(t)
	e.signIn(t)
	e.srv.Fail(http.MethodDelete, "/user/workspaces/demo/item", http.StatusInternalServerError)

	script := strings.Join([]string{
		"rm README.md",
		"rm nope",
		"frobnicate",
		"ls",
		"quit",
	}, "\n")
	out, errOut, err := e.run(t, script, "edit", "demo")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(errOut, "✗ injected failure"))
	assert.Contains(t, errOut, "no such file or folder: nope")
	assert.Contains(t, errOut, `unknown command "frobnicate"`)
	assert.Contains(t, out, "README.md")
	assert.True(t, e.srv.Exists("demo", "README.md"))
}

func TestEditUnknownWorkspace(t *testing.T) {
	e := newCLIEnv(t)
	e.signIn(t)

	_, errOut, err := e.run(t, "", "edit", "missing")
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(errOut, "✗"))
}

func TestExecuteReportsTreeFailureOnce(t *testing.T) {
	e := newCLIEnv(t)
	e.signIn(t)

	var out, errOut bytes.Buffer
	code := execute(context.Background(), e.flags("edit", "missing"), strings.NewReader(""), &out, &errOut)

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, strings.Count(errOut.String(), "✗"), errOut.String())
	assert.Contains(t, errOut.String(), "✗ Workspace not found")
	assert.NotContains(t, errOut.String(), "Error:")
}

func TestExecutePrintsOtherErrors(t *testing.T) {
	e := newCLIEnv(t)

	var out, errOut bytes.Buffer
	code := execute(context.Background(), e.flags("workspaces", "list"), strings.NewReader(""), &out, &errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Error: "+common.ErrNotAuthenticated.Error())

	code = execute(context.Background(), e.flags("version"), strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 0, code)
}

func TestSignOutAllRemovesPreferences(t *testing.T) {
	e := newCLIEnv(t)
	e.signIn(t)

	_, _, err := e.run(t, "", "theme", "set", "light")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "theme", "show", "--all")
	require.NoError(t, err)
	assert.Equal(t, "light\ntheme=light\n", out)

	_, _, err = e.run(t, "", "auth", "signout", "--all")
	require.NoError(t, err)

	out, _, err = e.run(t, "", "theme", "show", "--all")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, _, err = e.run(t, "", "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestEditUploadRefreshesOpenTab(t *testing.T) {
	e := newCLIEnv(t)
	e.signIn(t)

	local := filepath.Join(t.TempDir(), "main.py")
	require.NoError(t, os.WriteFile(local, []byte("print('uploaded')\n"), 0o644))

	script := strings.Join([]string{
		"open src/main.py",
		"upload " + local + " src/main.py",
		"save",
		"exit",
	}, "\n")
	_, _, err := e.run(t, script, "edit", "demo")
	require.NoError(t, err)

	got, ok := e.srv.Contents("demo", "src/main.py")
	require.True(t, ok)
	assert.Equal(t, "print('uploaded')\n", got)
}
