// Package clienttest provides an in-memory fake of the codepad API served by
// net/http/httptest.
package clienttest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	APIPrefix   = "/api_version_1"
	AdminPrefix = "/api/admin/admin"
)

var signingKey = []byte("clienttest-secret")

type item struct {
	folder   bool
	contents string
}

type workspace struct {
	owner int64
	meta  models.Workspace
	items map[string]*item
}

// Request is one call received by the server.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
	Auth   string
}

// Server is a fake backend. Its exported fields may be changed between calls
// but not concurrently with them.
type Server struct {
	*httptest.Server

	// Exec computes execution results; by default it echoes nothing.
	Exec func(code, language string) models.ExecResult

	mu         sync.Mutex
	nextID     int64
	users      map[int64]*models.User
	passwords  map[string]string
	workspaces map[string]*workspace
	failures   map[string]int
	requests   []Request
}

// NewServer starts a server and registers its shutdown with t.Cleanup.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		Exec:       func(string, string) models.ExecResult { return models.ExecResult{} },
		users:      map[int64]*models.User{},
		passwords:  map[string]string{},
		workspaces: map[string]*workspace{},
		failures:   map[string]int{},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// APIURL is the base URL of the user API.
func (s *Server) APIURL() string { return s.URL + APIPrefix }

// AdminURL is the base URL of the admin API.
func (s *Server) AdminURL() string { return s.URL + AdminPrefix }

// AddUser registers a user with a password and returns its id.
func (s *Server) AddUser(u models.User, password string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(u, password)
}

func (s *Server) addUserLocked(u models.User, password string) int64 {
	s.nextID++
	u.ID = s.nextID
	u.HashPassword = ""
	s.users[u.ID] = &u
	s.passwords[u.Username] = password
	return u.ID
}

// Token returns a signed token whose subject is userID.
func Token(userID int64) string {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return signed
}

// AddWorkspace creates a workspace owned by owner. Keys of files are
// workspace-relative paths; a trailing "/" marks a folder. Parent folders are
// created implicitly.
func (s *Server) AddWorkspace(owner int64, name string, files map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws := &workspace{
		owner: owner,
		meta:  models.Workspace{Name: name, IsActive: true, IsPublic: true},
		items: map[string]*item{},
	}
	for p, contents := range files {
		if strings.HasSuffix(p, "/") {
			ws.mkdirAll(strings.TrimSuffix(p, "/"))
			continue
		}
		ws.mkdirAll(path.Dir(p))
		ws.items[p] = &item{contents: contents}
	}
	s.workspaces[name] = ws
}

// Contents returns the stored contents of a file, and whether it exists.
func (s *Server) Contents(ws, p string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workspaces[ws]
	if !ok {
		return "", false
	}
	it, ok := w.items[p]
	if !ok || it.folder {
		return "", false
	}
	return it.contents, true
}

// Exists reports whether ws holds an item at p.
func (s *Server) Exists(ws, p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workspaces[ws]
	if !ok {
		return false
	}
	_, ok = w.items[p]
	return ok
}

// Fail makes every request matching method and path (relative to its API
// prefix, e.g. "/user/workspaces/name/demo") answer with status.
func (s *Server) Fail(method, p string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+p] = status
}

// ClearFailures removes every injected failure.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]int{}
}

// Requests returns a copy of the received requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// ResetRequests forgets the received requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (w *workspace) mkdirAll(p string) {
	for p != "." && p != "" && p != "/" {
		if _, ok := w.items[p]; !ok {
			w.items[p] = &item{folder: true}
		}
		p = path.Dir(p)
	}
}

// listing converts the flat item map into the nested entries the API returns.
func (w *workspace) listing() []models.FileEntry {
	children := map[string][]string{}
	for p := range w.items {
		parent := path.Dir(p)
		if parent == "." {
			parent = ""
		}
		children[parent] = append(children[parent], p)
	}

	var build func(parent string) []models.FileEntry
	build = func(parent string) []models.FileEntry {
		paths := children[parent]
		sort.Strings(paths)
		out := make([]models.FileEntry, 0, len(paths))
		for _, p := range paths {
			it := w.items[p]
			e := models.FileEntry{Name: path.Base(p)}
			if it.folder {
				e.Type = models.EntryFolder
				e.Children = build(p)
			} else {
				e.Type = models.EntryFile
				e.Filename = strings.TrimPrefix(path.Ext(p), ".")
				e.Size = int64(len(it.contents))
			}
			out = append(out, e)
		}
		return out
	}
	return build("")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"detail": fmt.Sprintf(format, args...)})
}
