package clienttest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	api := func(pattern string, h http.HandlerFunc) {
		method, p, _ := strings.Cut(pattern, " ")
		mux.HandleFunc(method+" "+APIPrefix+p, h)
	}
	admin := func(pattern string, h http.HandlerFunc) {
		method, p, _ := strings.Cut(pattern, " ")
		mux.HandleFunc(method+" "+AdminPrefix+p, h)
	}

	api("POST /user/sign_in", s.signIn)
	api("POST /user/sign_up", s.signUp)
	api("GET /profile/{id}", s.authed(s.getProfile))
	api("PUT /profile/{id}", s.authed(s.updateProfile))
	api("DELETE /profile/{id}", s.authed(s.deleteProfile))
	api("GET /search/{$}", s.authed(s.search))

	api("GET /user/workspaces", s.authed(s.listWorkspaces))
	api("POST /user/workspaces/create", s.authed(s.createWorkspace))
	api("DELETE /user/workspaces/{name}", s.authed(s.withWorkspace(s.deleteWorkspace)))
	api("GET /user/workspaces/name/{name}", s.authed(s.withWorkspace(s.getWorkspace)))
	api("POST /user/workspaces/{name}/file", s.authed(s.withWorkspace(s.create(false))))
	api("POST /user/workspaces/{name}/folder", s.authed(s.withWorkspace(s.create(true))))
	api("DELETE /user/workspaces/{name}/item", s.authed(s.withWorkspace(s.deleteItem)))
	api("POST /user/workspaces/{name}/copy", s.authed(s.withWorkspace(s.copyItem)))
	api("PUT /user/workspaces/{name}/rename", s.authed(s.withWorkspace(s.renameItem)))
	api("GET /user/workspaces/{name}/file/{path...}", s.authed(s.withWorkspace(s.readFile)))
	api("PUT /user/workspaces/{name}/file", s.authed(s.withWorkspace(s.writeFile)))
	api("POST /user/test_code_execute", s.authed(s.execute))

	admin("GET /get_users", s.adminListUsers)
	admin("GET /get_user/{id}", s.adminGetUser)
	admin("POST /create_user", s.adminCreateUser)
	admin("PUT /update_user/{id}", s.adminUpdateUser)
	admin("DELETE /delete_user/{id}", s.adminDeleteUser)

	return s.record(mux)
}

// record logs the request and applies injected failures before routing.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		rel := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, APIPrefix), AdminPrefix)

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   rel,
			Query:  r.URL.RawQuery,
			Body:   string(body),
			Auth:   r.Header.Get("Authorization"),
		})
		status, fail := s.failures[r.Method+" "+rel]
		s.mu.Unlock()

		if fail {
			detail(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, caller int64)

func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) { return signingKey, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		id, err := strconv.ParseInt(claims.Subject, 10, 64)
		s.mu.Lock()
		_, exists := s.users[id]
		s.mu.Unlock()
		if err != nil || !exists {
			detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		h(w, r, id)
	}
}

type workspaceHandler func(w http.ResponseWriter, r *http.Request, ws *workspace)

// withWorkspace resolves {name} to a workspace of the caller and holds the
// server lock while h runs.
func (s *Server) withWorkspace(h workspaceHandler) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, caller int64) {
		s.mu.Lock()
		defer s.mu.Unlock()
		ws, ok := s.workspaces[r.PathValue("name")]
		if !ok || ws.owner != caller {
			detail(w, http.StatusNotFound, "Workspace not found")
			return
		}
		h(w, r, ws)
	}
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		detail(w, http.StatusBadRequest, "%v", err)
		return
	}
	if r.PostForm.Get("grant_type") != "password" {
		detail(w, http.StatusUnprocessableEntity, "unsupported grant_type")
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")

	s.mu.Lock()
	defer s.mu.Unlock()
	pw, ok := s.passwords[username]
	if !ok || pw != password {
		detail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	for _, u := range s.users {
		if u.Username == username {
			writeJSON(w, http.StatusOK, map[string]any{"UserProfile": u, "token": Token(u.ID), "token_type": "bearer"})
			return
		}
	}
	detail(w, http.StatusUnauthorized, "Incorrect username or password")
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	age, err := strconv.Atoi(q.Get("age"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []map[string]any{
			{"loc": []string{"query", "age"}, "msg": "Input should be a valid integer", "type": "int_parsing"},
		}})
		return
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			detail(w, http.StatusBadRequest, "%v", err)
			return
		}
	}
	u := models.User{
		Name:     q.Get("name"),
		Surname:  q.Get("surname"),
		Email:    q.Get("email"),
		Phone:    q.Get("phone"),
		Age:      age,
		Username: q.Get("username"),
	}
	if r.MultipartForm != nil && len(r.MultipartForm.File["avatar"]) > 0 {
		u.Avatar = "/static/avatars/" + r.MultipartForm.File["avatar"][0].Filename
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.passwords[u.Username]; taken || u.Username == "" {
		detail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	id := s.addUserLocked(u, q.Get("hash_password"))
	writeJSON(w, http.StatusOK, map[string]any{"user": s.users[id], "token": Token(id)})
}

func (s *Server) userFromPath(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid id")
		return nil, false
	}
	u, ok := s.users[id]
	if !ok {
		detail(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	return u, true
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request, _ int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.userFromPath(w, r); ok {
		writeJSON(w, http.StatusOK, u)
	}
}

func mergeUser(dst *models.User, src models.User) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&dst.Name, src.Name}, {&dst.Surname, src.Surname}, {&dst.Email, src.Email},
		{&dst.Phone, src.Phone}, {&dst.Username, src.Username}, {&dst.Avatar, src.Avatar},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	if src.Age != 0 {
		dst.Age = src.Age
	}
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request, caller int64) {
	var in models.User
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userFromPath(w, r)
	if !ok {
		return
	}
	if u.ID != caller {
		detail(w, http.StatusForbidden, "Not enough permissions")
		return
	}
	mergeUser(u, in)
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request, caller int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userFromPath(w, r)
	if !ok {
		return
	}
	if u.ID != caller {
		detail(w, http.StatusForbidden, "Not enough permissions")
		return
	}
	delete(s.users, u.ID)
	delete(s.passwords, u.Username)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, _ int64) {
	q := strings.ToLower(r.URL.Query().Get("query"))
	s.mu.Lock()
	defer s.mu.Unlock()
	users := []models.User{}
	for _, u := range s.sortedUsers() {
		hay := strings.ToLower(u.Username + " " + u.Name + " " + u.Surname)
		if q == "" || strings.Contains(hay, q) {
			users = append(users, *u)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) sortedUsers() []*models.User {
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) listWorkspaces(w http.ResponseWriter, _ *http.Request, caller int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []models.Workspace{}
	for _, ws := range s.workspaces {
		if ws.owner == caller {
			list = append(list, ws.meta)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	writeJSON(w, http.StatusOK, map[string]any{"workspaces": list, "message": "Workspaces retrieved"})
}

func (s *Server) createWorkspace(w http.ResponseWriter, r *http.Request, caller int64) {
	q := r.URL.Query()
	name := q.Get("name")
	if name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []map[string]any{
			{"loc": []string{"query", "name"}, "msg": "Field required", "type": "missing"},
		}})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.workspaces[name]; exists {
		detail(w, http.StatusBadRequest, "Workspace already exists")
		return
	}
	s.workspaces[name] = &workspace{
		owner: caller,
		meta: models.Workspace{
			Name:        name,
			Description: q.Get("description"),
			IsActive:    q.Get("is_active") != "false",
			IsPublic:    q.Get("is_public") != "false",
		},
		items: map[string]*item{},
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Workspace created"})
}

func (s *Server) deleteWorkspace(w http.ResponseWriter, _ *http.Request, ws *workspace) {
	delete(s.workspaces, ws.meta.Name)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Workspace deleted"})
}

func (s *Server) getWorkspace(w http.ResponseWriter, _ *http.Request, ws *workspace) {
	out := ws.meta
	out.Files = ws.listing()
	writeJSON(w, http.StatusOK, out)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		detail(w, http.StatusUnprocessableEntity, "%v", err)
		return false
	}
	return true
}

func clean(p string) string {
	return strings.Trim(path.Clean("/"+p), "/")
}

func (ws *workspace) parentExists(p string) bool {
	parent := path.Dir(p)
	if parent == "." {
		return true
	}
	it, ok := ws.items[parent]
	return ok && it.folder
}

func (s *Server) create(folder bool) workspaceHandler {
	return func(w http.ResponseWriter, r *http.Request, ws *workspace) {
		var in struct {
			Name string `json:"name"`
		}
		if !decodeBody(w, r, &in) {
			return
		}
		p := clean(in.Name)
		if p == "" {
			detail(w, http.StatusUnprocessableEntity, "name is required")
			return
		}
		if !ws.parentExists(p) {
			detail(w, http.StatusNotFound, "Parent folder not found")
			return
		}
		if _, exists := ws.items[p]; exists {
			detail(w, http.StatusBadRequest, "Item already exists")
			return
		}
		ws.items[p] = &item{folder: folder}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Created", "success": true})
	}
}

// subtree returns p and every path below it.
func (ws *workspace) subtree(p string) []string {
	out := []string{}
	for k := range ws.items {
		if k == p || strings.HasPrefix(k, p+"/") {
			out = append(out, k)
		}
	}
	return out
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request, ws *workspace) {
	var in struct {
		Path string `json:"path"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	p := clean(in.Path)
	if _, ok := ws.items[p]; !ok {
		detail(w, http.StatusNotFound, "Item not found")
		return
	}
	for _, k := range ws.subtree(p) {
		delete(ws.items, k)
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Deleted", "success": true})
}

func (s *Server) copyItem(w http.ResponseWriter, r *http.Request, ws *workspace) {
	var in struct {
		Src string `json:"src"`
		Dst string `json:"dst"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	src, dst := clean(in.Src), clean(in.Dst)
	if _, ok := ws.items[src]; !ok {
		detail(w, http.StatusNotFound, "Source not found")
		return
	}
	if !ws.parentExists(dst) {
		detail(w, http.StatusNotFound, "Destination folder not found")
		return
	}
	if _, exists := ws.items[dst]; exists {
		detail(w, http.StatusBadRequest, "Destination already exists")
		return
	}
	if dst == src || strings.HasPrefix(dst, src+"/") {
		detail(w, http.StatusBadRequest, "Cannot copy a folder into itself")
		return
	}
	for _, k := range ws.subtree(src) {
		it := *ws.items[k]
		ws.items[dst+strings.TrimPrefix(k, src)] = &it
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Copied", "success": true})
}

func (s *Server) renameItem(w http.ResponseWriter, r *http.Request, ws *workspace) {
	var in struct {
		OldName string `json:"old_name"`
		NewName string `json:"new_name"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	from, to := clean(in.OldName), clean(in.NewName)
	if _, ok := ws.items[from]; !ok {
		detail(w, http.StatusNotFound, "Item not found")
		return
	}
	if _, exists := ws.items[to]; exists {
		detail(w, http.StatusBadRequest, "Item already exists")
		return
	}
	for _, k := range ws.subtree(from) {
		ws.items[to+strings.TrimPrefix(k, from)] = ws.items[k]
		delete(ws.items, k)
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Renamed", "success": true})
}

func (s *Server) readFile(w http.ResponseWriter, r *http.Request, ws *workspace) {
	it, ok := ws.items[clean(r.PathValue("path"))]
	if !ok || it.folder {
		detail(w, http.StatusNotFound, "File not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"contents": it.contents})
}

func (s *Server) writeFile(w http.ResponseWriter, r *http.Request, ws *workspace) {
	var in struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	it, ok := ws.items[clean(in.Name)]
	if !ok || it.folder {
		detail(w, http.StatusNotFound, "File not found")
		return
	}
	it.contents = in.Content
	writeJSON(w, http.StatusOK, map[string]any{"message": "Saved", "success": true})
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, _ int64) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		detail(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	s.mu.Lock()
	exec := s.Exec
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, exec(r.FormValue("code"), r.FormValue("language")))
}

func (s *Server) adminListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.sortedUsers() {
		out = append(out, *u)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) adminGetUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.userFromPath(w, r); ok {
		writeJSON(w, http.StatusOK, u)
	}
}

func (s *Server) adminCreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.User
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Username == "" || in.HashPassword == "" {
		detail(w, http.StatusUnprocessableEntity, "username and hash_password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.passwords[in.Username]; taken {
		detail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	id := s.addUserLocked(in, in.HashPassword)
	writeJSON(w, http.StatusOK, s.users[id])
}

func (s *Server) adminUpdateUser(w http.ResponseWriter, r *http.Request) {
	var in models.User
	if !decodeBody(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userFromPath(w, r)
	if !ok {
		return
	}
	oldUsername := u.Username
	mergeUser(u, in)
	if u.Username != oldUsername {
		s.passwords[u.Username] = s.passwords[oldUsername]
		delete(s.passwords, oldUsername)
	}
	if in.HashPassword != "" {
		s.passwords[u.Username] = in.HashPassword
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userFromPath(w, r)
	if !ok {
		return
	}
	delete(s.users, u.ID)
	delete(s.passwords, u.Username)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
