// Package userapi serves the users of the application stack over HTTP:
// a JSON API for machines and a server-rendered page for people.
package userapi

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/docker-manager/internal/users"
)

var pageTemplate = template.Must(template.New("users").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset='utf-8'>
    <title>Users</title>
    <link rel='stylesheet' href='/static/style.css'>
</head>
<body>
    <div class='container'>
        <h1>User List</h1>
        <form method='post' action='/add'>
            <input type='text' name='name' placeholder='Enter name' required>
            <button type='submit'>Add</button>
        </form>
        <table>
            <tr><th>ID</th><th>Name</th><th>Created At</th></tr>
            {{- range .}}
            <tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td></tr>
            {{- end}}
        </table>
    </div>
</body>
</html>
`))

// Server holds the HTTP handlers of the users API.
type Server struct {
	store     users.Store
	log       logrus.FieldLogger
	staticDir string
}

// NewServer creates a Server. When staticDir is non-empty its files are
// served under /static/.
func NewServer(store users.Store, log logrus.FieldLogger, staticDir string) *Server {
	return &Server{store: store, log: log, staticDir: staticDir}
}

// Handler returns the routed, logged HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /add", s.handleAddForm)

	if s.staticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	}

	return s.logRequests(mux)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.internalError(w, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.Create(r.Context(), r.URL.Query().Get("name"))
	if errors.Is(err, users.ErrEmptyName) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Name must be non-empty"})
		return
	}
	if err != nil {
		s.internalError(w, "create user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": u.ID, "name": u.Name})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.internalError(w, "list users", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, list); err != nil {
		s.log.WithError(err).Error("render users page")
	}
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	_, err := s.store.Create(r.Context(), r.PostForm.Get("name"))
	if errors.Is(err, users.ErrEmptyName) {
		http.Error(w, "Name must be non-empty", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.internalError(w, "create user", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.WithError(err).Error(op)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
