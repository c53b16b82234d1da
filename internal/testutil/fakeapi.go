package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// naiveLayout mimics the zone-less timestamps of the original backend.
const naiveLayout = "2006-01-02T15:04:05.000000"

// FakeAPI is an in-process HTTP fake of the Task API.
// IDs are integers on the wire and timestamps carry no zone.
type FakeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	tasks    []apiTask
	seq      int64
	next     time.Time
	token    string
	fail     int
	requests []string
}

type apiTask struct {
	ID        int64
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t apiTask) wire() map[string]any {
	return map[string]any{
		"id":         t.ID,
		"title":      t.Title,
		"completed":  t.Completed,
		"created_at": t.CreatedAt.UTC().Format(naiveLayout),
		"updated_at": t.UpdatedAt.UTC().Format(naiveLayout),
	}
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	a := &FakeAPI{next: BaseTime}
	a.Server = httptest.NewServer(a.router())
	t.Cleanup(a.Server.Close)
	return a
}

// URL returns the base URL to configure clients with.
func (a *FakeAPI) URL() string { return a.Server.URL }

// RequireToken makes every request require "Authorization: Bearer <token>".
func (a *FakeAPI) RequireToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

// FailWith makes every request answer with status. Zero restores normal behavior.
func (a *FakeAPI) FailWith(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail = status
}

// Seed adds a task and returns its ID.
func (a *FakeAPI) Seed(title string, completed bool) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := a.newTaskLocked(title)
	t.Completed = completed
	a.tasks = append(a.tasks, t)
	return t.ID
}

// Requests returns "METHOD path" for every request received so far.
func (a *FakeAPI) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.requests)
}

// Len returns the number of stored tasks.
func (a *FakeAPI) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.tasks)
}

func (a *FakeAPI) newTaskLocked(title string) apiTask {
	a.seq++
	t := apiTask{ID: a.seq, Title: title, CreatedAt: a.next, UpdatedAt: a.next}
	a.next = a.next.Add(time.Minute)
	return t
}

func (a *FakeAPI) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(a.record)
	r.Use(a.guard)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", a.list)
		r.Post("/", a.create)
		r.Get("/{id}", a.get)
		r.Put("/{id}", a.update)
		r.Delete("/{id}", a.remove)
	})
	return r
}

func (a *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.requests = append(a.requests, r.Method+" "+r.URL.Path)
		a.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (a *FakeAPI) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		token, fail := a.token, a.fail
		a.mu.Unlock()

		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		if fail != 0 {
			writeJSON(w, fail, map[string]string{"detail": http.StatusText(fail)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *FakeAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	out := make([]map[string]any, 0, len(a.tasks))
	for _, t := range a.tasks {
		out = append(out, t.wire())
	}
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (a *FakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "title is required"})
		return
	}

	a.mu.Lock()
	t := a.newTaskLocked(req.Title)
	a.tasks = append(a.tasks, t)
	a.mu.Unlock()
	writeJSON(w, http.StatusCreated, t.wire())
}

// lookupLocked resolves the {id} URL param. It writes a 404 and returns -1 if absent.
// Callers must hold a.mu.
func (a *FakeAPI) lookupLocked(w http.ResponseWriter, r *http.Request) int {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		for i, t := range a.tasks {
			if t.ID == id {
				return i
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Task not found"})
	return -1
}

func (a *FakeAPI) get(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.lookupLocked(w, r)
	if i < 0 {
		return
	}
	writeJSON(w, http.StatusOK, a.tasks[i].wire())
}

func (a *FakeAPI) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.lookupLocked(w, r)
	if i < 0 {
		return
	}
	if req.Title != nil {
		a.tasks[i].Title = *req.Title
	}
	if req.Completed != nil {
		a.tasks[i].Completed = *req.Completed
	}
	a.tasks[i].UpdatedAt = a.tasks[i].UpdatedAt.Add(time.Second)
	writeJSON(w, http.StatusOK, a.tasks[i].wire())
}

func (a *FakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.lookupLocked(w, r)
	if i < 0 {
		return
	}
	a.tasks = slices.Delete(a.tasks, i, i+1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
