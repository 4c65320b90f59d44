package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dohr-michael/tasklist/internal/storage/kv"
	"github.com/dohr-michael/tasklist/internal/tasks"
)

func newTestServer(t *testing.T, seed tasks.Collection) (*Server, *tasks.Controller) {
	t.Helper()
	ctx := context.Background()
	store := tasks.NewStore(kv.NewMemoryBackend())
	if err := store.Save(ctx, seed); err != nil {
		t.Fatal(err)
	}
	n := 0
	ctrl, err := tasks.NewController(ctx, store, tasks.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(ctrl, "localhost", 0), ctrl
}

func do(srv *Server, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func postForm(srv *Server, target string, values url.Values) *httptest.ResponseRecorder {
	return do(srv, http.MethodPost, target, values.Encode(), "application/x-www-form-urlencoded")
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, tasks.Collection{{ID: "a", Text: "x"}})

	w := do(srv, http.MethodGet, "/api/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" || body["tasks"] != float64(1) {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestIndex_RendersItemsWithCorrelationKey(t *testing.T) {
	srv, _ := newTestServer(t, tasks.Collection{{ID: "a", Text: "buy <milk>"}, {ID: "b", Text: "walk dog"}})

	w := do(srv, http.MethodGet, "/", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	html := w.Body.String()

	for _, want := range []string{
		`data-task-id="a"`,
		`data-task-id="b"`,
		`buy &lt;milk&gt;`,
		`href="/tasks/a/edit"`,
		`href="/tasks/b/delete"`,
		`class="clear-tasks"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Index(html, `data-task-id="a"`) > strings.Index(html, `data-task-id="b"`) {
		t.Error("items not in collection order")
	}
}

func TestIndex_Filter(t *testing.T) {
	srv, _ := newTestServer(t, tasks.Collection{{ID: "a", Text: "buy milk"}, {ID: "b", Text: "walk dog"}})

	html := do(srv, http.MethodGet, "/?q=DOG", "", "").Body.String()
	if strings.Contains(html, `data-task-id="a"`) || !strings.Contains(html, `data-task-id="b"`) {
		t.Errorf("filter not applied:\n%s", html)
	}
}

func TestCreateForm(t *testing.T) {
	srv, ctrl := newTestServer(t, nil)

	w := postForm(srv, "/tasks", url.Values{"text": {"  buy milk  "}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}

	got := ctrl.ListTasks()
	if len(got) != 1 || got[0].Text != "buy milk" {
		t.Fatalf("tasks = %#v", got)
	}
}

func TestCreateForm_BlankIsSilent(t *testing.T) {
	srv, ctrl := newTestServer(t, nil)

	w := postForm(srv, "/tasks", url.Values{"text": {"   "}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if ctrl.Len() != 0 {
		t.Fatalf("blank text created a task")
	}
}

func TestDeleteFlow(t *testing.T) {
	srv, ctrl := newTestServer(t, tasks.Collection{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}})

	page := do(srv, http.MethodGet, "/tasks/a/delete", "", "").Body.String()
	if !strings.Contains(page, "Delete this task?") || !strings.Contains(page, `action="/tasks/a/delete"`) {
		t.Fatalf("confirm page missing question or action:\n%s", page)
	}

	// declining (no confirm value) changes nothing
	postForm(srv, "/tasks/a/delete", url.Values{})
	if ctrl.Len() != 2 {
		t.Fatal("delete without confirmation removed a task")
	}

	postForm(srv, "/tasks/a/delete", url.Values{"confirm": {"yes"}})
	got := ctrl.ListTasks()
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("tasks = %#v", got)
	}
}

func TestDeleteConfirm_UnknownRedirects(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	if w := do(srv, http.MethodGet, "/tasks/ghost/delete", "", ""); w.Code != http.StatusSeeOther {
		t.Errorf("expected redirect, got %d", w.Code)
	}
}

func TestEditFlow(t *testing.T) {
	srv, ctrl := newTestServer(t, tasks.Collection{{ID: "a", Text: "old text"}})

	page := do(srv, http.MethodGet, "/tasks/a/edit", "", "").Body.String()
	if !strings.Contains(page, `value="old text"`) {
		t.Fatalf("edit form not pre-filled:\n%s", page)
	}

	postForm(srv, "/tasks/a/edit", url.Values{"text": {"   "}})
	if got, _ := ctrl.Task("a"); got.Text != "old text" {
		t.Fatalf("blank edit changed text to %q", got.Text)
	}

	postForm(srv, "/tasks/a/edit", url.Values{"text": {"new text"}})
	if got, _ := ctrl.Task("a"); got.Text != "new text" {
		t.Fatalf("text = %q", got.Text)
	}
}

func TestClearFlow(t *testing.T) {
	srv, ctrl := newTestServer(t, tasks.Collection{{ID: "a", Text: "x"}})

	page := do(srv, http.MethodGet, "/clear", "", "").Body.String()
	if !strings.Contains(page, "Delete all tasks?") {
		t.Fatalf("confirm page missing question:\n%s", page)
	}

	postForm(srv, "/clear", url.Values{"confirm": {"no"}})
	if ctrl.Len() != 1 {
		t.Fatal("declined clear removed tasks")
	}

	postForm(srv, "/clear", url.Values{"confirm": {"yes"}})
	if ctrl.Len() != 0 {
		t.Fatal("confirmed clear left tasks")
	}
}

func TestAPI_CRUD(t *testing.T) {
	srv, ctrl := newTestServer(t, nil)

	w := do(srv, http.MethodPost, "/api/tasks", `{"text":"buy milk"}`, "application/json")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created tasks.Task
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID != "t1" || created.Text != "buy milk" {
		t.Fatalf("created %#v", created)
	}

	w = do(srv, http.MethodPut, "/api/tasks/t1", `{"text":"buy oat milk"}`, "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("rename: expected 200, got %d", w.Code)
	}

	w = do(srv, http.MethodGet, "/api/tasks", "", "")
	var list []tasks.Task
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Text != "buy oat milk" {
		t.Fatalf("list = %#v", list)
	}

	if w = do(srv, http.MethodDelete, "/api/tasks/t1", "", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	if w = do(srv, http.MethodDelete, "/api/tasks/t1", "", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete absent: expected 204, got %d", w.Code)
	}
	if ctrl.Len() != 0 {
		t.Fatalf("tasks left: %d", ctrl.Len())
	}
}

func TestAPI_Errors(t *testing.T) {
	srv, _ := newTestServer(t, tasks.Collection{{ID: "a", Text: "x"}})

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"create blank", http.MethodPost, "/api/tasks", `{"text":"  "}`, http.StatusUnprocessableEntity},
		{"create bad json", http.MethodPost, "/api/tasks", `{`, http.StatusBadRequest},
		{"rename blank", http.MethodPut, "/api/tasks/a", `{"text":""}`, http.StatusUnprocessableEntity},
		{"rename unknown", http.MethodPut, "/api/tasks/zz", `{"text":"y"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(srv, tt.method, tt.target, tt.body, "application/json")
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestAPI_Clear(t *testing.T) {
	srv, ctrl := newTestServer(t, tasks.Collection{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}})

	if w := do(srv, http.MethodDelete, "/api/tasks", "", ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if ctrl.Len() != 0 {
		t.Fatal("tasks left after clear")
	}
}
