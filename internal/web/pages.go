package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dohr-michael/tasklist/internal/tasks"
	"github.com/dohr-michael/tasklist/internal/view"
)

const layoutTmpl = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Task list</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
ul.collection { list-style: none; padding: 0; }
li.collection-item { display: flex; gap: .5rem; padding: .4rem 0; border-bottom: 1px solid #ddd; }
li.collection-item span.text { flex: 1; }
.error { color: #b91c1c; }
</style>
</head>
<body>
<h1>Task list</h1>
{{template "content" .}}
</body>
</html>{{end}}`

const indexTmpl = `{{define "content"}}
<form class="create-task-form" method="post" action="/tasks">
  <input class="task-input" name="text" autofocus placeholder="New task">
  <button type="submit">Add task</button>
</form>
<form class="filter-form" method="get" action="/">
  <input class="filter-input" name="q" value="{{.Query}}" placeholder="Filter tasks">
</form>
<ul class="collection">
{{range .Tasks}}  <li class="collection-item" data-task-id="{{.ID}}">
    <span class="text">{{.Text}}</span>
    <a class="edit-item" href="/tasks/{{.ID}}/edit">edit</a>
    <a class="delete-item" href="/tasks/{{.ID}}/delete">delete</a>
  </li>
{{end}}</ul>
{{if .Tasks}}<a class="clear-tasks" href="/clear">Clear tasks</a>{{end}}
{{end}}`

const confirmTmpl = `{{define "content"}}
<p class="question">{{.Question}}</p>
{{if .Text}}<p><q>{{.Text}}</q></p>{{end}}
<form method="post" action="{{.Action}}">
  <button type="submit" name="confirm" value="yes">Yes</button>
  <a href="/">No</a>
</form>
{{end}}`

const editTmpl = `{{define "content"}}
<form method="post" action="/tasks/{{.ID}}/edit">
  <label for="text">{{.Question}}</label>
  <input id="text" name="text" value="{{.Text}}" autofocus>
  <button type="submit">Save</button>
  <a href="/">Cancel</a>
</form>
{{end}}`

type pages struct {
	index   *template.Template
	confirm *template.Template
	edit    *template.Template
}

func newPages() *pages {
	layout := template.Must(template.New("layout").Parse(layoutTmpl))
	with := func(content string) *template.Template {
		return template.Must(template.Must(layout.Clone()).Parse(content))
	}
	return &pages{
		index:   with(indexTmpl),
		confirm: with(confirmTmpl),
		edit:    with(editTmpl),
	}
}

type indexData struct {
	Query string
	Tasks tasks.Collection
}

type confirmData struct {
	Question string
	Text     string
	Action   string
}

type editData struct {
	ID       string
	Question string
	Text     string
}

func render(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("render page", "error", err)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	render(w, s.pages.index, indexData{Query: q, Tasks: s.ctrl.FilterTasks(q)})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.FormValue("text"))
	if _, err := s.ctrl.CreateTask(r.Context(), text); err != nil && !errors.Is(err, tasks.ErrEmptyText) {
		slog.Error("create task", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ctrl.Task(chi.URLParam(r, "id"))
	if !ok {
		redirectHome(w, r)
		return
	}
	render(w, s.pages.edit, editData{ID: t.ID, Question: view.EditPromptQuestion, Text: t.Text})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	_, err := s.ctrl.RenameTask(r.Context(), chi.URLParam(r, "id"), r.FormValue("text"))
	if err != nil && !errors.Is(err, tasks.ErrEmptyText) && !errors.Is(err, tasks.ErrTaskNotFound) {
		slog.Error("rename task", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ctrl.Task(chi.URLParam(r, "id"))
	if !ok {
		redirectHome(w, r)
		return
	}
	render(w, s.pages.confirm, confirmData{
		Question: view.ConfirmDeleteQuestion,
		Text:     t.Text,
		Action:   "/tasks/" + t.ID + "/delete",
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("confirm") == "yes" {
		if err := s.ctrl.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
			slog.Error("delete task", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	redirectHome(w, r)
}

func (s *Server) handleClearConfirm(w http.ResponseWriter, _ *http.Request) {
	render(w, s.pages.confirm, confirmData{Question: view.ConfirmClearQuestion, Action: "/clear"})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("confirm") == "yes" {
		if err := s.ctrl.ClearAll(r.Context()); err != nil {
			slog.Error("clear tasks", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	redirectHome(w, r)
}
