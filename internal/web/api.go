package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dohr-michael/tasklist/internal/tasks"
)

type taskRequest struct {
	Text string `json:"text"`
}

func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (taskRequest, error) {
	var req taskRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req)
	return req, err
}

func (s *Server) apiList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.FilterTasks(r.URL.Query().Get("q")))
}

func (s *Server) apiCreate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTaskRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	t, err := s.ctrl.CreateTask(r.Context(), strings.TrimSpace(req.Text))
	switch {
	case errors.Is(err, tasks.ErrEmptyText):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		slog.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, t)
	}
}

func (s *Server) apiRename(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTaskRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	t, err := s.ctrl.RenameTask(r.Context(), chi.URLParam(r, "id"), req.Text)
	switch {
	case errors.Is(err, tasks.ErrEmptyText):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, tasks.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		slog.Error("rename task", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, t)
	}
}

func (s *Server) apiDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("delete task", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiClear(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.ClearAll(r.Context()); err != nil {
		slog.Error("clear tasks", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
