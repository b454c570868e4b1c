package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// /api/tasks  (collection)
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, 200, h.repo.List())

	case http.MethodPost:
		var in CreateInput
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		t, err := h.repo.Create(in)
		if errors.Is(err, ErrEmptyTitle) {
			writeErr(w, 400, err.Error())
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, t)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/tasks/{id} and /api/tasks/{id}/{claim|unclaim|complete}
func (h *Handler) Sub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	parts := strings.Split(tail, "/")
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodPatch:
			var p Patch
			if err := decodeJSON(r, &p); err != nil {
				writeErr(w, 400, "bad json")
				return
			}
			t, err := h.repo.Update(id, p)
			h.respond(w, t, err)

		case http.MethodDelete:
			if err := h.repo.Delete(id); err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			writeJSON(w, 200, map[string]any{"ok": true})

		default:
			writeErr(w, 405, "method not allowed")
		}
		return
	}

	if len(parts) != 2 || r.Method != http.MethodPost {
		writeErr(w, 404, "not found")
		return
	}

	switch parts[1] {
	case "claim":
		var in struct {
			HelperName string `json:"helperName"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		t, err := h.repo.Claim(id, in.HelperName)
		h.respond(w, t, err)

	case "unclaim":
		t, err := h.repo.Unclaim(id)
		h.respond(w, t, err)

	case "complete":
		t, err := h.repo.Complete(id)
		h.respond(w, t, err)

	default:
		writeErr(w, 404, "not found")
	}
}

func (h *Handler) respond(w http.ResponseWriter, t Task, err error) {
	if errors.Is(err, ErrNotFound) {
		writeErr(w, 404, "not found")
		return
	}
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, t)
}
