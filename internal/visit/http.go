package visit

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

// /api/visits  (collection)
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
		v, err := h.repo.Create(in)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, v)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/visits/{id} and /api/visits/{id}/{book|unbook}
func (h *Handler) Sub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/visits/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	parts := strings.Split(tail, "/")
	id := parts[0]

	if len(parts) == 1 {
		if r.Method != http.MethodDelete {
			writeErr(w, 405, "method not allowed")
			return
		}
		if err := h.repo.Delete(id); err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"ok": true})
		return
	}

	if len(parts) != 2 || r.Method != http.MethodPost {
		writeErr(w, 404, "not found")
		return
	}

	switch parts[1] {
	case "book":
		var in struct {
			HelperName string `json:"helperName"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		v, err := h.repo.Book(id, in.HelperName)
		h.respond(w, v, err)

	case "unbook":
		v, err := h.repo.Unbook(id)
		h.respond(w, v, err)

	default:
		writeErr(w, 404, "not found")
	}
}

func (h *Handler) respond(w http.ResponseWriter, v Visit, err error) {
	if errors.Is(err, ErrNotFound) {
		writeErr(w, 404, "not found")
		return
	}
	if errors.Is(err, ErrAlreadyBooked) {
		writeErr(w, 409, err.Error())
		return
	}
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, v)
}
