package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solodesk/solodesk/internal/auth"
	"github.com/solodesk/solodesk/internal/model"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeMutationErr maps service errors onto the caller-facing taxonomy:
// not-found/access-denied is the one distinguished case, everything else is
// a generic failure.
func writeMutationErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeErr(w, http.StatusNotFound, "NOT_FOUND")
	case errors.Is(err, model.ErrInvalidArgument):
		writeErr(w, http.StatusBadRequest, "INVALID_ARGUMENT")
	default:
		writeErr(w, http.StatusInternalServerError, "INTERNAL")
	}
}

func urlID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// scope extracts the caller's workspace; the auth middleware guarantees it
// is present on every route in the authenticated group.
func scope(r *http.Request) model.TaskScope {
	s, _ := auth.FromContext(r.Context())
	if s == nil {
		return model.TaskScope{}
	}
	return model.TaskScope{TeamID: s.TeamID, UserID: s.UserID}
}
