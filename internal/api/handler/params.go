package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"leet_tracker/internal/api/middleware"
	"leet_tracker/internal/common"
)

// problemIDParam parses the {problemID} path segment, answering 400 itself
// when it is not a positive integer.
func problemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "problemID"), 10, 64)
	if err != nil || id <= 0 {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid problem ID")
		return 0, false
	}
	return id, true
}

func userIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok || userID == "" {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return "", false
	}
	return userID, true
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
