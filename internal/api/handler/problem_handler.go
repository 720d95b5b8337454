package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"leet_tracker/internal/app/service"
	"leet_tracker/internal/common"
	"leet_tracker/internal/domain/model"
)

type ProblemHandler struct {
	problemService *service.ProblemService
	logger         *zap.Logger
}

func NewProblemHandler(ps *service.ProblemService, logger *zap.Logger) *ProblemHandler {
	return &ProblemHandler{problemService: ps, logger: logger}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProblems)                // GET /api/problems
	r.Post("/", h.createProblem)              // POST /api/problems
	r.Get("/{problemID}", h.getProblem)       // GET /api/problems/42
	r.Put("/{problemID}", h.updateProblem)    // PUT /api/problems/42
	r.Delete("/{problemID}", h.deleteProblem) // DELETE /api/problems/42
}

// RegisterStatsRoutes mounts the per-user counters next to the problem routes.
func (h *ProblemHandler) RegisterStatsRoutes(r chi.Router) {
	r.Get("/stats", h.getStats) // GET /api/stats
}

func (h *ProblemHandler) createProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req model.ProblemInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	problem, err := h.problemService.CreateProblem(r.Context(), userID, req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to create problem")
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, problem)
}

func (h *ProblemHandler) listProblems(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	limit, ok := queryInt(r, "limit")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	offset, ok := queryInt(r, "offset")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}

	query := r.URL.Query()
	problems, err := h.problemService.ListProblems(r.Context(), userID, service.ListProblemsRequest{
		Search:     query.Get("search"),
		Difficulty: query.Get("difficulty"),
		Category:   query.Get("category"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to fetch problems")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problems)
}

func (h *ProblemHandler) getProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := problemIDParam(w, r)
	if !ok {
		return
	}

	problem, err := h.problemService.GetProblem(r.Context(), userID, id)
	if err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to fetch problem")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) updateProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := problemIDParam(w, r)
	if !ok {
		return
	}

	var req service.UpdateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	problem, err := h.problemService.UpdateProblem(r.Context(), userID, id, req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to update problem")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) deleteProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := problemIDParam(w, r)
	if !ok {
		return
	}

	if err := h.problemService.DeleteProblem(r.Context(), userID, id); err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to delete problem")
		return
	}
	common.RespondNoContent(w)
}

func (h *ProblemHandler) getStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.problemService.GetStats(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to fetch stats")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
