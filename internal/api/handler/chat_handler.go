package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"leet_tracker/internal/app/service"
	"leet_tracker/internal/common"
)

type ChatHandler struct {
	chatService     *service.ChatService
	analysisService *service.AnalysisService
	logger          *zap.Logger
}

func NewChatHandler(cs *service.ChatService, as *service.AnalysisService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chatService: cs, analysisService: as, logger: logger}
}

type postMessageRequest struct {
	Message string `json:"message"`
}

// RegisterRoutes expects to be mounted under /problems.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{problemID}/chat", h.listMessages)
	r.Post("/{problemID}/chat", h.postMessage)
	r.Get("/{problemID}/analyze", h.analyze)
	r.Post("/{problemID}/analyze", h.analyze)
}

func (h *ChatHandler) listMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	problemID, ok := problemIDParam(w, r)
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), userID, problemID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to fetch chat messages")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) postMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	problemID, ok := problemIDParam(w, r)
	if !ok {
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	exchange, err := h.chatService.PostMessage(r.Context(), userID, problemID, req.Message)
	if err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to create chat message")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, exchange)
}

func (h *ChatHandler) analyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}
	problemID, ok := problemIDParam(w, r)
	if !ok {
		return
	}

	analysis, err := h.analysisService.AnalyzeProblem(r.Context(), userID, problemID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to analyze code")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, analysis)
}
