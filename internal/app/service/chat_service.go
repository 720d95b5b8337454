package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leet_tracker/internal/app/assistant"
	"leet_tracker/internal/common"
	"leet_tracker/internal/domain/model"
	"leet_tracker/internal/domain/repository"
)

type ChatService struct {
	chatRepo    repository.ChatRepository
	problemRepo repository.ProblemRepository
	logger      *zap.Logger
}

func NewChatService(chatRepo repository.ChatRepository, problemRepo repository.ProblemRepository, logger *zap.Logger) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		problemRepo: problemRepo,
		logger:      logger,
	}
}

// ListMessages returns the caller's conversation about a problem. A problem
// that does not exist or belongs to someone else yields an empty list.
func (s *ChatService) ListMessages(ctx context.Context, userID string, problemID int64) ([]model.ChatMessage, error) {
	messages, err := s.chatRepo.ListByProblem(ctx, problemID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}

// PostMessage stores the caller's message together with the assistant's
// reply. Both rows are written atomically and share an exchange id.
func (s *ChatService) PostMessage(ctx context.Context, userID string, problemID int64, message string) (*model.ChatExchange, error) {
	if strings.TrimSpace(message) == "" {
		return nil, common.ValidationError("message is required")
	}

	problem, err := s.problemRepo.FindByID(ctx, problemID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem %d: %w", problemID, err)
	}

	previous, err := s.chatRepo.ListByProblem(ctx, problemID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	history := make([]assistant.Turn, len(previous))
	for i, m := range previous {
		history[i] = assistant.Turn{Message: m.Message, IsAI: m.IsAI}
	}

	reply := assistant.Respond(assistant.Prompt{
		Message:            message,
		Solution:           problem.Solution,
		ProblemTitle:       problem.Title,
		ProblemDescription: problem.Description,
		History:            history,
	})
	s.logger.Debug("Generated chat reply",
		zap.Int64("problem_id", problemID),
		zap.String("intent", assistant.Classify(message)),
	)

	exchangeID := uuid.NewString()
	exchange := &model.ChatExchange{
		UserMessage: &model.ChatMessage{ProblemID: problemID, UserID: userID, ExchangeID: exchangeID, Message: message},
		AIMessage:   &model.ChatMessage{ProblemID: problemID, UserID: userID, ExchangeID: exchangeID, Message: reply, IsAI: true},
	}
	if err := s.chatRepo.AppendExchange(ctx, exchange.UserMessage, exchange.AIMessage); err != nil {
		return nil, fmt.Errorf("failed to save chat exchange: %w", err)
	}
	return exchange, nil
}
