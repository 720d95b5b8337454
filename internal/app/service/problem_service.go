package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug" // For slug generation

	"leet_tracker/internal/common"
	"leet_tracker/internal/domain/model"
	"leet_tracker/internal/domain/repository"
)

type ProblemService struct {
	problemRepo  repository.ProblemRepository
	defaultLimit int
	maxLimit     int
}

func NewProblemService(problemRepo repository.ProblemRepository, defaultLimit, maxLimit int) *ProblemService {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &ProblemService{
		problemRepo:  problemRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// UpdateProblemRequest is a partial ProblemInput; nil fields are left as-is.
type UpdateProblemRequest struct {
	ProblemNumber *int    `json:"problemNumber,omitempty"`
	Title         *string `json:"title,omitempty"`
	Difficulty    *string `json:"difficulty,omitempty"`
	Category      *string `json:"category,omitempty"`
	Description   *string `json:"description,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Solution      *string `json:"solution,omitempty"`
}

type ListProblemsRequest struct {
	Search     string
	Difficulty string
	Category   string
	Limit      int
	Offset     int
}

func (s *ProblemService) CreateProblem(ctx context.Context, userID string, req model.ProblemInput) (*model.Problem, error) {
	title := strings.TrimSpace(req.Title)
	if req.ProblemNumber <= 0 {
		return nil, common.ValidationError("problemNumber must be a positive integer")
	}
	if title == "" {
		return nil, common.ValidationError("title is required")
	}
	if strings.TrimSpace(req.Solution) == "" {
		return nil, common.ValidationError("solution is required")
	}
	difficulty, ok := model.ParseDifficulty(req.Difficulty)
	if !ok {
		return nil, common.ValidationError("difficulty must be one of easy, medium, hard")
	}

	problem := &model.Problem{
		UserID:        userID,
		ProblemNumber: req.ProblemNumber,
		Title:         title,
		Slug:          slug.Make(title),
		Difficulty:    difficulty,
		Category:      strings.TrimSpace(req.Category),
		Description:   req.Description,
		Notes:         req.Notes,
		Solution:      req.Solution,
	}
	if err := s.problemRepo.Create(ctx, problem); err != nil {
		return nil, fmt.Errorf("failed to create problem: %w", err)
	}
	return problem, nil
}

func (s *ProblemService) GetProblem(ctx context.Context, userID string, id int64) (*model.Problem, error) {
	problem, err := s.problemRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get problem %d: %w", id, err)
	}
	return problem, nil
}

func (s *ProblemService) UpdateProblem(ctx context.Context, userID string, id int64, req UpdateProblemRequest) (*model.Problem, error) {
	patch := model.ProblemPatch{
		ProblemNumber: req.ProblemNumber,
		Category:      req.Category,
		Description:   req.Description,
		Notes:         req.Notes,
		Solution:      req.Solution,
	}
	if req.ProblemNumber != nil && *req.ProblemNumber <= 0 {
		return nil, common.ValidationError("problemNumber must be a positive integer")
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, common.ValidationError("title cannot be empty")
		}
		problemSlug := slug.Make(title)
		patch.Title = &title
		patch.Slug = &problemSlug
	}
	if req.Difficulty != nil {
		difficulty, ok := model.ParseDifficulty(*req.Difficulty)
		if !ok {
			return nil, common.ValidationError("difficulty must be one of easy, medium, hard")
		}
		patch.Difficulty = &difficulty
	}
	if req.Solution != nil && strings.TrimSpace(*req.Solution) == "" {
		return nil, common.ValidationError("solution cannot be empty")
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		patch.Category = &category
	}

	problem, err := s.problemRepo.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update problem %d: %w", id, err)
	}
	return problem, nil
}

func (s *ProblemService) DeleteProblem(ctx context.Context, userID string, id int64) error {
	if err := s.problemRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete problem %d: %w", id, err)
	}
	return nil
}

// ListProblems applies the default page size when Limit is unset and clamps
// it to the configured maximum.
func (s *ProblemService) ListProblems(ctx context.Context, userID string, req ListProblemsRequest) ([]model.Problem, error) {
	filter := model.ProblemFilter{
		Search:   strings.TrimSpace(req.Search),
		Category: strings.TrimSpace(req.Category),
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	if req.Difficulty != "" {
		difficulty, ok := model.ParseDifficulty(req.Difficulty)
		if !ok {
			return nil, common.ValidationError("difficulty must be one of easy, medium, hard")
		}
		filter.Difficulty = difficulty
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, common.ValidationError("limit and offset must not be negative")
	}
	if filter.Limit == 0 {
		filter.Limit = s.defaultLimit
	}
	if filter.Limit > s.maxLimit {
		filter.Limit = s.maxLimit
	}

	problems, err := s.problemRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

func (s *ProblemService) GetStats(ctx context.Context, userID string) (*model.ProblemStats, error) {
	stats, err := s.problemRepo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}
