package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"leet_tracker/internal/app/assistant"
	"leet_tracker/internal/domain/model"
	"leet_tracker/internal/domain/repository"
	"leet_tracker/internal/platform/cache"
)

type AnalysisService struct {
	problemRepo repository.ProblemRepository
	cache       cache.AnalysisCache
	logger      *zap.Logger
}

func NewAnalysisService(problemRepo repository.ProblemRepository, analysisCache cache.AnalysisCache, logger *zap.Logger) *AnalysisService {
	if analysisCache == nil {
		analysisCache = cache.Noop{}
	}
	return &AnalysisService{
		problemRepo: problemRepo,
		cache:       analysisCache,
		logger:      logger,
	}
}

// AnalyzeProblem summarizes the stored solution of one of the caller's
// problems. Cache failures are logged and never fail the request.
func (s *AnalysisService) AnalyzeProblem(ctx context.Context, userID string, problemID int64) (*model.CodeAnalysis, error) {
	problem, err := s.problemRepo.FindByID(ctx, problemID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem %d: %w", problemID, err)
	}

	key := cache.AnalysisKey(problem.Solution)
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Analysis cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	analysis := SummarizeAnalysis(assistant.Analyze(problem.Solution, problem.Title))
	if err := s.cache.Set(ctx, key, analysis); err != nil {
		s.logger.Warn("Analysis cache store failed", zap.String("key", key), zap.Error(err))
	}
	return analysis, nil
}

// SummarizeAnalysis keeps the client-facing subset of an analysis.
func SummarizeAnalysis(a assistant.Analysis) *model.CodeAnalysis {
	return &model.CodeAnalysis{
		TimeComplexity:  a.TimeComplexity,
		SpaceComplexity: a.SpaceComplexity,
		Suggestions:     a.Suggestions,
	}
}
