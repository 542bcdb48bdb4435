package service

import (
	"context"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/llm"
	"github.com/google/uuid"
)

const (
	// Window sizes for insights
	HistoryWindowDays = 30
	RecentWindowDays  = 7
)

// InsightsService generates a narrative insight over recent nights.
type InsightsService interface {
	Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error)
}

type insightsService struct {
	summaryService SummaryService
	rewardsService RewardsService
	llmClient      llm.InsightsLLM
}

func NewInsightsService(summaryService SummaryService, rewardsService RewardsService, llmClient llm.InsightsLLM) InsightsService {
	return &insightsService{
		summaryService: summaryService,
		rewardsService: rewardsService,
		llmClient:      llmClient,
	}
}

func (s *insightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	if s.llmClient == nil {
		return nil, llm.ErrOpenAIUnavailable
	}

	recent, err := s.summaryService.LastNights(ctx, userID, RecentWindowDays)
	if err != nil {
		return nil, err
	}
	history, err := s.summaryService.LastNights(ctx, userID, HistoryWindowDays)
	if err != nil {
		return nil, err
	}
	rewards, err := s.rewardsService.Compute(ctx, userID, DefaultRewardsWindowDays)
	if err != nil {
		return nil, err
	}

	return s.llmClient.GenerateInsights(ctx, &llm.InsightsContext{
		RecentNights:  recent,
		HistoryNights: history,
		Rewards:       rewards,
	})
}
