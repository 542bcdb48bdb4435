package service

import (
	"context"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/repository"
	"github.com/gobigbed/bigbed/internal/reward"
	"github.com/google/uuid"
)

// DefaultRewardsWindowDays is the trailing window over which points accrue.
const DefaultRewardsWindowDays = 40

// RewardsService computes point totals and milestone progress.
type RewardsService interface {
	// Compute returns the user's rewards for the trailing window. Reading
	// advances the last-notified credit marker, so NewCredits reports each
	// crossed milestone exactly once.
	Compute(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.RewardsResponse, error)
}

type rewardsService struct {
	summaryService  SummaryService
	rewardStateRepo repository.RewardStateRepository
	milestoneCap    int
}

func NewRewardsService(summaryService SummaryService, rewardStateRepo repository.RewardStateRepository, milestoneCap int) RewardsService {
	if milestoneCap <= 0 {
		milestoneCap = reward.DefaultMilestoneCap
	}
	return &rewardsService{
		summaryService:  summaryService,
		rewardStateRepo: rewardStateRepo,
		milestoneCap:    milestoneCap,
	}
}

func (s *rewardsService) Compute(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.RewardsResponse, error) {
	if windowDays <= 0 {
		windowDays = DefaultRewardsWindowDays
	}

	nights, err := s.summaryService.LastNights(ctx, userID, windowDays)
	if err != nil {
		return nil, err
	}

	total := reward.TotalPoints(nights)
	m := reward.MilestoneFor(total, s.milestoneCap)

	resp := &domain.RewardsResponse{
		TotalPoints:   m.TotalPoints,
		Credits:       m.Credits,
		CycleProgress: m.CycleProgress,
		MilestoneCap:  s.milestoneCap,
		WindowDays:    windowDays,
	}

	last, err := s.rewardStateRepo.LastNotifiedCredits(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m.Credits > last {
		resp.NewCredits = m.Credits - last
		if err := s.rewardStateRepo.SetLastNotifiedCredits(ctx, userID, m.Credits); err != nil {
			return nil, err
		}
	}

	return resp, nil
}
