package domain

import (
	"time"

	"github.com/google/uuid"
)

// RewardState persists the last credit count the user was notified about,
// so a credit-increase signal fires once per crossed milestone.
type RewardState struct {
	UserID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LastNotifiedCredits int       `gorm:"not null;default:0" json:"last_notified_credits"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RewardState) TableName() string {
	return "reward_states"
}

// RewardsResponse is the response body for the rewards endpoint.
// @Description Point totals and milestone progress.
type RewardsResponse struct {
	// Sum of round(hours*10) over the window's nights
	TotalPoints int `json:"total_points" example:"155"`
	// Completed milestones (total_points / milestone_cap)
	Credits int `json:"credits" example:"1"`
	// Progress through the current milestone cycle, 0..1
	CycleProgress float64 `json:"cycle_progress" example:"0.55"`
	// Points required per credit
	MilestoneCap int `json:"milestone_cap" example:"100"`
	// Credits earned since the last time this endpoint was read
	NewCredits int `json:"new_credits" example:"1"`
	// Number of nights contributing to the total
	WindowDays int `json:"window_days" example:"40"`
}

// InsightsResponse is the LLM-generated sleep insight payload.
// @Description Non-medical narrative insight over recent nights.
type InsightsResponse struct {
	// 2-3 sentence summary of recent sleep
	Summary string `json:"summary"`
	// Observed patterns in nightly totals
	Observations []string `json:"observations"`
	// Behavioral suggestions
	Guidance []string `json:"guidance"`
}
