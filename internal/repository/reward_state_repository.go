package repository

import (
	"context"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RewardStateRepository tracks the last credit count each user was
// notified about, so crossing a milestone signals exactly once.
type RewardStateRepository interface {
	LastNotifiedCredits(ctx context.Context, userID uuid.UUID) (int, error)
	SetLastNotifiedCredits(ctx context.Context, userID uuid.UUID, credits int) error
}

type rewardStateRepository struct {
	db *gorm.DB
}

func NewRewardStateRepository(db *gorm.DB) RewardStateRepository {
	return &rewardStateRepository{db: db}
}

func (r *rewardStateRepository) LastNotifiedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	var rec domain.RewardState
	err := r.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return rec.LastNotifiedCredits, nil
}

func (r *rewardStateRepository) SetLastNotifiedCredits(ctx context.Context, userID uuid.UUID, credits int) error {
	rec := domain.RewardState{
		UserID:              userID,
		LastNotifiedCredits: credits,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_notified_credits", "updated_at"}),
		}).
		Create(&rec).Error
}
