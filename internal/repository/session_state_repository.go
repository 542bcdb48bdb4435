package repository

import (
	"context"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionStateRepository persists the per-user session running flag and
// start time as a single row, so both survive or vanish together.
type SessionStateRepository interface {
	Load(ctx context.Context, userID uuid.UUID) (running bool, start time.Time, err error)
	Save(ctx context.Context, userID uuid.UUID, start time.Time) error
	Clear(ctx context.Context, userID uuid.UUID) error
	// ListRunning returns all persisted running sessions, for bootstrap.
	ListRunning(ctx context.Context) ([]domain.SessionStateRecord, error)
}

type sessionStateRepository struct {
	db *gorm.DB
}

func NewSessionStateRepository(db *gorm.DB) SessionStateRepository {
	return &sessionStateRepository{db: db}
}

func (r *sessionStateRepository) Load(ctx context.Context, userID uuid.UUID) (bool, time.Time, error) {
	var rec domain.SessionStateRecord
	err := r.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, time.Time{}, nil
		}
		return false, time.Time{}, err
	}
	if !rec.IsRunning {
		return false, time.Time{}, nil
	}
	if rec.StartAt == nil {
		// Running flag without a start time: report inconsistency as-is and
		// let the state machine fail safe toward idle.
		return true, time.Time{}, nil
	}
	return true, *rec.StartAt, nil
}

func (r *sessionStateRepository) Save(ctx context.Context, userID uuid.UUID, start time.Time) error {
	rec := domain.SessionStateRecord{
		UserID:    userID,
		IsRunning: true,
		StartAt:   &start,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_running", "start_at", "updated_at"}),
		}).
		Create(&rec).Error
}

func (r *sessionStateRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.SessionStateRecord{}, "user_id = ?", userID).Error
}

func (r *sessionStateRepository) ListRunning(ctx context.Context) ([]domain.SessionStateRecord, error) {
	var recs []domain.SessionStateRecord
	err := r.db.WithContext(ctx).
		Where("is_running = ?", true).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
