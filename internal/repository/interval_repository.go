package repository

import (
	"context"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntervalRepository is the health data source: a multi-writer store of
// sleep intervals. The app appends rows on session end; third parties and
// manual entries land here too, tagged by source.
type IntervalRepository interface {
	Create(ctx context.Context, interval *domain.SleepInterval) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepInterval, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.IntervalFilter) ([]domain.SleepInterval, error)
	// ListOverlapping returns all intervals overlapping [from, to), ascending
	// by start time, regardless of source or category. Filtering is the
	// aggregator's job.
	ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SleepInterval, error)
}

type intervalRepository struct {
	db *gorm.DB
}

func NewIntervalRepository(db *gorm.DB) IntervalRepository {
	return &intervalRepository{db: db}
}

func (r *intervalRepository) Create(ctx context.Context, interval *domain.SleepInterval) error {
	return r.db.WithContext(ctx).Create(interval).Error
}

func (r *intervalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepInterval, error) {
	var interval domain.SleepInterval
	err := r.db.WithContext(ctx).First(&interval, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &interval, nil
}

func (r *intervalRepository) List(ctx context.Context, userID uuid.UUID, filter domain.IntervalFilter) ([]domain.SleepInterval, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_at DESC")

	// Apply time filters
	if filter.From != nil {
		query = query.Where("start_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_at <= ?", filter.To)
	}

	// Apply cursor pagination
	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: get records with start_at < cursor.StartAt
			// or same start_at but id < cursor.ID
			query = query.Where(
				"(start_at < ?) OR (start_at = ? AND id < ?)",
				cursor.StartAt, cursor.StartAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var intervals []domain.SleepInterval
	if err := query.Find(&intervals).Error; err != nil {
		return nil, err
	}

	return intervals, nil
}

func (r *intervalRepository) ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SleepInterval, error) {
	var intervals []domain.SleepInterval
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("start_at < ?", to).
		Where("end_at > ?", from).
		Order("start_at ASC").
		Find(&intervals).Error
	if err != nil {
		return nil, err
	}
	return intervals, nil
}
