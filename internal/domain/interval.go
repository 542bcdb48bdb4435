package domain

import (
	"time"

	"github.com/google/uuid"
)

// IntervalSource identifies who wrote a sleep interval into the health store.
// @Description Provenance of a sleep interval: APP for sessions recorded by this app, THIRD_PARTY for other connected sources, USER_ENTERED for manual entries.
type IntervalSource string

const (
	// SourceApp marks intervals written by this app on session end
	SourceApp IntervalSource = "APP"
	// SourceThirdParty marks intervals imported from other data sources
	SourceThirdParty IntervalSource = "THIRD_PARTY"
	// SourceUserEntered marks manually entered intervals (excluded from aggregation)
	SourceUserEntered IntervalSource = "USER_ENTERED"
)

// SleepCategory is the sleep-analysis category of an interval.
// @Description Sleep stage category. Only ASLEEP_* categories count toward nightly totals.
type SleepCategory string

const (
	CategoryAsleepCore        SleepCategory = "ASLEEP_CORE"
	CategoryAsleepDeep        SleepCategory = "ASLEEP_DEEP"
	CategoryAsleepREM         SleepCategory = "ASLEEP_REM"
	CategoryAsleepUnspecified SleepCategory = "ASLEEP_UNSPECIFIED"
	CategoryAwake             SleepCategory = "AWAKE"
	CategoryInBed             SleepCategory = "IN_BED"
)

// IsAsleep reports whether intervals of this category count as actual sleep.
func (c SleepCategory) IsAsleep() bool {
	switch c {
	case CategoryAsleepCore, CategoryAsleepDeep, CategoryAsleepREM, CategoryAsleepUnspecified:
		return true
	}
	return false
}

type SleepInterval struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_sleep_intervals_user_start" json:"user_id"`
	StartAt   time.Time      `gorm:"not null;index:idx_sleep_intervals_user_start,sort:desc" json:"start_at"`
	EndAt     time.Time      `gorm:"not null" json:"end_at"`
	Source    IntervalSource `gorm:"type:varchar(16);not null" json:"source"`
	Category  SleepCategory  `gorm:"type:varchar(24);not null" json:"category"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepInterval) TableName() string {
	return "sleep_intervals"
}

// MergedInterval is a non-overlapping run of asleep time.
// Invariant: for consecutive merged intervals, End <= next Start.
type MergedInterval struct {
	Start time.Time
	End   time.Time
}

// SleepDay is one night of sleep, keyed by its bucket start instant
// (the cutoff hour on the evening the night began, not midnight).
// @Description Per-night sleep total. Date is the bucket start instant.
type SleepDay struct {
	// Bucket start instant (cutoff hour local time)
	Date time.Time `json:"date" example:"2024-01-15T12:00:00+01:00"`
	// Total asleep hours for the night, rounded to 1 decimal
	Hours float64 `json:"hours" example:"7.5"`
}

// CreateIntervalRequest is the request body for importing a sleep interval.
// @Description Request payload for writing a sleep interval into the health store.
type CreateIntervalRequest struct {
	// Interval start time in RFC3339 format
	StartAt time.Time `json:"start_at" validate:"required" example:"2024-01-15T23:00:00Z"`
	// Interval end time (must be after start_at)
	EndAt time.Time `json:"end_at" validate:"required,gtfield=StartAt" example:"2024-01-16T07:00:00Z"`
	// Provenance tag
	Source IntervalSource `json:"source" validate:"required,oneof=THIRD_PARTY USER_ENTERED" example:"THIRD_PARTY" enums:"THIRD_PARTY,USER_ENTERED"`
	// Sleep stage category
	Category SleepCategory `json:"category" validate:"required,oneof=ASLEEP_CORE ASLEEP_DEEP ASLEEP_REM ASLEEP_UNSPECIFIED AWAKE IN_BED" example:"ASLEEP_CORE"`
}

// IntervalResponse is the response body for sleep interval endpoints.
// @Description Sleep interval record.
type IntervalResponse struct {
	ID        uuid.UUID      `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID    uuid.UUID      `json:"user_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	StartAt   time.Time      `json:"start_at" example:"2024-01-15T23:00:00Z"`
	EndAt     time.Time      `json:"end_at" example:"2024-01-16T07:00:00Z"`
	Source    IntervalSource `json:"source" example:"APP"`
	Category  SleepCategory  `json:"category" example:"ASLEEP_UNSPECIFIED"`
	CreatedAt time.Time      `json:"created_at" example:"2024-01-16T07:05:00Z"`
}

func (i *SleepInterval) ToResponse() IntervalResponse {
	return IntervalResponse{
		ID:        i.ID,
		UserID:    i.UserID,
		StartAt:   i.StartAt,
		EndAt:     i.EndAt,
		Source:    i.Source,
		Category:  i.Category,
		CreatedAt: i.CreatedAt,
	}
}

// IntervalListResponse is the response body for listing sleep intervals.
// @Description Paginated list of sleep intervals.
type IntervalListResponse struct {
	Data       []IntervalResponse `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// IntervalFilter contains filter parameters for listing sleep intervals
type IntervalFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
