package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStateRecord is the durable mirror of an in-progress session.
// The running flag and start time live in one row so a crash can never
// leave a partial pair behind.
type SessionStateRecord struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	IsRunning bool       `gorm:"not null" json:"is_running"`
	StartAt   *time.Time `json:"start_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SessionStateRecord) TableName() string {
	return "session_states"
}

// SessionSnapshot is the response body for session status endpoints.
// @Description Current state of the user's sleep session.
type SessionSnapshot struct {
	// True while a session is running
	Running bool `json:"running" example:"true"`
	// Session start time (omitted when idle)
	StartAt *time.Time `json:"start_at,omitempty" example:"2024-01-15T23:00:00Z"`
	// Seconds elapsed since start
	ElapsedSeconds float64 `json:"elapsed_seconds" example:"2700"`
	// Elapsed time formatted as HH:MM:SS
	Elapsed string `json:"elapsed" example:"00:45:00"`
	// Hard cutoff at which the session auto-ends (omitted when idle)
	CutoffAt *time.Time `json:"cutoff_at,omitempty" example:"2024-01-16T12:00:00+01:00"`
	// True if a new session may be started right now
	WithinWindow bool `json:"within_window" example:"true"`
	// Range of the most recently recorded session, if any
	LastSavedStart *time.Time `json:"last_saved_start,omitempty"`
	LastSavedEnd   *time.Time `json:"last_saved_end,omitempty"`
	// Error from the most recent health-store write, if it failed
	LastSaveError string `json:"last_save_error,omitempty"`
}

// EndSessionResponse is the response body for ending a session.
// @Description Outcome of an ended sleep session.
type EndSessionResponse struct {
	// Session start time
	StartAt time.Time `json:"start_at" example:"2024-01-15T23:00:00Z"`
	// Wall-clock time the session was stopped
	RawEndAt time.Time `json:"raw_end_at" example:"2024-01-16T07:00:00Z"`
	// End time clamped to the cutoff boundary
	EffectiveEndAt time.Time `json:"effective_end_at" example:"2024-01-16T07:00:00Z"`
	// Credited session length in seconds
	Seconds float64 `json:"seconds" example:"28800"`
	// True if the session was written to the health store
	Recorded bool `json:"recorded" example:"true"`
	// Why the session was not recorded, when recorded is false
	Reason string `json:"reason,omitempty" example:"below minimum session length"`
}

// MotionSampleRequest is one accelerometer sample in a motion batch.
// @Description Single 3-axis acceleration sample in g units.
type MotionSampleRequest struct {
	X float64 `json:"x" example:"0.01"`
	Y float64 `json:"y" example:"-0.02"`
	Z float64 `json:"z" example:"0.99"`
	// Sample timestamp; defaults to server time when omitted
	At *time.Time `json:"at,omitempty" example:"2024-01-15T23:10:00Z"`
}

// MotionBatchRequest is the request body for ingesting motion samples.
type MotionBatchRequest struct {
	Samples []MotionSampleRequest `json:"samples" validate:"required,min=1,max=1000,dive"`
}
