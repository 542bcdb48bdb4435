package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gobigbed/bigbed/internal/api/validation"
	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/motion"
	"github.com/gobigbed/bigbed/internal/service"
	"github.com/gobigbed/bigbed/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionHandler exposes the sleep-session state machine over HTTP.
type SessionHandler struct {
	service service.TrackerService
}

func NewSessionHandler(service service.TrackerService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Start handles POST /v1/users/{userId}/session/start
// @Summary Start a sleep session
// @Description Begin tracking a sleep session. Only allowed inside the nightly window (evening start hour through the cutoff hour). Starting while already running returns the current session unchanged.
// @Tags session
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.SessionSnapshot "Session snapshot"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 409 {object} problem.Problem "Outside the allowed session window"
// @Failure 503 {object} problem.Problem "No motion source available"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/session/start [post]
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	snap, err := h.service.Start(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrOutsideWindow) {
			problem.Conflict("Sessions can only start between the evening window start and the cutoff hour").Write(w)
			return
		}
		if errors.Is(err, motion.ErrNoSource) {
			problem.ServiceUnavailable("No motion source available; session not started").Write(w)
			return
		}
		problem.InternalError("Failed to start session").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// End handles POST /v1/users/{userId}/session/end
// @Summary End the running sleep session
// @Description Stop the session and record it to the health store. Sessions shorter than 30 minutes are discarded (recorded=false with a reason). The effective end is clamped to the cutoff boundary.
// @Tags session
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.EndSessionResponse "End-of-session outcome"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 409 {object} problem.Problem "No session is running"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/session/end [post]
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	res, err := h.service.End(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrSessionNotActive) {
			problem.Conflict("No session is running").Write(w)
			return
		}
		problem.InternalError("Failed to end session").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Abandon handles POST /v1/users/{userId}/session/abandon
// @Summary Abandon the running sleep session
// @Description End the session and discard the outcome. No-op when idle.
// @Tags session
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 204 "Session abandoned"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/session/abandon [post]
func (h *SessionHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	if err := h.service.Abandon(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to abandon session").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /v1/users/{userId}/session
// @Summary Get the session snapshot
// @Description Current session state: running flag, start time, elapsed HH:MM:SS, cutoff boundary, window availability, and the last recorded range or save error.
// @Tags session
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.SessionSnapshot "Session snapshot"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/session [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	snap, err := h.service.Snapshot(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to get session").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// MotionSamples handles POST /v1/users/{userId}/session/motion-samples
// @Summary Push motion samples
// @Description Feed a batch of 3-axis acceleration samples (g units) into the anti-cheat monitor of the running session. Samples beyond the feed buffer are dropped.
// @Tags session
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.MotionBatchRequest true "Motion sample batch"
// @Success 202 {object} handler.MotionSamplesResponse "Samples accepted"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 409 {object} problem.Problem "No session is running"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/session/motion-samples [post]
func (h *SessionHandler) MotionSamples(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.MotionBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	accepted, err := h.service.IngestSamples(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrSessionNotActive) {
			problem.Conflict("No session is running").Write(w)
			return
		}
		problem.InternalError("Failed to ingest motion samples").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(MotionSamplesResponse{Accepted: accepted})
}

// MotionSamplesResponse reports how many samples entered the feed.
// @Description Number of motion samples accepted into the feed.
type MotionSamplesResponse struct {
	Accepted int `json:"accepted" example:"40"`
}
