package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/service"
	"github.com/gobigbed/bigbed/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RewardsHandler exposes point totals and milestone progress.
type RewardsHandler struct {
	service service.RewardsService
}

func NewRewardsHandler(service service.RewardsService) *RewardsHandler {
	return &RewardsHandler{service: service}
}

// Get handles GET /v1/users/{userId}/rewards
// @Summary Get rewards
// @Description Total points (10 per hour slept, rounded per night), earned credits, and progress through the current milestone cycle. new_credits counts milestones crossed since the last read and is reported once.
// @Tags rewards
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param window_days query integer false "Number of nights to score" default(40) minimum(1) maximum(365)
// @Success 200 {object} domain.RewardsResponse "Rewards summary"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/rewards [get]
func (h *RewardsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	windowDays := parseIntParam(r, "window_days", service.DefaultRewardsWindowDays)
	if windowDays < 1 || windowDays > 365 {
		problem.BadRequest("window_days must be between 1 and 365").Write(w)
		return
	}

	resp, err := h.service.Compute(r.Context(), userID, windowDays)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute rewards").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
