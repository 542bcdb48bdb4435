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

// NightsHandler exposes per-night sleep totals.
type NightsHandler struct {
	service service.SummaryService
}

func NewNightsHandler(service service.SummaryService) *NightsHandler {
	return &NightsHandler{service: service}
}

// NightsResponse is the nightly summary payload.
// @Description Per-night sleep totals for the trailing window, oldest first.
type NightsResponse struct {
	Days   int               `json:"days" example:"7"`
	Nights []domain.SleepDay `json:"nights"`
}

// Get handles GET /v1/users/{userId}/nights
// @Summary Get nightly sleep totals
// @Description One entry per night bucket (noon-to-noon by default) for the trailing window, zero nights included. User-entered and awake intervals never count.
// @Tags nights
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param days query integer false "Window size in nights" default(7) minimum(1) maximum(365)
// @Success 200 {object} handler.NightsResponse "Nightly totals"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/nights [get]
func (h *NightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	days := parseIntParam(r, "days", service.DefaultSummaryDays)
	if days < 1 || days > service.MaxSummaryDays {
		problem.BadRequest("days must be between 1 and 365").Write(w)
		return
	}

	nights, err := h.service.LastNights(r.Context(), userID, days)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute nightly totals").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NightsResponse{Days: days, Nights: nights})
}
