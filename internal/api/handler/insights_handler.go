package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/gobigbed/bigbed/internal/llm"
	"github.com/gobigbed/bigbed/internal/service"
	"github.com/gobigbed/bigbed/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// InsightsHandler handles LLM-generated sleep insights.
type InsightsHandler struct {
	service service.InsightsService
}

func NewInsightsHandler(service service.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// Get handles GET /v1/users/{userId}/insights
// @Summary Get LLM-powered sleep insights
// @Description Generate a short non-medical narrative over recent nights and rewards progress.
// @Tags insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.InsightsResponse "Generated insights"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 502 {object} problem.Problem "LLM error"
// @Failure 503 {object} problem.Problem "LLM service unavailable"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/insights [get]
func (h *InsightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.Generate(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, llm.ErrOpenAIUnavailable) {
			problem.ServiceUnavailable("OpenAI service is not configured").Write(w)
			return
		}
		if errors.Is(err, llm.ErrOpenAIRequest) || errors.Is(err, llm.ErrOpenAIResponse) {
			problem.New(http.StatusBadGateway, "llm-error", "LLM Error", "Failed to generate insights from LLM").Write(w)
			return
		}
		problem.InternalError("Failed to generate insights").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultValue int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
