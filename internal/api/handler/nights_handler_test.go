package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
)

func TestNightsHandler_Get(t *testing.T) {
	userID := uuid.New()
	night := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		query          string
		mockService    *MockSummaryService
		wantStatusCode int
		wantNights     int
	}{
		{
			name:  "default window",
			query: "",
			mockService: &MockSummaryService{
				lastNightsFunc: func(ctx context.Context, id uuid.UUID, days int) ([]domain.SleepDay, error) {
					if days != 7 {
						t.Errorf("days = %d, want 7", days)
					}
					return []domain.SleepDay{
						{Date: night, Hours: 7.5},
						{Date: night.AddDate(0, 0, 1), Hours: 0},
					}, nil
				},
			},
			wantStatusCode: http.StatusOK,
			wantNights:     2,
		},
		{
			name:           "days out of range",
			query:          "?days=1000",
			mockService:    &MockSummaryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:  "unknown user",
			query: "",
			mockService: &MockSummaryService{
				lastNightsFunc: func(ctx context.Context, id uuid.UUID, days int) ([]domain.SleepDay, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewNightsHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/nights"+tt.query, nil)
			req = withURLParam(req, "userId", userID.String())
			rec := httptest.NewRecorder()

			handler.Get(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("Get() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if tt.wantStatusCode == http.StatusOK {
				var resp NightsResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if len(resp.Nights) != tt.wantNights {
					t.Errorf("len(Nights) = %d, want %d", len(resp.Nights), tt.wantNights)
				}
			}
		})
	}
}
