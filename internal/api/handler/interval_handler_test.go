package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
)

func TestIntervalHandler_Create(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    *MockIntervalService
		wantStatusCode int
	}{
		{
			name:           "valid third-party interval",
			body:           `{"start_at": "2024-01-15T23:00:00Z", "end_at": "2024-01-16T07:00:00Z", "source": "THIRD_PARTY", "category": "ASLEEP_CORE"}`,
			mockService:    &MockIntervalService{},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "app source rejected",
			body:           `{"start_at": "2024-01-15T23:00:00Z", "end_at": "2024-01-16T07:00:00Z", "source": "APP", "category": "ASLEEP_CORE"}`,
			mockService:    &MockIntervalService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "end before start",
			body:           `{"start_at": "2024-01-16T07:00:00Z", "end_at": "2024-01-15T23:00:00Z", "source": "USER_ENTERED", "category": "ASLEEP_CORE"}`,
			mockService:    &MockIntervalService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown category",
			body:           `{"start_at": "2024-01-15T23:00:00Z", "end_at": "2024-01-16T07:00:00Z", "source": "THIRD_PARTY", "category": "NAPPING"}`,
			mockService:    &MockIntervalService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown user",
			body: `{"start_at": "2024-01-15T23:00:00Z", "end_at": "2024-01-16T07:00:00Z", "source": "THIRD_PARTY", "category": "ASLEEP_CORE"}`,
			mockService: &MockIntervalService{
				createFunc: func(ctx context.Context, id uuid.UUID, req *domain.CreateIntervalRequest) (*domain.SleepInterval, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewIntervalHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID.String()+"/sleep-intervals", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = withURLParam(req, "userId", userID.String())
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Create() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestIntervalHandler_List(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		query          string
		mockService    *MockIntervalService
		wantStatusCode int
	}{
		{
			name:           "default window",
			query:          "",
			mockService:    &MockIntervalService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "with range and limit",
			query:          "?from=2024-01-01T00:00:00Z&to=2024-01-31T23:59:59Z&limit=10",
			mockService:    &MockIntervalService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid from",
			query:          "?from=yesterday",
			mockService:    &MockIntervalService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid limit",
			query:          "?limit=-5",
			mockService:    &MockIntervalService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:  "unknown user",
			query: "",
			mockService: &MockIntervalService{
				listFunc: func(ctx context.Context, id uuid.UUID, filter domain.IntervalFilter) (*domain.IntervalListResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewIntervalHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/sleep-intervals"+tt.query, nil)
			req = withURLParam(req, "userId", userID.String())
			rec := httptest.NewRecorder()

			handler.List(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("List() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var response domain.IntervalListResponse
				if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
					t.Errorf("Failed to decode response: %v", err)
				}
			}
		})
	}
}
