package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const systemPrompt = `You are a non-medical sleep tracking assistant for a rewards-based sleep app.

You receive per-night sleep totals and reward progress for a single user. You must base your conclusions only on the provided data.

Your goals:
- Describe the user's recent nights in clear, neutral language.
- Highlight patterns in nightly totals and consistency.
- Note progress toward the next reward milestone when relevant.
- Give practical, behavioral suggestions to improve sleep habits.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Focus only on behavior and routines (bedtime regularity, wind-down habits, keeping the phone still overnight).
- If data is limited or mixed, say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the user's recent nights.",
  "observations": [
    "3-6 bullet points about patterns in nightly totals and consistency.",
    "At least one item comparing the recent week to the longer window."
  ],
  "guidance": [
    "3-5 concrete, non-medical suggestions tailored to these numbers.",
    "Include at least one suggestion about schedule regularity if nightly totals vary a lot."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's sleep data.

- "recent_nights" holds per-night hours for roughly the last week.
- "history_nights" holds per-night hours for the longer window.
- "rewards" holds total points, completed credits, and milestone progress.

Nights with zero hours are nights with no recorded sleep; treat many of them as a data-coverage signal, not as the user never sleeping.

JSON:

%s

Based on this data, respond in the required JSON format.`

// InsightsContext is the data handed to the LLM.
type InsightsContext struct {
	RecentNights  []domain.SleepDay       `json:"recent_nights"`
	HistoryNights []domain.SleepDay       `json:"history_nights"`
	Rewards       *domain.RewardsResponse `json:"rewards,omitempty"`
}

// InsightsLLM is the interface for generating sleep insights using an LLM.
type InsightsLLM interface {
	// GenerateInsights takes a context object and returns LLM-generated insights.
	GenerateInsights(ctx context.Context, insightsCtx *InsightsContext) (*domain.InsightsResponse, error)
}

// OpenAIClient implements InsightsLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for generating insights.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

// GenerateInsights calls OpenAI to generate sleep insights.
func (c *OpenAIClient) GenerateInsights(ctx context.Context, insightsCtx *InsightsContext) (*domain.InsightsResponse, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(insightsCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	var output domain.InsightsResponse
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &output, nil
}
