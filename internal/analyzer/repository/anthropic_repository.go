package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"climate-narrative-analyzer/internal/analyzer/config"
	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/pkg/logger"

	"golang.org/x/time/rate"
)

const anthropicAPIVersion = "2023-06-01"

// anthropicRepository is an implementation of AIRepository backed by the
// Anthropic messages API.
type anthropicRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewAnthropicRepository creates a new instance of anthropicRepository.
func NewAnthropicRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	maxPerMinute := cfg.Anthropic.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 30
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &anthropicRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

// Complete sends the system prompt and user text to the messages API and
// returns the raw text of the first content block.
func (r *anthropicRepository) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.AnthropicAPIRequest{
		Model:     r.cfg.Anthropic.Model,
		MaxTokens: r.cfg.Anthropic.MaxTokens,
		System:    systemPrompt,
		Messages: []dto.AnthropicMessage{
			{Role: "user", Content: userText},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/v1/messages", r.cfg.Anthropic.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", r.cfg.Anthropic.APIKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Anthropic API", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to Anthropic API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from Anthropic API",
			logger.IntField("status_code", resp.StatusCode),
		)
		return "", fmt.Errorf("received non-OK response from Anthropic API: %d - %s", resp.StatusCode, string(body))
	}

	var apiResp dto.AnthropicAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("invalid response from Anthropic API: no content found")
	}

	return apiResp.Content[0].Text, nil
}
