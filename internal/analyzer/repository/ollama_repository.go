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
)

// ollamaRepository is an implementation of AIRepository backed by a locally
// run Ollama model server. Local models need no request limiter.
type ollamaRepository struct {
	client *http.Client
	cfg    *config.Config
	logger *logger.Logger
}

// NewOllamaRepository creates a new instance of ollamaRepository.
func NewOllamaRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	return &ollamaRepository{
		client: &http.Client{
			// Local inference on small hardware can be slow.
			Timeout: 5 * time.Minute,
		},
		cfg:    cfg,
		logger: log,
	}
}

// Complete sends the system prompt and user text to the Ollama generate API
// and returns the raw response text.
func (r *ollamaRepository) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	payload := dto.OllamaGenerateRequest{
		Model:  r.cfg.Ollama.Model,
		System: systemPrompt,
		Prompt: userText,
		Format: "json",
		Stream: false,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/api/generate", r.cfg.Ollama.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Ollama", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-OK response from Ollama: %d - %s", resp.StatusCode, string(body))
	}

	var ollamaResp dto.OllamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if ollamaResp.Error != "" {
		return "", fmt.Errorf("ollama returned an error: %s", ollamaResp.Error)
	}

	return ollamaResp.Response, nil
}
