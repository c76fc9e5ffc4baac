// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const openAIHTTPTimeout = 60 * time.Second

const companionSystemPrompt = "You are a friendly pocket companion device. " +
	"Reply in one or two short, warm sentences. Encourage small healthy habits."

// OpenAI is a Responder backed by the OpenAI chat completions API.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewOpenAI creates an OpenAI responder with the given key and model.
func NewOpenAI(apiKey, model string, logger *slog.Logger) *OpenAI {
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAI{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.openai.com/v1",
		client:  &http.Client{Timeout: openAIHTTPTimeout},
		logger:  logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateReply implements Responder via a chat completion call.
func (o *OpenAI) GenerateReply(ctx context.Context, deviceID, text string) (string, error) {
	body := map[string]any{
		"model": o.model,
		"messages": []chatMessage{
			{Role: "system", Content: companionSystemPrompt},
			{Role: "user", Content: text},
		},
	}

	respBody, err := o.doJSONRequest(ctx, o.baseURL+"/chat/completions", body)
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("openai decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	o.logger.Debug("openai reply generated", "device_id", deviceID, "model", o.model)
	return result.Choices[0].Message.Content, nil
}

// doJSONRequest performs a JSON HTTP POST with bearer auth.
func (o *OpenAI) doJSONRequest(ctx context.Context, url string, body any) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
