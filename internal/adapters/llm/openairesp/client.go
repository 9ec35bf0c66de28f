// Package openairesp implements ports.Completer against a Responses-style
// completion endpoint (OpenAI or compatible).
package openairesp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bigimanishi-bit/tarot-app-sub000/internal/domain"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/ports"
)

// Client sends one conversation per call. No retries here; retry policy
// belongs to the orchestrator.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		logger:     logger,
	}
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
}

// responsesResponse accepts both known wire shapes: a flat output_text field
// and the nested output -> content -> text form.
type responsesResponse struct {
	OutputText string       `json:"output_text"`
	Output     []outputItem `json:"output"`
	Error      *apiError    `json:"error"`
}

type outputItem struct {
	Type    string        `json:"type"`
	Content []contentItem `json:"content"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Message string `json:"message"`
}

func (c *Client) Complete(ctx context.Context, msgs []ports.Message) (string, error) {
	reqBody := responsesRequest{
		Model: c.model,
		Input: make([]inputMessage, len(msgs)),
	}
	for i, m := range msgs {
		reqBody.Input[i] = inputMessage{Role: string(m.Role), Content: m.Content}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/responses"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http call: %w", domain.ErrUpstreamLLM, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", domain.ErrUpstreamLLM, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "completion request failed",
			"status", resp.StatusCode, "model", c.model)
		return "", fmt.Errorf("%w: upstream status %d: %s",
			domain.ErrUpstreamLLM, resp.StatusCode, string(respBody))
	}

	var parsed responsesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrUpstreamLLM, err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", domain.ErrUpstreamLLM, parsed.Error.Message)
	}

	text := extractText(parsed)
	if text == "" {
		return "", domain.ErrEmptyCompletion
	}
	return text, nil
}

// extractText unwraps the response with an ordered fallback chain: the flat
// output_text field first, then the first output item's first non-empty text
// content.
func extractText(r responsesResponse) string {
	if t := strings.TrimSpace(r.OutputText); t != "" {
		return t
	}
	for _, item := range r.Output {
		if item.Type != "" && item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type != "" && c.Type != "output_text" {
				continue
			}
			if t := strings.TrimSpace(c.Text); t != "" {
				return t
			}
		}
	}
	return ""
}
