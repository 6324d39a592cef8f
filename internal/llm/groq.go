package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"weekly-dinner-planner/internal/config"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// groqClient is a client for the OpenAI-compatible Groq API, used when Gemini
// is not configured.
type groqClient struct {
	client            *resty.Client
	model             string
	systemInstruction string
	maxTokens         int
	temperature       float64
}

// NewGroqClient creates a new Groq API client.
func NewGroqClient(cfg *config.Config, systemInstruction string) TextGenerator {
	client := resty.New().
		SetBaseURL(groqBaseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Groq.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Generation.Timeout)

	return &groqClient{
		client:            client,
		model:             cfg.Groq.Model,
		systemInstruction: systemInstruction,
		maxTokens:         cfg.Generation.MaxTokens,
		temperature:       cfg.Generation.Temperature,
	}
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GenerateContent sends a prompt to the Groq chat completions endpoint and
// returns the generated text.
func (c *groqClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	body := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": c.systemInstruction},
			{"role": "user", "content": prompt},
		},
		"temperature":     c.temperature,
		"max_tokens":      c.maxTokens,
		"response_format": map[string]string{"type": "json_object"},
	}

	var out groqResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		return ContentResponse{}, fmt.Errorf("groq: %w", ErrRateLimited)
	}
	if resp.IsError() {
		return ContentResponse{}, fmt.Errorf("groq api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	return ContentResponse{
		Content: out.Choices[0].Message.Content,
		Usage: TokenUsage{
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
			TotalTokens:      out.Usage.TotalTokens,
			Model:            c.model,
		},
	}, nil
}
