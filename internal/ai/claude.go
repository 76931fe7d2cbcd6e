package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const claudeModel = "claude-3-haiku-20240307"

// ClaudeProvider calls the Anthropic Messages API.
type ClaudeProvider struct {
	client *resty.Client
	apiKey string
}

func NewClaudeProvider(baseURL, apiKey string, timeout time.Duration) *ClaudeProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("anthropic-version", "2023-06-01")
	return &ClaudeProvider{client: client, apiKey: apiKey}
}

func (p *ClaudeProvider) Name() string {
	return "claude"
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *ClaudeProvider) GenerateContent(ctx context.Context, prompt string) (string, error) {
	var result claudeResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", p.apiKey).
		SetBody(claudeRequest{
			Model:     claudeModel,
			MaxTokens: 1024,
			Messages:  []claudeMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&result).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("%w: claude: %v", ErrProviderCall, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("%w: claude returned status %d: %s", ErrProviderCall, resp.StatusCode(), resp.String())
	}
	if len(result.Content) == 0 {
		return "", nil
	}
	return result.Content[0].Text, nil
}
