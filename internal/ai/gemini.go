package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const geminiModel = "gemini-1.5-flash"

// GeminiProvider calls the Google Generative Language API.
type GeminiProvider struct {
	client *resty.Client
	apiKey string
}

func NewGeminiProvider(baseURL, apiKey string, timeout time.Duration) *GeminiProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &GeminiProvider{client: client, apiKey: apiKey}
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) GenerateContent(ctx context.Context, prompt string) (string, error) {
	var result geminiResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("key", p.apiKey).
		SetBody(geminiRequest{
			Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", geminiModel))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrProviderCall, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("%w: gemini returned status %d: %s", ErrProviderCall, resp.StatusCode(), resp.String())
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
