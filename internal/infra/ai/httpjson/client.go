package httpjson

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	domai "github.com/alinasir85/Jouster/internal/domain/ai"
	"github.com/alinasir85/Jouster/internal/infra/ai/prompt"
)

// Client talks to any OpenAI-compatible chat completion endpoint, for
// self-hosted gateways that speak the same wire format.
type Client struct {
	http  *resty.Client
	model string
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cli := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if apiKey != "" {
		cli.SetAuthToken(apiKey)
	}
	return &Client{http: cli, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Analyze(ctx context.Context, text string) (domai.Fields, error) {
	var out chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: prompt.GetSystemPrompt()},
				{Role: "user", Content: prompt.GetUserPrompt(text)},
			},
			Temperature: 0.3,
		}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return domai.Fields{}, &domai.ProviderError{Err: err}
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return domai.Fields{}, &domai.ProviderError{Err: domai.ErrQuotaExceeded}
	}
	if resp.IsError() {
		return domai.Fields{}, &domai.ProviderError{Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}
	if len(out.Choices) == 0 {
		return domai.Fields{}, &domai.MalformedResponseError{Reason: "no choices in completion", Raw: resp.String()}
	}
	return domai.ParseResponse(out.Choices[0].Message.Content)
}
