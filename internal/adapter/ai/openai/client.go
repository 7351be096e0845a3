package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/observability/telemetry"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

// Client provides access to the OpenAI chat completions API
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a new OpenAI API client
func NewClient(apiKey, model string, log *zap.Logger) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	Stream    bool      `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// ChatCompletion sends a chat completion request to OpenAI
func (c *Client) ChatCompletion(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (string, error) {
	defer func(start time.Time) {
		telemetry.ModelLatency.Observe(time.Since(start).Seconds())
	}(time.Now())

	resp, err := c.send(ctx, messages, maxTokens, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	return result.Choices[0].Message.Content, nil
}

// ChatCompletionStream streams a completion, invoking onChunk for each content
// delta as it arrives.
func (c *Client) ChatCompletionStream(ctx context.Context, messages []domain.ChatMessage, maxTokens int, onChunk func(string)) error {
	defer func(start time.Time) {
		telemetry.ModelLatency.Observe(time.Since(start).Seconds())
	}(time.Now())

	resp, err := c.send(ctx, messages, maxTokens, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			c.log.Warn("openai: malformed stream chunk", zap.Error(err))
			continue
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			onChunk(chunk.Choices[0].Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("openai: read stream: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, messages []domain.ChatMessage, maxTokens int, stream bool) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, domain.ErrModelUnavailable
	}

	reqBody := chatRequest{
		Model:     c.model,
		Messages:  make([]message, len(messages)),
		MaxTokens: maxTokens,
		Stream:    stream,
	}
	for i, m := range messages {
		reqBody.Messages[i] = message{Role: m.Role, Content: m.Content}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: send request: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		return nil, domain.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("openai: API error status %d", resp.StatusCode)
	}
	return resp, nil
}
