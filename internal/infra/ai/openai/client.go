package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/auditkit/question-analyzer/internal/analysis"
	"github.com/auditkit/question-analyzer/internal/domain/ai"
	"github.com/auditkit/question-analyzer/internal/infra/ai/prompt"
)

const maxTokens = 2048

// Client implements the ai.Client port on top of the OpenAI chat API.
// Like the Gemini adapter, it reports every failure as ai.ErrUnavailable.
type Client struct {
	client        *openai.Client
	model         string
	fallbackModel string
	maxQuestions  int
	textLimit     int
	timeout       time.Duration
	apiKey        string
}

func NewClient(apiKey, model, fallbackModel string, maxQuestions, textLimit int, timeout time.Duration) *Client {
	return &Client{
		client:        openai.NewClient(apiKey),
		model:         model,
		fallbackModel: fallbackModel,
		maxQuestions:  maxQuestions,
		textLimit:     textLimit,
		timeout:       timeout,
		apiKey:        apiKey,
	}
}

func (c *Client) Extract(ctx context.Context, text string) ([]ai.RawQuestion, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("no API key configured: %w", ai.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	userPrompt := prompt.GetExtractionPrompt(truncate(text, c.textLimit))

	records, err := c.call(ctx, c.model, userPrompt)
	if err == nil {
		return records, nil
	}
	if c.fallbackModel != "" && c.fallbackModel != c.model {
		if records, ferr := c.call(ctx, c.fallbackModel, userPrompt); ferr == nil {
			return records, nil
		}
	}
	return nil, fmt.Errorf("openai extraction failed: %v: %w", err, ai.ErrUnavailable)
}

func (c *Client) call(ctx context.Context, model, userPrompt string) ([]ai.RawQuestion, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var parsed struct {
		Questions []ai.RawQuestion `json:"questions"`
	}
	if !analysis.ExtractJSON(resp.Choices[0].Message.Content, &parsed) {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	if parsed.Questions == nil {
		return nil, fmt.Errorf("model output missing questions array")
	}
	if len(parsed.Questions) > c.maxQuestions {
		parsed.Questions = parsed.Questions[:c.maxQuestions]
	}
	return parsed.Questions, nil
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
