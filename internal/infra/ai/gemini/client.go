package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/auditkit/question-analyzer/internal/analysis"
	"github.com/auditkit/question-analyzer/internal/domain/ai"
	"github.com/auditkit/question-analyzer/internal/infra/ai/prompt"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client calls the Gemini generateContent REST endpoint. It implements the
// ai.Client port: every failure collapses into ai.ErrUnavailable so the
// caller can fall back to heuristics without inspecting causes.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	model         string
	fallbackModel string
	maxQuestions  int
	textLimit     int
}

func NewClient(apiKey, model, fallbackModel string, maxQuestions, textLimit int, timeout time.Duration) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		baseURL:       defaultBaseURL,
		apiKey:        apiKey,
		model:         strings.TrimPrefix(model, "models/"),
		fallbackModel: strings.TrimPrefix(fallbackModel, "models/"),
		maxQuestions:  maxQuestions,
		textLimit:     textLimit,
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimSuffix(u, "/")
}

// Extract sends the structured-extraction prompt to the primary model and
// retries once against the fallback model when it is distinct.
func (c *Client) Extract(ctx context.Context, text string) ([]ai.RawQuestion, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("no API key configured: %w", ai.ErrUnavailable)
	}

	p := prompt.GetExtractionPrompt(truncate(text, c.textLimit))

	records, err := c.call(ctx, c.model, p)
	if err == nil {
		return records, nil
	}
	if c.fallbackModel != "" && c.fallbackModel != c.model {
		if records, ferr := c.call(ctx, c.fallbackModel, p); ferr == nil {
			return records, nil
		}
	}
	return nil, fmt.Errorf("gemini extraction failed: %v: %w", err, ai.ErrUnavailable)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) call(ctx context.Context, model, promptText string) ([]ai.RawQuestion, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: promptText}}}},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response missing content")
	}

	var parsed struct {
		Questions []ai.RawQuestion `json:"questions"`
	}
	if !analysis.ExtractJSON(decoded.Candidates[0].Content.Parts[0].Text, &parsed) {
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

// truncate caps the document text sent to the backend. Hard cut, not a
// summary: questions past the limit are unreachable.
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
