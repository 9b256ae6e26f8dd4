package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/auditkit/question-analyzer/internal/domain/ai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := NewClient("test-key", "primary-model", "fallback-model", 200, 12000, 5*time.Second)
	c.SetBaseURL(server.URL)
	return c, server
}

func modelText(text string) []byte {
	body := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(body)
	return b
}

func TestExtract_ParsesQuestions(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "primary-model:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}
		w.Write(modelText(`Here you go: {"question_count":1,"questions":[{"question":"Is access logged?","answer":"Yes","requirement_met":null,"confidence":0.8,"reasoning":"stated"}]} done`))
	})

	records, err := c.Extract(context.Background(), "doc text")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Question != "Is access logged?" || r.Answer != "Yes" {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.RequirementMet != nil {
		t.Errorf("requirement_met should stay nil, got %v", r.RequirementMet)
	}
	if conf, ok := r.Confidence.(float64); !ok || conf != 0.8 {
		t.Errorf("confidence = %v", r.Confidence)
	}
}

func TestExtract_EmptyQuestionsIsValid(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelText(`{"question_count":0,"questions":[]}`))
	})

	records, err := c.Extract(context.Background(), "doc text")
	if err != nil {
		t.Fatalf("empty questions array is a valid result: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestExtract_NoAPIKey(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	c := NewClient("", "primary-model", "fallback-model", 200, 12000, 5*time.Second)
	c.SetBaseURL(server.URL)

	if _, err := c.Extract(context.Background(), "doc"); !errors.Is(err, ai.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if calls != 0 {
		t.Errorf("no request should be sent without a key, got %d", calls)
	}
}

func TestExtract_FallbackModelOnPrimaryFailure(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if strings.Contains(r.URL.Path, "primary-model") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(modelText(`{"questions":[{"question":"Is there a DR plan?","confidence":0.5,"reasoning":"found"}]}`))
	})

	records, err := c.Extract(context.Background(), "doc text")
	if err != nil {
		t.Fatalf("fallback model should have answered: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if len(paths) != 2 || !strings.Contains(paths[1], "fallback-model") {
		t.Errorf("expected primary then fallback, got %v", paths)
	}
}

func TestExtract_AllFailuresCollapseToUnavailable(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"http error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>oops</html>"))
		},
		"prose without object": func(w http.ResponseWriter, r *http.Request) {
			w.Write(modelText("I could not find any questions, sorry."))
		},
		"missing questions key": func(w http.ResponseWriter, r *http.Request) {
			w.Write(modelText(`{"question_count":0}`))
		},
		"questions not a list": func(w http.ResponseWriter, r *http.Request) {
			w.Write(modelText(`{"questions":"none"}`))
		},
		"no candidates": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		},
	}
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, handler)
			if _, err := c.Extract(context.Background(), "doc"); !errors.Is(err, ai.ErrUnavailable) {
				t.Errorf("err = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestExtract_TruncatesToMaxQuestions(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelText(`{"questions":[` +
			`{"question":"Q1 is long enough?","reasoning":"a"},` +
			`{"question":"Q2 is long enough?","reasoning":"b"},` +
			`{"question":"Q3 is long enough?","reasoning":"c"}]}`))
	})
	c.maxQuestions = 2

	records, err := c.Extract(context.Background(), "doc")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected truncation to 2 records, got %d", len(records))
	}
}

func TestExtract_TruncatesInputText(t *testing.T) {
	var gotPrompt string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Write(modelText(`{"questions":[{"question":"Is this within the cap?","reasoning":"x"}]}`))
	})
	c.textLimit = 50

	long := strings.Repeat("z", 500)
	if _, err := c.Extract(context.Background(), long); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if strings.Contains(gotPrompt, strings.Repeat("z", 51)) {
		t.Error("document text was not truncated to the configured limit")
	}
	if !strings.Contains(gotPrompt, strings.Repeat("z", 50)) {
		t.Error("truncated document text missing from prompt")
	}
}

func TestStripModelsPrefix(t *testing.T) {
	c := NewClient("k", "models/gemini-2.5-flash", "models/gemini-2.0-flash", 10, 100, time.Second)
	if c.model != "gemini-2.5-flash" || c.fallbackModel != "gemini-2.0-flash" {
		t.Errorf("models/ prefix not stripped: %q %q", c.model, c.fallbackModel)
	}
}
