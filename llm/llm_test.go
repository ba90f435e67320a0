package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ycbot/config"
	"ycbot/llm"
)

func TestNewClientDefaults(t *testing.T) {
	cfg := config.Config{
		LLM: config.LLMConfig{
			Provider: config.ProviderOllama,
			Model:    "llama3.1:8b",
		},
		OllamaHost: "http://localhost:11434",
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		t.Fatalf("expected llm client, got error: %v", err)
	}
	if client == nil {
		t.Fatal("expected non-nil client")
	}
}

func TestNewClientOpenAIRequiresAPIKey(t *testing.T) {
	cfg := config.Config{
		LLM: config.LLMConfig{
			Provider: config.ProviderOpenAI,
			Model:    "gpt-3.5-turbo-instruct",
		},
	}

	if _, err := llm.NewClient(cfg); err == nil {
		t.Fatal("expected error for missing OPENAI_API_KEY")
	}
}

func TestOpenAIClientGenerate(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt      string  `json:"prompt"`
			MaxTokens   int     `json:"max_tokens"`
			Temperature float32 `json:"temperature"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotPrompt = req.Prompt
		if req.MaxTokens != 500 {
			http.Error(w, "unexpected max_tokens", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "text_completion",
			"model":   "gpt-3.5-turbo-instruct",
			"choices": []map[string]any{{"text": "  YC funds startups.  ", "index": 0}},
		})
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient(llm.Options{
		Model:         "gpt-3.5-turbo-instruct",
		MaxTokens:     500,
		Temperature:   0.4,
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: srv.URL + "/v1",
	})

	answer, err := client.Generate(context.Background(), "What does YC do?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "YC funds startups." {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if gotPrompt != "What does YC do?" {
		t.Fatalf("unexpected prompt sent upstream: %q", gotPrompt)
	}
}

func TestOllamaClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "a local answer", "done": true})
	}))
	defer srv.Close()

	client := llm.NewOllamaClient(llm.Options{
		Model:       "llama3.1:8b",
		MaxTokens:   500,
		Temperature: 0.4,
		OllamaHost:  srv.URL,
	})

	answer, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "a local answer" {
		t.Fatalf("unexpected answer: %q", answer)
	}
}
