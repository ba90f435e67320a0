package config_test

import (
	"strings"
	"testing"

	"ycbot/config"
)

func validConfig() config.Config {
	return config.Config{
		PostgresDSN:   "postgres://localhost:5432/ycbot",
		TelegramToken: "123:abc",
		OpenAIAPIKey:  "sk-test",
		Embeddings:    config.EmbeddingConfig{Provider: config.ProviderOpenAI, Model: "text-embedding-ada-002", Dimension: 1536},
		LLM:           config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-3.5-turbo-instruct", MaxTokens: 500, Temperature: 0.4},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	if err := validConfig().Validate(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateReportsAllMissingSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.PostgresDSN = ""
	cfg.OpenAIAPIKey = ""
	cfg.TelegramToken = ""

	err := cfg.Validate(true)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, name := range []string{"POSTGRES_DSN", "OPENAI_API_KEY", "TELEGRAM_BOT_TOKEN"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error does not name %s: %v", name, err)
		}
	}
}

func TestValidateTelegramTokenOnlyForServe(t *testing.T) {
	cfg := validConfig()
	cfg.TelegramToken = ""

	if err := cfg.Validate(false); err != nil {
		t.Fatalf("token should not be required for offline commands: %v", err)
	}
	if err := cfg.Validate(true); err == nil {
		t.Fatal("token should be required for serve")
	}
}

func TestLoadGenerationOverrides(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "0.9")
	t.Setenv("LLM_MAX_TOKENS", "256")

	cfg := config.Load()
	if cfg.LLM.Temperature != 0.9 {
		t.Fatalf("expected temperature 0.9, got %v", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 256 {
		t.Fatalf("expected max tokens 256, got %d", cfg.LLM.MaxTokens)
	}
}

func TestLoadIgnoresMalformedTemperature(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "warm")

	if cfg := config.Load(); cfg.LLM.Temperature != 0.4 {
		t.Fatalf("expected default temperature 0.4, got %v", cfg.LLM.Temperature)
	}
}

func TestValidateOpenAIKeyNotRequiredForOllama(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAIAPIKey = ""
	cfg.Embeddings.Provider = config.ProviderOllama
	cfg.LLM.Provider = config.ProviderOllama

	if err := cfg.Validate(true); err != nil {
		t.Fatalf("unexpected error with local providers: %v", err)
	}
}
