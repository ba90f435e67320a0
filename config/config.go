// Package config loads runtime configuration from the environment (and an
// optional .env file) and validates the secrets each command needs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

type EmbeddingConfig struct {
	Provider  string
	Model     string
	Dimension int
}

type LLMConfig struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float32
}

type Config struct {
	PostgresDSN   string
	TelegramToken string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaHost    string

	// IndexName is the vector collection holding the ingested chunks.
	IndexName string

	// IncludeHistory threads the per-user transcript into the generation
	// prompt. Off by default: the upstream bot tracked history without ever
	// consuming it, and that behavior is kept unless asked otherwise.
	IncludeHistory bool

	Embeddings EmbeddingConfig
	LLM        LLMConfig
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		PostgresDSN:    getEnv("POSTGRES_DSN", "postgres://localhost:5432/ycbot?sslmode=disable"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		OllamaHost:     getEnv("OLLAMA_HOST", "http://localhost:11434"),
		IndexName:      getEnv("INDEX_NAME", "yc-bot-db"),
		IncludeHistory: getBool("INCLUDE_HISTORY", false),
		Embeddings: EmbeddingConfig{
			Provider:  getEnv("EMBEDDINGS_PROVIDER", ProviderOpenAI),
			Model:     getEnv("EMBEDDINGS_MODEL", "text-embedding-ada-002"),
			Dimension: getInt("EMBEDDINGS_DIMENSION", 1536),
		},
		LLM: LLMConfig{
			Provider:    getEnv("LLM_PROVIDER", ProviderOpenAI),
			Model:       getEnv("LLM_MODEL", "gpt-3.5-turbo-instruct"),
			MaxTokens:   getInt("LLM_MAX_TOKENS", 500),
			Temperature: getFloat("LLM_TEMPERATURE", 0.4),
		},
	}
}

// Validate reports every missing required secret at once so startup fails
// fast with a complete message. The Telegram token is only required when the
// chat front end will run.
func (c Config) Validate(needTelegram bool) error {
	var missing []string

	if c.PostgresDSN == "" {
		missing = append(missing, "POSTGRES_DSN")
	}
	if (c.Embeddings.Provider == ProviderOpenAI || c.LLM.Provider == ProviderOpenAI) && c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if needTelegram && c.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float32) float32 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(parsed)
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
