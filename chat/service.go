// Package chat answers a question by retrieving the closest stored chunks
// and conditioning a text completion on them.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ycbot/embeddings"
	"ycbot/llm"
)

const (
	defaultTopK = 3

	// capabilityTimeout bounds each external call (embed, search, generate).
	capabilityTimeout = 30 * time.Second
)

type Service struct {
	vectors  VectorStore
	embedder embeddings.Embedder
	llm      llm.Client
	logger   *log.Logger
	topK     int
}

type Config struct {
	TopK int
}

func NewService(vectors VectorStore, embedder embeddings.Embedder, llmClient llm.Client, logger *log.Logger, cfg Config) *Service {
	if logger == nil {
		logger = log.Default()
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	return &Service{
		vectors:  vectors,
		embedder: embedder,
		llm:      llmClient,
		logger:   logger,
		topK:     topK,
	}
}

// Answer embeds the question, retrieves the top-k most similar stored chunks
// and asks the completion model for a grounded reply. history is the user's
// labeled transcript; pass nil to keep it out of the prompt. Failures come
// back as *CapabilityError so the front end can decide what the user sees.
func (s *Service) Answer(ctx context.Context, question string, history []string) (Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Response{}, fmt.Errorf("question cannot be empty")
	}
	if s.embedder == nil {
		return Response{}, fmt.Errorf("embedder is not configured")
	}
	if s.vectors == nil {
		return Response{}, fmt.Errorf("vector store is not configured")
	}
	if s.llm == nil {
		return Response{}, fmt.Errorf("llm client is not configured")
	}

	embedding, err := s.embedQuestion(ctx, question)
	if err != nil {
		return Response{}, &CapabilityError{Op: OpEmbed, Err: err}
	}

	chunks, err := s.searchChunks(ctx, embedding)
	if err != nil {
		return Response{}, &CapabilityError{Op: OpSearch, Err: err}
	}

	if len(chunks) == 0 {
		s.logger.Printf("no context retrieved, answering from the system instruction alone")
	}

	answer, err := s.generate(ctx, BuildPrompt(question, chunks, history))
	if err != nil {
		return Response{}, &CapabilityError{Op: OpGenerate, Err: err}
	}

	return Response{Answer: strings.TrimSpace(answer), Chunks: chunks}, nil
}

func (s *Service) embedQuestion(ctx context.Context, question string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, capabilityTimeout)
	defer cancel()

	vectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vectors")
	}
	return vectors[0], nil
}

func (s *Service) searchChunks(ctx context.Context, embedding []float32) ([]ChunkResult, error) {
	ctx, cancel := context.WithTimeout(ctx, capabilityTimeout)
	defer cancel()

	return s.vectors.SimilarChunks(ctx, embedding, s.topK)
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, capabilityTimeout)
	defer cancel()

	return s.llm.Generate(ctx, prompt)
}
