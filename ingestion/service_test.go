package ingestion_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"ycbot/ingestion"
	"ycbot/loader"
)

func TestIngestURLsMissingEmbedder(t *testing.T) {
	svc := ingestion.NewService((*pgxpool.Pool)(nil), loader.New(), nil, nil, "yc-bot-db", 1536)
	if err := svc.IngestURLs(context.Background(), []string{"https://example.com"}); err == nil {
		t.Fatal("expected error when embedder is nil")
	}
}

func TestSourceURLListIsPopulated(t *testing.T) {
	if len(ingestion.SourceURLs) == 0 {
		t.Fatal("expected a fixed list of source URLs")
	}
	for _, url := range ingestion.SourceURLs {
		if url == "" {
			t.Fatal("source URL list contains an empty entry")
		}
	}
}
