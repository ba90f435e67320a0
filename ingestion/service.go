// Package ingestion builds the vector collection: fetch pages, split them
// into overlapping chunks, embed the chunks and upsert them into Postgres.
package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"ycbot/database"
	"ycbot/embeddings"
	"ycbot/loader"
)

type Service struct {
	pool       *pgxpool.Pool
	loader     *loader.Loader
	embedder   embeddings.Embedder
	logger     *log.Logger
	collection string
	dimension  int
	chunkSize  int
	overlap    int
}

func NewService(pool *pgxpool.Pool, ld *loader.Loader, embedder embeddings.Embedder, logger *log.Logger, collection string, dimension int) *Service {
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		pool:       pool,
		loader:     ld,
		embedder:   embedder,
		logger:     logger,
		collection: collection,
		dimension:  dimension,
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
	}
}

// IngestURLs populates the collection from the given pages. Unreachable URLs
// are logged and skipped; an embedding or storage failure aborts the batch.
func (s *Service) IngestURLs(ctx context.Context, urls []string) error {
	if s.embedder == nil {
		return fmt.Errorf("embedder not configured")
	}
	if len(urls) == 0 {
		return fmt.Errorf("no source urls configured")
	}

	if err := database.EnsureCollection(ctx, s.pool, s.collection, s.dimension); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}

	results := s.loader.Load(ctx, urls)
	loaded := 0
	for _, res := range results {
		if res.Err != nil {
			s.logger.Printf("load failed for %s: %v", res.URL, res.Err)
			continue
		}
		if err := s.ingestDocument(ctx, res.Document); err != nil {
			return fmt.Errorf("ingest %s: %w", res.URL, err)
		}
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("no documents loaded from %d urls", len(urls))
	}

	s.logger.Printf("ingested %d of %d documents into %q", loaded, len(results), s.collection)
	return nil
}

func (s *Service) ingestDocument(ctx context.Context, doc loader.Document) (err error) {
	chunks := Split(doc.Content, s.chunkSize, s.overlap)
	if len(chunks) == 0 {
		s.logger.Printf("skip empty document %s", doc.URL)
		return nil
	}

	vectors, err := s.embedder.Embed(ctx, chunks)
	if err != nil {
		return fmt.Errorf("generate embeddings: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: have %d chunks, %d vectors", len(chunks), len(vectors))
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Printf("rollback error: %v", rbErr)
			}
		}
	}()

	table := database.TableName(s.collection)
	for idx, text := range chunks {
		vec := pgvector.NewVector(vectors[idx])
		if _, err = tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (id, source_url, chunk_index, content, embedding, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			ON CONFLICT (id) DO UPDATE
			SET content = EXCLUDED.content,
			    embedding = EXCLUDED.embedding,
			    updated_at = NOW()
		`, table), ChunkID(doc.URL, idx), doc.URL, idx, text, vec); err != nil {
			return fmt.Errorf("upsert chunk %d: %w", idx, err)
		}
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return fmt.Errorf("commit transaction: %w", commitErr)
	}

	s.logger.Printf("ingested %s (%d chunks)", doc.URL, len(chunks))
	return nil
}

// ChunkID derives a stable identifier from the chunk's source address and
// position, so re-running ingestion upserts records in place instead of
// duplicating them.
func ChunkID(url string, index int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", url, index)))
}
