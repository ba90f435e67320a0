package chat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"ycbot/database"
)

type VectorStore interface {
	SimilarChunks(ctx context.Context, embedding []float32, k int) ([]ChunkResult, error)
}

type PostgresVectorStore struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresVectorStore(pool *pgxpool.Pool, collection string) *PostgresVectorStore {
	return &PostgresVectorStore{pool: pool, table: database.TableName(collection)}
}

// SimilarChunks returns the k stored records closest to the query embedding
// under cosine distance, most similar first. The store is never mutated at
// query time.
func (s *PostgresVectorStore) SimilarChunks(ctx context.Context, embedding []float32, k int) ([]ChunkResult, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("embedding is empty")
	}
	if k <= 0 {
		k = defaultTopK
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
        SELECT
            content,
            source_url,
            1 - (embedding <=> $1::vector) AS score
        FROM %s
        ORDER BY embedding <=> $1::vector
        LIMIT $2
    `, s.table), pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("query similar chunks: %w", err)
	}
	defer rows.Close()

	results := make([]ChunkResult, 0, k)
	for rows.Next() {
		var item ChunkResult
		if scanErr := rows.Scan(&item.Content, &item.URL, &item.Score); scanErr != nil {
			return nil, fmt.Errorf("scan similar chunk: %w", scanErr)
		}
		results = append(results, item)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return results, nil
}

var _ VectorStore = (*PostgresVectorStore)(nil)
