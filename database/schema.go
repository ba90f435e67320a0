// Package database manages the Postgres connection pool and the vector
// collection schema.
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TableName converts a collection name into a safe SQL identifier, e.g.
// "yc-bot-db" becomes "yc_bot_db".
func TableName(collection string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, collection)

	if mapped == "" || (mapped[0] >= '0' && mapped[0] <= '9') {
		mapped = "c_" + mapped
	}
	return mapped
}

// EnsureCollection creates the named vector collection if absent: one table
// of (vector, source text, source address) records and a cosine ivfflat
// index over the embeddings.
func EnsureCollection(ctx context.Context, pool *pgxpool.Pool, collection string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}

	table := TableName(collection)
	stmts := []string{
		"CREATE EXTENSION IF NOT EXISTS vector",
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			source_url TEXT NOT NULL,
			chunk_index INT NOT NULL,
			content TEXT NOT NULL,
			embedding VECTOR(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, table, dimension),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_source ON %s(source_url, chunk_index)", table, table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_embedding ON %s USING ivfflat (embedding vector_cosine_ops)", table, table),
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}

	return nil
}

// DropCollection removes the named collection entirely.
func DropCollection(ctx context.Context, pool *pgxpool.Pool, collection string) error {
	if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", TableName(collection))); err != nil {
		return fmt.Errorf("drop collection %s: %w", collection, err)
	}
	return nil
}
