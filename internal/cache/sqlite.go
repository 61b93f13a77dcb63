package cache

import (
	"context"
	"log/slog"

	"articlesum/internal/database"
)

// SQLite persists summaries in a local database file, so they survive
// restarts of the host process.
type SQLite struct {
	db     *database.Database
	prefix string
	log    *slog.Logger
}

func NewSQLite(db *database.Database, prefix string, log *slog.Logger) *SQLite {
	return &SQLite{db: db, prefix: prefix, log: log}
}

func (s *SQLite) Get(ctx context.Context, articleURL string) (string, bool) {
	key := Key(s.prefix, articleURL)

	summary, ok, err := s.db.GetSummary(ctx, key)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to read cached summary",
			"error", err,
			"key", key,
			"backend", "sqlite")

		return "", false
	}

	return summary, ok
}

func (s *SQLite) Put(ctx context.Context, articleURL string, summary string) {
	key := Key(s.prefix, articleURL)

	if err := s.db.PutSummary(ctx, key, summary); err != nil {
		s.log.ErrorContext(ctx, "Failed to store summary",
			"error", err,
			"key", key,
			"backend", "sqlite",
			"summaryLen", len(summary))
	}
}

func (s *SQLite) Len(ctx context.Context) (int64, error) {
	return s.db.CountSummaries(ctx, s.prefix)
}
