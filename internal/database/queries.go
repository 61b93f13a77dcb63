package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

func (d *Database) GetSummary(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, errors.New("key is empty")
	}

	query := "select summary from summaries where key = ?"

	var summary string
	err := d.db.QueryRowContext(ctx, query, key).Scan(&summary)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("execute query: %w", err)
	}

	return summary, true, nil
}

func (d *Database) PutSummary(ctx context.Context, key string, summary string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key is empty")
	}

	query := `insert into summaries (key, summary) values (?, ?)
	on conflict (key) do update set summary = excluded.summary`

	if _, err := d.db.ExecContext(ctx, query, key, summary); err != nil {
		return fmt.Errorf("execute query: %w", err)
	}

	return nil
}

func (d *Database) CountSummaries(ctx context.Context, keyPrefix string) (int64, error) {
	query := "select count(*) from summaries where substr(key, 1, length(?)) = ?"

	var count int64
	if err := d.db.QueryRowContext(ctx, query, keyPrefix, keyPrefix).Scan(&count); err != nil {
		return 0, fmt.Errorf("execute query: %w", err)
	}

	return count, nil
}
