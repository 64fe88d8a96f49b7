package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-match/internal/database"
)

var (
	// ErrSchemaMismatch means the migrated tables lack columns a seeder writes.
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrBadSchemaCheck = errors.New("bad schema check")
)

// RequireColumns fails with ErrSchemaMismatch naming every column of table the database lacks.
// Seeders call it first so a stale schema is reported before any row is written.
func RequireColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	switch {
	case db == nil:
		return fmt.Errorf("%w: nil db", ErrBadSchemaCheck)
	case table == "":
		return fmt.Errorf("%w: empty table name", ErrBadSchemaCheck)
	case len(columns) == 0:
		return fmt.Errorf("%w: no columns for %s", ErrBadSchemaCheck, table)
	}

	have, err := tableColumns(ctx, db, table)
	if err != nil {
		return fmt.Errorf("read columns of %s: %w", table, err)
	}

	var missing []string
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("%w: empty column name for %s", ErrBadSchemaCheck, table)
		}
		if _, ok := have[col]; !ok {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

func tableColumns(ctx context.Context, db database.DB, table string) (map[string]struct{}, error) {
	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out[c] = struct{}{}
	}
	return out, rows.Err()
}
