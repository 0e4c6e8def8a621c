// internal/repository/postgres/analytics_base.go
package postgres

import (
	"context"
	"fmt"

	xerrors "gastro-insights/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

// analyticsRepo provides the shared read path for all report repositories.
type analyticsRepo struct {
	db *DB
}

// queryRows runs a read-only query inside a transaction and returns the
// rows as ordered column-name-to-value maps. The transaction rolls back
// on any error and commits otherwise.
func (r *analyticsRepo) queryRows(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrDatabase, err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrDatabase, err)
	}

	results := make([]map[string]any, 0)
	fields := rows.FieldDescriptions()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: %v", xerrors.ErrDatabase, err)
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		results = append(results, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrDatabase, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrDatabase, err)
	}
	return results, nil
}

// intLiteral renders an integer for direct inclusion in SQL text. This is
// the one sanctioned exception to parameter binding: the value has already
// been coerced to a strict int by the caller, so no injection is possible.
func intLiteral(v int) string {
	return fmt.Sprintf("%d", v)
}
