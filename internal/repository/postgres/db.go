// internal/repository/postgres/db.go
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

func NewDB(pool *pgxpool.Pool, queryTimeout time.Duration) *DB {
	return &DB{pool: pool, queryTimeout: queryTimeout}
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.pool.Begin(ctx)
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// withTimeout bounds a unit of work, including pool acquisition, so a
// saturated pool cannot block a request indefinitely.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// Healthy runs a trivial query to report pool connectivity.
func (db *DB) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var one int
	return db.pool.QueryRow(ctx, "SELECT 1").Scan(&one) == nil
}
