// internal/repository/postgres/admin_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gastro-insights/internal/domain/admin"
	xerrors "gastro-insights/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type AdminRepository struct {
	db *DB
}

func NewAdminRepository(db *DB) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `id, username, password_hash, first_name, last_name, telegram_id, created_at, updated_at`

func scanAdmin(row pgx.Row) (*admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash,
		&a.FirstName, &a.LastName, &a.TelegramID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan admin: %w", err)
	}
	return &a, nil
}

// FindByUsername retrieves an admin by exact (case-sensitive) username.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + adminColumns + ` FROM admins WHERE username = $1`
	return scanAdmin(r.db.pool.QueryRow(ctx, query, username))
}

// FindByID retrieves an admin by ID.
func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*admin.Admin, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return scanAdmin(r.db.pool.QueryRow(ctx, query, id))
}

// ExistsByUsername reports whether an admin with the exact username exists.
func (r *AdminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM admins WHERE username = $1)`
	if err := r.db.pool.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// Create inserts a new admin and fills in the generated fields.
func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) (*admin.Admin, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO admins (username, password_hash, first_name, last_name, telegram_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.pool.QueryRow(ctx, query,
		a.Username, a.PasswordHash, a.FirstName, a.LastName, a.TelegramID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return a, nil
}

// List retrieves all admins ordered by id.
func (r *AdminRepository) List(ctx context.Context) ([]*admin.Admin, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY id`
	rows, err := r.db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []*admin.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read admins: %w", err)
	}
	return admins, nil
}

// Delete removes an admin by ID.
func (r *AdminRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
