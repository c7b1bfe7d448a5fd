package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/geekplay/platform/internal/database"
	"github.com/geekplay/platform/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

// rowScanner interface for scanning rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

const userColumns = `id, name, email, phone, password_hash, profile_image_path, is_admin, banned_until, created_at, updated_at`

// scanUserRow handles nullable fields and populates a User model from a database row
func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var phone *string

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &phone, &user.PasswordHash,
		&user.ProfileImagePath, &user.IsAdmin, &user.BannedUntil,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if phone != nil {
		user.Phone = *phone
	}

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (name, email, phone, password_hash, profile_image_path, is_admin, banned_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	var phone *string
	if user.Phone != "" {
		phone = &user.Phone
	}

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.Name, user.Email, phone, user.PasswordHash,
		user.ProfileImagePath, user.IsAdmin, user.BannedUntil,
		user.CreatedAt, user.UpdatedAt,
	))
}

// UpdateProfile applies the already-merged profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET name = $1, phone = $2, profile_image_path = $3, updated_at = $4
		WHERE id = $5
		RETURNING ` + userColumns

	var phone *string
	if user.Phone != "" {
		phone = &user.Phone
	}

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.Name, phone, user.ProfileImagePath, user.UpdatedAt, id,
	))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// UpdateBannedUntil sets the ban expiry. A nil value clears the ban.
func (r *UserRepository) UpdateBannedUntil(ctx context.Context, id int64, bannedUntil *int64) error {
	query := `UPDATE users SET banned_until = $1, updated_at = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, bannedUntil, time.Now(), id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// ClearExpiredBans nulls ban expiries that have already lapsed. Used by the
// background sweeper; returns the number of rows cleared.
func (r *UserRepository) ClearExpiredBans(ctx context.Context, nowMillis int64) (int64, error) {
	query := `UPDATE users SET banned_until = NULL WHERE banned_until IS NOT NULL AND banned_until <= $1`

	result, err := r.pool.Exec(ctx, query, nowMillis)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired bans: %w", err)
	}

	return result.RowsAffected(), nil
}
