package repositories

import (
	"context"
	"fmt"

	"github.com/geekplay/platform/internal/database"
	"github.com/geekplay/platform/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LikeRepository persists likes keyed by (post_id, user_email). The composite
// primary key in the schema is what makes the toggle safe under concurrency:
// a racing duplicate insert surfaces as ErrConflict instead of a second row,
// and deleting an already-deleted row is a no-op.
type LikeRepository struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(db *database.DB) *LikeRepository {
	return &LikeRepository{pool: db.Pool}
}

func (r *LikeRepository) GetByPostAndEmail(ctx context.Context, postID int64, userEmail string) (*models.Like, error) {
	query := `SELECT post_id, user_email, timestamp FROM likes WHERE post_id = $1 AND user_email = $2`

	var like models.Like
	err := r.pool.QueryRow(ctx, query, postID, userEmail).Scan(
		&like.PostID, &like.UserEmail, &like.Timestamp,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &like, nil
}

func (r *LikeRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Like, error) {
	query := `SELECT post_id, user_email, timestamp FROM likes WHERE post_id = $1 ORDER BY timestamp DESC`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}
	defer rows.Close()

	likes := make([]*models.Like, 0)

	for rows.Next() {
		var like models.Like
		if err := rows.Scan(&like.PostID, &like.UserEmail, &like.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		likes = append(likes, &like)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return likes, nil
}

// Create inserts a like. A duplicate (post_id, user_email) pair maps to
// ErrConflict via the unique_violation code.
func (r *LikeRepository) Create(ctx context.Context, like *models.Like) error {
	query := `INSERT INTO likes (post_id, user_email, timestamp) VALUES ($1, $2, $3)`

	if _, err := r.pool.Exec(ctx, query, like.PostID, like.UserEmail, like.Timestamp); err != nil {
		return database.MapPostgresError(err)
	}

	return nil
}

// DeleteByPostAndEmail removes a like if present. Deleting a missing row is
// deliberately a no-op, not an error.
func (r *LikeRepository) DeleteByPostAndEmail(ctx context.Context, postID int64, userEmail string) error {
	query := `DELETE FROM likes WHERE post_id = $1 AND user_email = $2`

	if _, err := r.pool.Exec(ctx, query, postID, userEmail); err != nil {
		return database.MapPostgresError(err)
	}

	return nil
}
