package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/geekplay/platform/internal/database"
	"github.com/geekplay/platform/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(db *database.DB) *PostRepository {
	return &PostRepository{pool: db.Pool}
}

const postColumns = `id, title, summary, content, category, author_id, published_at, image_url`

func scanPostRow(scanner rowScanner) (*models.Post, error) {
	var post models.Post

	err := scanner.Scan(
		&post.ID, &post.Title, &post.Summary, &post.Content,
		&post.Category, &post.AuthorID, &post.PublishedAt, &post.ImageURL,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &post, nil
}

func scanPostRows(rows pgx.Rows) ([]*models.Post, error) {
	defer rows.Close()

	posts := make([]*models.Post, 0)

	for rows.Next() {
		post, err := scanPostRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) ListAll(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	return scanPostRows(rows)
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	return scanPostRow(r.pool.QueryRow(ctx, query, id))
}

func (r *PostRepository) ListByCategory(ctx context.Context, category string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE category = $1 ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts by category: %w", err)
	}

	return scanPostRows(rows)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts by author: %w", err)
	}

	return scanPostRows(rows)
}

func (r *PostRepository) Search(ctx context.Context, term string) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE title ILIKE '%' || $1 || '%' OR summary ILIKE '%' || $1 || '%' OR content ILIKE '%' || $1 || '%'
		ORDER BY published_at DESC
	`

	rows, err := r.pool.Query(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	return scanPostRows(rows)
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.PublishedAt = time.Now().UnixMilli()

	query := `
		INSERT INTO posts (title, summary, content, category, author_id, published_at, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + postColumns

	return scanPostRow(r.pool.QueryRow(ctx, query,
		post.Title, post.Summary, post.Content, post.Category,
		post.AuthorID, post.PublishedAt, post.ImageURL,
	))
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *PostRepository) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	query := `UPDATE posts SET image_url = $1 WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, imageURL, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
