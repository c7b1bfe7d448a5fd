package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/geekplay/platform/internal/database"
	"github.com/geekplay/platform/internal/models"
	"github.com/geekplay/platform/internal/repositories"
	"github.com/geekplay/platform/pkg/auth"
)

// TestDB manages the PostgreSQL testcontainer shared by the integration
// tests. All four services' tables live in the one database here; in
// production each service has its own.
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase creates a PostgreSQL testcontainer and runs all
// migrations against it.
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("geekplay"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         &database.DB{Pool: pool},
	}, nil
}

// runMigrations executes all goose migrations via the pgx stdlib adapter.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir, err := filepath.Abs("../../migrations")
	if err != nil {
		return fmt.Errorf("failed to get migrations path: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Teardown stops the container and closes the connection pool
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupTables truncates all tables for test isolation
func (db *TestDB) CleanupTables(ctx context.Context) error {
	tables := []string{
		"likes",
		"comments",
		"posts",
		"ban_notifications",
		"users",
	}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// InitializeRepositories creates all repository instances from the database
// wrapper.
func InitializeRepositories(db *database.DB) (
	*repositories.UserRepository,
	*repositories.PostRepository,
	*repositories.CommentRepository,
	*repositories.LikeRepository,
	*repositories.NotificationRepository,
) {
	return repositories.NewUserRepository(db),
		repositories.NewPostRepository(db),
		repositories.NewCommentRepository(db),
		repositories.NewLikeRepository(db),
		repositories.NewNotificationRepository(db)
}

// SeedUser inserts a test user with a hashed password
func SeedUser(ctx context.Context, pool *pgxpool.Pool, email, password string, isAdmin bool) (*models.User, error) {
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (name, email, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, email, password_hash, is_admin
	`

	var user models.User
	err = pool.QueryRow(ctx, query, "Test User", email, hashedPassword, isAdmin).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsAdmin,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

// SeedPost inserts a test post authored by the given user
func SeedPost(ctx context.Context, pool *pgxpool.Pool, authorID int64, title, category string) (*models.Post, error) {
	query := `
		INSERT INTO posts (title, summary, content, category, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, summary, content, category, author_id, published_at
	`

	var post models.Post
	err := pool.QueryRow(ctx, query,
		title, "summary of "+title, "content of "+title, category, authorID, time.Now().UnixMilli(),
	).Scan(
		&post.ID, &post.Title, &post.Summary, &post.Content,
		&post.Category, &post.AuthorID, &post.PublishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return &post, nil
}

// SeedNotification inserts a ban notification with an explicit timestamp so
// ordering tests can control the sequence.
func SeedNotification(ctx context.Context, pool *pgxpool.Pool, userID int64, reason string, timestamp int64) (int64, error) {
	query := `
		INSERT INTO ban_notifications (user_id, reason, duration, appeal_guide, timestamp, is_read)
		VALUES ($1, $2, 'Permanente', 'Contacta a soporte@geekplay.cl para apelar.', $3, false)
		RETURNING id
	`

	var id int64
	if err := pool.QueryRow(ctx, query, userID, reason, timestamp).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert notification: %w", err)
	}

	return id, nil
}
