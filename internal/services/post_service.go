package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/geekplay/platform/internal/clients"
	"github.com/geekplay/platform/internal/models"
)

// Display fallbacks used when an author lookup fails. Enrichment is
// best-effort: a dead user-service degrades names, never responses.
const (
	fallbackAuthorName  = "Usuario Desconocido"
	fallbackCommenter   = "Usuario Eliminado"
	fallbackLikerName   = "Usuario"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	ListAll(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error)
	Search(ctx context.Context, term string) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
	UpdateImageURL(ctx context.Context, id int64, imageURL string) error
}

// AuthorLookup resolves author display details from the user-service.
// Lookups never fail; a false result means "use the fallback".
type AuthorLookup interface {
	FetchByID(ctx context.Context, id int64) (clients.AuthorDetails, bool)
	FetchByEmail(ctx context.Context, email string) (clients.AuthorDetails, bool)
}

// PostImageStore defines the interface for storing post images
type PostImageStore interface {
	SavePostImage(ctx context.Context, postID int64, filename string, size int64, content io.Reader) (string, error)
}

// EnrichedPost is a post decorated with author display details and the
// rendered HTML body.
type EnrichedPost struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Content     string  `json:"content"`
	ContentHTML string  `json:"contentHtml"`
	Category    string  `json:"category"`
	AuthorID    int64   `json:"authorId"`
	AuthorName  string  `json:"authorName"`
	AuthorImage *string `json:"authorImage"`
	PublishedAt int64   `json:"publishedAt"`
	ImageURL    *string `json:"imageUrl"`
}

// PostService handles post business logic for the content-service
type PostService struct {
	repo   PostRepository
	users  AuthorLookup
	images PostImageStore
	logger *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(repo PostRepository, users AuthorLookup, images PostImageStore, logger *slog.Logger) *PostService {
	return &PostService{
		repo:   repo,
		users:  users,
		images: images,
		logger: logger,
	}
}

// ListPosts returns all posts, newest first, enriched with author details
func (s *PostService) ListPosts(ctx context.Context) ([]*EnrichedPost, error) {
	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list posts", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return s.enrichAll(ctx, posts), nil
}

// GetPost returns a single post enriched with author details
func (s *PostService) GetPost(ctx context.Context, id int64) (*EnrichedPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get post", slog.Int64("post_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return s.enrich(ctx, post, nil), nil
}

// ListPostsByCategory returns enriched posts in a category, newest first
func (s *PostService) ListPostsByCategory(ctx context.Context, category string) ([]*EnrichedPost, error) {
	posts, err := s.repo.ListByCategory(ctx, strings.TrimSpace(category))
	if err != nil {
		s.logger.Error("failed to list posts by category", slog.String("category", category), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return s.enrichAll(ctx, posts), nil
}

// ListPostsByAuthor returns enriched posts by one author, newest first
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID int64) ([]*EnrichedPost, error) {
	posts, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		s.logger.Error("failed to list posts by author", slog.Int64("author_id", authorID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return s.enrichAll(ctx, posts), nil
}

// SearchPosts returns enriched posts matching the term in title, summary or
// body, newest first. An empty term matches everything.
func (s *PostService) SearchPosts(ctx context.Context, term string) ([]*EnrichedPost, error) {
	posts, err := s.repo.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		s.logger.Error("failed to search posts", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return s.enrichAll(ctx, posts), nil
}

// CreatePost persists a new post authored by authorID
func (s *PostService) CreatePost(ctx context.Context, post *models.Post) (*EnrichedPost, error) {
	created, err := s.repo.Create(ctx, post)
	if err != nil {
		s.logger.Error("failed to create post", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("post created", slog.Int64("post_id", created.ID), slog.Int64("author_id", created.AuthorID))
	return s.enrich(ctx, created, nil), nil
}

// DeletePost removes a post by id
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete post", slog.Int64("post_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("post deleted", slog.Int64("post_id", id))
	return nil
}

// UpdatePostImage stores the uploaded image and records its URL on the post
func (s *PostService) UpdatePostImage(ctx context.Context, id int64, filename string, size int64, content io.Reader) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrNotFound
		}
		s.logger.Error("failed to get post", slog.Int64("post_id", id), slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	url, err := s.images.SavePostImage(ctx, id, filename, size, content)
	if err != nil {
		s.logger.Error("failed to store post image", slog.Int64("post_id", id), slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	if err := s.repo.UpdateImageURL(ctx, id, url); err != nil {
		s.logger.Error("failed to record post image url", slog.Int64("post_id", id), slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	return url, nil
}

// enrichAll decorates every post. Author lookups are deliberately
// deduplicated within a single call: successful results are cached in the
// per-request authors map so a page of posts by one author costs one lookup,
// while failed lookups are never cached and are retried on the next request.
func (s *PostService) enrichAll(ctx context.Context, posts []*models.Post) []*EnrichedPost {
	authors := make(map[int64]clients.AuthorDetails)

	enriched := make([]*EnrichedPost, 0, len(posts))
	for _, post := range posts {
		enriched = append(enriched, s.enrich(ctx, post, authors))
	}

	return enriched
}

func (s *PostService) enrich(ctx context.Context, post *models.Post, cache map[int64]clients.AuthorDetails) *EnrichedPost {
	enriched := &EnrichedPost{
		ID:          post.ID,
		Title:       post.Title,
		Summary:     post.Summary,
		Content:     post.Content,
		ContentHTML: RenderMarkdown(post.Content),
		Category:    post.Category,
		AuthorID:    post.AuthorID,
		AuthorName:  fallbackAuthorName,
		PublishedAt: post.PublishedAt,
		ImageURL:    post.ImageURL,
	}

	if cache != nil {
		if author, ok := cache[post.AuthorID]; ok {
			enriched.AuthorName = author.Name
			enriched.AuthorImage = author.ProfileImagePath
			return enriched
		}
	}

	author, found := s.users.FetchByID(ctx, post.AuthorID)
	if found {
		enriched.AuthorName = author.Name
		enriched.AuthorImage = author.ProfileImagePath
		if cache != nil {
			cache[post.AuthorID] = author
		}
	}

	return enriched
}
