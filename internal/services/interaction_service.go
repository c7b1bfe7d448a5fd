package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/geekplay/platform/internal/models"
	"github.com/google/uuid"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// LikeRepository defines the interface for like data access
type LikeRepository interface {
	GetByPostAndEmail(ctx context.Context, postID int64, userEmail string) (*models.Like, error)
	ListByPost(ctx context.Context, postID int64) ([]*models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	DeleteByPostAndEmail(ctx context.Context, postID int64, userEmail string) error
}

// EnrichedComment is a comment decorated with author display details
type EnrichedComment struct {
	ID          string  `json:"id"`
	PostID      int64   `json:"postId"`
	AuthorID    int64   `json:"authorId"`
	AuthorName  string  `json:"authorName"`
	AuthorImage *string `json:"authorImage"`
	Content     string  `json:"content"`
	Timestamp   int64   `json:"timestamp"`
}

// EnrichedLike is a like decorated with the liker's display name
type EnrichedLike struct {
	PostID    int64  `json:"postId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Timestamp int64  `json:"timestamp"`
}

// InteractionService handles comments and likes for the interaction-service
type InteractionService struct {
	comments CommentRepository
	likes    LikeRepository
	users    AuthorLookup
	logger   *slog.Logger
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(comments CommentRepository, likes LikeRepository, users AuthorLookup, logger *slog.Logger) *InteractionService {
	return &InteractionService{
		comments: comments,
		likes:    likes,
		users:    users,
		logger:   logger,
	}
}

// ListComments returns the comments on a post, newest first, enriched with
// author details. A failed lookup degrades the display name, never the list.
func (s *InteractionService) ListComments(ctx context.Context, postID int64) ([]*EnrichedComment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to list comments", slog.Int64("post_id", postID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	enriched := make([]*EnrichedComment, 0, len(comments))
	for _, comment := range comments {
		item := &EnrichedComment{
			ID:         comment.ID,
			PostID:     comment.PostID,
			AuthorID:   comment.AuthorID,
			AuthorName: fallbackCommenter,
			Content:    comment.Content,
			Timestamp:  comment.Timestamp,
		}

		if author, found := s.users.FetchByID(ctx, comment.AuthorID); found {
			item.AuthorName = author.Name
			item.AuthorImage = author.ProfileImagePath
		}

		enriched = append(enriched, item)
	}

	return enriched, nil
}

// CreateComment persists a new comment. Markup is stripped from the content
// before storage.
func (s *InteractionService) CreateComment(ctx context.Context, postID, authorID int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(SanitizeComment(content))
	if content == "" {
		return nil, models.ErrBadRequest
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		s.logger.Error("failed to create comment", slog.Int64("post_id", postID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("comment created",
		slog.String("comment_id", created.ID),
		slog.Int64("post_id", postID))
	return created, nil
}

// DeleteComment removes a comment by id
func (s *InteractionService) DeleteComment(ctx context.Context, id string) error {
	err := s.comments.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete comment", slog.String("comment_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("comment deleted", slog.String("comment_id", id))
	return nil
}

// ListLikes returns the likes on a post enriched with the likers' names
func (s *InteractionService) ListLikes(ctx context.Context, postID int64) ([]*EnrichedLike, error) {
	likes, err := s.likes.ListByPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to list likes", slog.Int64("post_id", postID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	enriched := make([]*EnrichedLike, 0, len(likes))
	for _, like := range likes {
		item := &EnrichedLike{
			PostID:    like.PostID,
			UserEmail: like.UserEmail,
			UserName:  fallbackLikerName,
			Timestamp: like.Timestamp,
		}

		if user, found := s.users.FetchByEmail(ctx, like.UserEmail); found {
			item.UserName = user.Name
		}

		enriched = append(enriched, item)
	}

	return enriched, nil
}

// ToggleLike flips the like state for (postID, userEmail) and reports the
// resulting state: true if the post is now liked, false if the like was
// removed. The row's existence is the entire state, so the operation is a
// delete-if-present, insert-otherwise on the composite key.
func (s *InteractionService) ToggleLike(ctx context.Context, postID int64, userEmail string) (bool, error) {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return false, models.ErrBadRequest
	}

	_, err := s.likes.GetByPostAndEmail(ctx, postID, userEmail)
	switch {
	case err == nil:
		if err := s.likes.DeleteByPostAndEmail(ctx, postID, userEmail); err != nil {
			s.logger.Error("failed to remove like", slog.Int64("post_id", postID), slog.Any("error", err))
			return false, models.ErrInternalServer
		}
		s.logger.Info("like removed", slog.Int64("post_id", postID))
		return false, nil

	case errors.Is(err, models.ErrNotFound):
		like := &models.Like{
			PostID:    postID,
			UserEmail: userEmail,
			Timestamp: time.Now().UnixMilli(),
		}
		if err := s.likes.Create(ctx, like); err != nil {
			// A concurrent toggle won the insert race; the end state is
			// still "liked", which is all the caller asked for.
			if errors.Is(err, models.ErrConflict) {
				return true, nil
			}
			s.logger.Error("failed to add like", slog.Int64("post_id", postID), slog.Any("error", err))
			return false, models.ErrInternalServer
		}
		s.logger.Info("like added", slog.Int64("post_id", postID))
		return true, nil

	default:
		s.logger.Error("failed to check like state", slog.Int64("post_id", postID), slog.Any("error", err))
		return false, models.ErrInternalServer
	}
}
