package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/geekplay/platform/internal/auth"
	"github.com/geekplay/platform/internal/models"
	"github.com/geekplay/platform/internal/services"
	pkghttp "github.com/geekplay/platform/pkg/http"
	"github.com/go-chi/chi/v5"
)

// InteractionServiceInterface defines the interface for comment and like logic
type InteractionServiceInterface interface {
	ListComments(ctx context.Context, postID int64) ([]*services.EnrichedComment, error)
	CreateComment(ctx context.Context, postID, authorID int64, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	ListLikes(ctx context.Context, postID int64) ([]*services.EnrichedLike, error)
	ToggleLike(ctx context.Context, postID int64, userEmail string) (bool, error)
}

// InteractionHandler handles comment and like HTTP requests
type InteractionHandler struct {
	service InteractionServiceInterface
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(service InteractionServiceInterface) *InteractionHandler {
	return &InteractionHandler{service: service}
}

// CreateCommentRequest represents the request body for creating a comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// ToggleLikeResponse reports the like state after a toggle
type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}

// ListComments returns the comments on a post, newest first
func (h *InteractionHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid post id")
		return
	}

	comments, err := h.service.ListComments(r.Context(), postID)
	if err != nil {
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// CreateComment adds a comment authored by the authenticated user
func (h *InteractionHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid post id")
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	comment, err := h.service.CreateComment(r.Context(), postID, claims.UserID, req.Content)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "comment has no content after sanitization")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// DeleteComment removes a comment by id. Used by the moderation-service
// through the internal route.
func (h *InteractionHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteBadRequest(w, "comment id is required")
		return
	}

	if err := h.service.DeleteComment(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "comment not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLikes returns the likes on a post
func (h *InteractionHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid post id")
		return
	}

	likes, err := h.service.ListLikes(r.Context(), postID)
	if err != nil {
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

// ToggleLike flips the authenticated user's like on a post and returns the
// resulting state
func (h *InteractionHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid post id")
		return
	}

	liked, err := h.service.ToggleLike(r.Context(), postID, claims.Email)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "user email is required")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ToggleLikeResponse{Liked: liked})
}
