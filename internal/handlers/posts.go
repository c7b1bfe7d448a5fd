package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/geekplay/platform/internal/auth"
	"github.com/geekplay/platform/internal/models"
	"github.com/geekplay/platform/internal/services"
	pkghttp "github.com/geekplay/platform/pkg/http"
	"github.com/go-chi/chi/v5"
)

// PostServiceInterface defines the interface for post business logic
type PostServiceInterface interface {
	ListPosts(ctx context.Context) ([]*services.EnrichedPost, error)
	GetPost(ctx context.Context, id int64) (*services.EnrichedPost, error)
	ListPostsByCategory(ctx context.Context, category string) ([]*services.EnrichedPost, error)
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]*services.EnrichedPost, error)
	SearchPosts(ctx context.Context, term string) ([]*services.EnrichedPost, error)
	CreatePost(ctx context.Context, post *models.Post) (*services.EnrichedPost, error)
	DeletePost(ctx context.Context, id int64) error
	UpdatePostImage(ctx context.Context, id int64, filename string, size int64, content io.Reader) (string, error)
}

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	service PostServiceInterface
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service PostServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Summary  string `json:"summary" validate:"required,min=1,max=500"`
	Content  string `json:"content" validate:"required,min=1"`
	Category string `json:"category" validate:"required,min=1,max=50"`
}

// ListPosts returns all posts, newest first
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// GetPost returns a single post by id
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid post id")
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "post not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// ListByCategory returns the posts in a category
func (h *PostHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		pkghttp.WriteBadRequest(w, "category is required")
		return
	}

	posts, err := h.service.ListPostsByCategory(r.Context(), category)
	if err != nil {
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// ListByAuthor returns the posts written by one author
func (h *PostHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := strconv.ParseInt(chi.URLParam(r, "authorId"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid author id")
		return
	}

	posts, err := h.service.ListPostsByAuthor(r.Context(), authorID)
	if err != nil {
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// SearchPosts returns posts matching the q query parameter
func (h *PostHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.SearchPosts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// CreatePost creates a post authored by the authenticated user
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	post := &models.Post{
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Category: req.Category,
		AuthorID: claims.UserID,
	}

	created, err := h.service.CreatePost(r.Context(), post)
	if err != nil {
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// DeletePost removes a post. Reachable by the author or an admin through
// the public route, and by peers through the internal route.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid post id")
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "post not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteOwnPost enforces that only the author or an admin deletes a post
func (h *PostHandler) DeleteOwnPost(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid post id")
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "post not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	if post.AuthorID != claims.UserID && !claims.IsAdmin {
		pkghttp.WriteForbidden(w, "you cannot delete this post")
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPostImage attaches an image to a post
func (h *PostHandler) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid post id")
		return
	}

	file, header, err := readImageUpload(w, r)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}
	defer file.Close()

	url, err := h.service.UpdatePostImage(r.Context(), id, header.Filename, header.Size, file)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "post not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}
