package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geekplay/platform/internal/models"
	"github.com/geekplay/platform/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interactionRouter(svc *MockInteractionService) *chi.Mux {
	h := NewInteractionHandler(svc)
	r := chi.NewRouter()
	r.Get("/posts/{postId}/comments", h.ListComments)
	r.Post("/posts/{postId}/comments", h.CreateComment)
	r.Delete("/comments/{id}", h.DeleteComment)
	r.Get("/posts/{postId}/likes", h.ListLikes)
	r.Post("/posts/{postId}/likes/toggle", h.ToggleLike)
	return r
}

func TestToggleLike_ReportsState(t *testing.T) {
	var gotEmail string
	svc := &MockInteractionService{
		ToggleLikeFunc: func(ctx context.Context, postID int64, userEmail string) (bool, error) {
			gotEmail = userEmail
			return true, nil
		},
	}
	router := interactionRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/posts/5/likes/toggle", nil)
	req = withClaims(req, 3, "ana@example.com", false)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"liked":true}`, rec.Body.String())
	assert.Equal(t, "ana@example.com", gotEmail)
}

func TestToggleLike_RequiresAuth(t *testing.T) {
	router := interactionRouter(&MockInteractionService{})

	req := httptest.NewRequest(http.MethodPost, "/posts/5/likes/toggle", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateComment_Created(t *testing.T) {
	svc := &MockInteractionService{
		CreateCommentFunc: func(ctx context.Context, postID, authorID int64, content string) (*models.Comment, error) {
			return &models.Comment{ID: "c1", PostID: postID, AuthorID: authorID, Content: content, Timestamp: 1}, nil
		},
	}
	router := interactionRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/posts/5/comments", strings.NewReader(`{"content":"hola"}`))
	req = withClaims(req, 3, "ana@example.com", false)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateComment_EmptyContentRejected(t *testing.T) {
	router := interactionRouter(&MockInteractionService{})

	req := httptest.NewRequest(http.MethodPost, "/posts/5/comments", strings.NewReader(`{"content":""}`))
	req = withClaims(req, 3, "ana@example.com", false)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteComment_NotFound(t *testing.T) {
	svc := &MockInteractionService{
		DeleteCommentFunc: func(ctx context.Context, id string) error {
			return models.ErrNotFound
		},
	}
	router := interactionRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/comments/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListComments_EnrichedPayload(t *testing.T) {
	svc := &MockInteractionService{
		ListCommentsFunc: func(ctx context.Context, postID int64) ([]*services.EnrichedComment, error) {
			return []*services.EnrichedComment{
				{ID: "c1", PostID: postID, AuthorID: 1, AuthorName: "Ana", Content: "hola", Timestamp: 2},
				{ID: "c2", PostID: postID, AuthorID: 2, AuthorName: "Usuario Eliminado", Content: "chao", Timestamp: 1},
			}, nil
		},
	}
	router := interactionRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/posts/5/comments", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authorName":"Ana"`)
	assert.Contains(t, rec.Body.String(), `"authorName":"Usuario Eliminado"`)
}
