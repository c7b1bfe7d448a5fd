package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geekplay/platform/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moderationRouter(svc *MockModerationService) *chi.Mux {
	h := NewModerationHandler(svc)
	r := chi.NewRouter()
	r.Post("/moderation/actions", h.ExecuteAction)
	r.Get("/moderation/notifications/{userId}", h.ListNotifications)
	r.Delete("/moderation/notifications/{id}", h.DeleteNotification)
	return r
}

func TestExecuteAction_Accepted(t *testing.T) {
	svc := &MockModerationService{}
	router := moderationRouter(svc)

	body := `{"userId":42,"contentId":"comment-7","contentType":"COMMENT","reason":"acoso","durationMinutes":120}`
	req := httptest.NewRequest(http.MethodPost, "/moderation/actions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, svc.Executed, 1)
	assert.Equal(t, int64(42), svc.Executed[0].UserID)
	assert.Equal(t, "comment-7", svc.Executed[0].ContentID)
	assert.Equal(t, "COMMENT", svc.Executed[0].ContentType)
	assert.Equal(t, 120, svc.Executed[0].DurationMinutes)
}

func TestExecuteAction_PermanentBanAccepted(t *testing.T) {
	svc := &MockModerationService{}
	router := moderationRouter(svc)

	body := `{"userId":7,"contentId":"9","contentType":"POST","reason":"spam"}`
	req := httptest.NewRequest(http.MethodPost, "/moderation/actions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, svc.Executed, 1)
	assert.Equal(t, 0, svc.Executed[0].DurationMinutes)
}

func TestExecuteAction_NegativeDurationRejected(t *testing.T) {
	svc := &MockModerationService{}
	router := moderationRouter(svc)

	body := `{"userId":7,"contentId":"9","contentType":"POST","reason":"spam","durationMinutes":-1}`
	req := httptest.NewRequest(http.MethodPost, "/moderation/actions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.Executed)
}

func TestExecuteAction_MissingFieldsRejected(t *testing.T) {
	svc := &MockModerationService{}
	router := moderationRouter(svc)

	for _, body := range []string{
		`{}`,
		`{"userId":7}`,
		`{"userId":7,"contentId":"9","contentType":"POST"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/moderation/actions", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q should be rejected", body)
	}
	assert.Empty(t, svc.Executed)
}

func TestListNotifications(t *testing.T) {
	svc := &MockModerationService{
		ListNotificationsFunc: func(ctx context.Context, userID int64) ([]*models.BanNotification, error) {
			return []*models.BanNotification{
				{ID: 2, UserID: userID, Reason: "r2", Duration: "Permanente", Timestamp: 200},
				{ID: 1, UserID: userID, Reason: "r1", Duration: "30 minutos", Timestamp: 100},
			}, nil
		},
	}
	router := moderationRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/moderation/notifications/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"duration":"Permanente"`)
	assert.Contains(t, rec.Body.String(), `"duration":"30 minutos"`)
}

func TestDeleteNotification_UnknownIDStillNoContent(t *testing.T) {
	svc := &MockModerationService{
		DeleteNotificationFunc: func(ctx context.Context, id int64) error {
			return models.ErrNotFound
		},
	}
	router := moderationRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/moderation/notifications/999", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
