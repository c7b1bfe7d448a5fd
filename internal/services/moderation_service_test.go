package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/geekplay/platform/internal/clients"
	"github.com/geekplay/platform/internal/models"
	pkglogger "github.com/geekplay/platform/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModerationService(users *MockUserDirectory, posts *MockPostDeleter, comments *MockCommentDeleter, notifications *MockNotificationRepository, emailer BanNoticeSender) *ModerationService {
	logger := slog.Default()
	return NewModerationService(users, posts, comments, notifications, emailer, logger, pkglogger.NewAuditLogger(logger))
}

func TestExecuteModeration_CommentScenario(t *testing.T) {
	users := &MockUserDirectory{}
	posts := &MockPostDeleter{}
	comments := &MockCommentDeleter{}
	notifications := &MockNotificationRepository{}

	svc := newModerationService(users, posts, comments, notifications, nil)

	before := time.Now().UnixMilli()
	svc.ExecuteModeration(context.Background(), ModerationRequest{
		UserID:          42,
		ContentID:       "comment-7",
		ContentType:     "COMMENT",
		Reason:          "acoso",
		DurationMinutes: 120,
	})
	after := time.Now().UnixMilli()

	require.Len(t, notifications.Created, 1)
	n := notifications.Created[0]

	assert.Equal(t, int64(42), n.UserID)
	assert.Contains(t, n.Reason, "comentario")
	assert.Contains(t, n.Reason, "acoso")
	assert.Equal(t, "120 minutos", n.Duration)
	assert.Equal(t, "Contacta a soporte@geekplay.cl para apelar.", n.AppealGuide)
	assert.False(t, n.IsRead)

	// Comment deleted, post untouched
	assert.Equal(t, []string{"comment-7"}, comments.Deleted)
	assert.Empty(t, posts.Deleted)

	// Ban expiry is 120 minutes from now
	require.Len(t, users.BanCalls, 1)
	expected := before + 120*60_000
	assert.GreaterOrEqual(t, users.BanCalls[0], expected)
	assert.LessOrEqual(t, users.BanCalls[0], after+120*60_000)
}

func TestExecuteModeration_PostDispatch(t *testing.T) {
	users := &MockUserDirectory{}
	posts := &MockPostDeleter{}
	comments := &MockCommentDeleter{}
	notifications := &MockNotificationRepository{}

	svc := newModerationService(users, posts, comments, notifications, nil)

	svc.ExecuteModeration(context.Background(), ModerationRequest{
		UserID:          7,
		ContentID:       "15",
		ContentType:     "POST",
		Reason:          "spam",
		DurationMinutes: 45,
	})

	assert.Equal(t, []string{"15"}, posts.Deleted)
	assert.Empty(t, comments.Deleted)

	require.Len(t, notifications.Created, 1)
	assert.True(t, strings.HasPrefix(notifications.Created[0].Reason, "Tu publicación ha sido eliminada."))
	assert.Contains(t, notifications.Created[0].Reason, "Motivo: spam")
}

func TestExecuteModeration_ContentTypeCaseInsensitive(t *testing.T) {
	for _, contentType := range []string{"post", "Post", "POST", " post "} {
		posts := &MockPostDeleter{}
		svc := newModerationService(&MockUserDirectory{}, posts, &MockCommentDeleter{}, &MockNotificationRepository{}, nil)

		svc.ExecuteModeration(context.Background(), ModerationRequest{
			UserID:      1,
			ContentID:   "9",
			ContentType: contentType,
			Reason:      "spam",
		})

		assert.Len(t, posts.Deleted, 1, "content type %q should dispatch to post deletion", contentType)
	}
}

func TestExecuteModeration_UnknownTypeSkipsDeletion(t *testing.T) {
	users := &MockUserDirectory{}
	posts := &MockPostDeleter{}
	comments := &MockCommentDeleter{}
	notifications := &MockNotificationRepository{}

	svc := newModerationService(users, posts, comments, notifications, nil)

	svc.ExecuteModeration(context.Background(), ModerationRequest{
		UserID:          3,
		ContentID:       "whatever",
		ContentType:     "PROFILE",
		Reason:          "conducta",
		DurationMinutes: 10,
	})

	assert.Empty(t, posts.Deleted)
	assert.Empty(t, comments.Deleted)
	assert.Len(t, users.BanCalls, 1)

	require.Len(t, notifications.Created, 1)
	assert.True(t, strings.HasPrefix(notifications.Created[0].Reason, "Aviso de Moderación"))
}

func TestExecuteModeration_PermanentBanSentinel(t *testing.T) {
	for _, minutes := range []int{0, -5} {
		users := &MockUserDirectory{}
		notifications := &MockNotificationRepository{}
		svc := newModerationService(users, &MockPostDeleter{}, &MockCommentDeleter{}, notifications, nil)

		svc.ExecuteModeration(context.Background(), ModerationRequest{
			UserID:          8,
			ContentID:       "1",
			ContentType:     "POST",
			Reason:          "grave",
			DurationMinutes: minutes,
		})

		require.Len(t, users.BanCalls, 1)
		assert.Equal(t, int64(0), users.BanCalls[0])

		require.Len(t, notifications.Created, 1)
		assert.Equal(t, "Permanente", notifications.Created[0].Duration)
	}
}

// Every combination of remote failures still produces exactly one persisted
// notification and never panics or surfaces an error.
func TestExecuteModeration_AlwaysRecordsNotification(t *testing.T) {
	remoteErr := errors.New("peer unavailable")

	cases := []struct {
		name       string
		banFails   bool
		deleteFails bool
	}{
		{name: "all succeed"},
		{name: "ban fails", banFails: true},
		{name: "delete fails", deleteFails: true},
		{name: "both fail", banFails: true, deleteFails: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := &MockUserDirectory{}
			if tc.banFails {
				users.UpdateBanStatusFunc = func(ctx context.Context, userID, bannedUntil int64) error {
					return remoteErr
				}
			}

			posts := &MockPostDeleter{}
			if tc.deleteFails {
				posts.DeletePostFunc = func(ctx context.Context, postID string) error {
					return remoteErr
				}
			}

			notifications := &MockNotificationRepository{}
			svc := newModerationService(users, posts, &MockCommentDeleter{}, notifications, nil)

			svc.ExecuteModeration(context.Background(), ModerationRequest{
				UserID:          11,
				ContentID:       "3",
				ContentType:     "POST",
				Reason:          "spam",
				DurationMinutes: 30,
			})

			require.Len(t, notifications.Created, 1)
			assert.Equal(t, int64(11), notifications.Created[0].UserID)
		})
	}
}

func TestExecuteModeration_NotificationStoreFailureIsSwallowed(t *testing.T) {
	notifications := &MockNotificationRepository{
		CreateFunc: func(ctx context.Context, n *models.BanNotification) (*models.BanNotification, error) {
			return nil, models.ErrInternalServer
		},
	}

	svc := newModerationService(&MockUserDirectory{}, &MockPostDeleter{}, &MockCommentDeleter{}, notifications, nil)

	assert.NotPanics(t, func() {
		svc.ExecuteModeration(context.Background(), ModerationRequest{
			UserID:      5,
			ContentID:   "2",
			ContentType: "COMMENT",
			Reason:      "spam",
		})
	})
}

func TestExecuteModeration_SendsNoticeWhenUserResolves(t *testing.T) {
	users := &MockUserDirectory{
		FetchByIDFunc: func(ctx context.Context, id int64) (clients.AuthorDetails, bool) {
			return clients.AuthorDetails{ID: id, Name: "Ana", Email: "ana@example.com"}, true
		},
	}
	emailer := &MockBanNoticeSender{}

	svc := newModerationService(users, &MockPostDeleter{}, &MockCommentDeleter{}, &MockNotificationRepository{}, emailer)

	svc.ExecuteModeration(context.Background(), ModerationRequest{
		UserID:          21,
		ContentID:       "4",
		ContentType:     "POST",
		Reason:          "spam",
		DurationMinutes: 60,
	})

	assert.Equal(t, []string{"ana@example.com"}, emailer.Sent)
}

func TestExecuteModeration_EmailFailureIsSwallowed(t *testing.T) {
	users := &MockUserDirectory{
		FetchByIDFunc: func(ctx context.Context, id int64) (clients.AuthorDetails, bool) {
			return clients.AuthorDetails{ID: id, Email: "a@b.c"}, true
		},
	}
	emailer := &MockBanNoticeSender{
		SendBanNoticeFunc: func(ctx context.Context, email, reason, duration string) error {
			return errors.New("ses unavailable")
		},
	}
	notifications := &MockNotificationRepository{}

	svc := newModerationService(users, &MockPostDeleter{}, &MockCommentDeleter{}, notifications, emailer)

	assert.NotPanics(t, func() {
		svc.ExecuteModeration(context.Background(), ModerationRequest{
			UserID:      1,
			ContentID:   "1",
			ContentType: "POST",
			Reason:      "spam",
		})
	})
	assert.Len(t, notifications.Created, 1)
}

func TestDeleteNotification_MissingIsNoop(t *testing.T) {
	notifications := &MockNotificationRepository{
		DeleteFunc: func(ctx context.Context, id int64) error {
			return models.ErrNotFound
		},
	}

	svc := newModerationService(&MockUserDirectory{}, &MockPostDeleter{}, &MockCommentDeleter{}, notifications, nil)

	assert.NoError(t, svc.DeleteNotification(context.Background(), 999))
}

func TestListNotifications(t *testing.T) {
	notifications := &MockNotificationRepository{
		ListByUserFunc: func(ctx context.Context, userID int64) ([]*models.BanNotification, error) {
			return []*models.BanNotification{
				{ID: 2, UserID: userID, Timestamp: 200},
				{ID: 1, UserID: userID, Timestamp: 100},
			}, nil
		},
	}

	svc := newModerationService(&MockUserDirectory{}, &MockPostDeleter{}, &MockCommentDeleter{}, notifications, nil)

	list, err := svc.ListNotifications(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].Timestamp, list[1].Timestamp)
}
