package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/geekplay/platform/internal/clients"
	"github.com/geekplay/platform/internal/models"
	pkglogger "github.com/geekplay/platform/pkg/logger"
)

// Fixed notification text. The duration label and title feed into the stored
// notification and the optional email, in Spanish like the rest of the
// user-facing copy.
const (
	appealGuide        = "Contacta a soporte@geekplay.cl para apelar."
	titlePostDeleted   = "Tu publicación ha sido eliminada."
	titleCommentDeleted = "Tu comentario ha sido eliminado."
	titleGenericNotice = "Aviso de Moderación"
	permanentLabel     = "Permanente"
)

// UserDirectory is the moderation-side view of the user-service: apply bans
// and resolve emails for the courtesy notice.
type UserDirectory interface {
	UpdateBanStatus(ctx context.Context, userID int64, bannedUntil int64) error
	FetchByID(ctx context.Context, id int64) (clients.AuthorDetails, bool)
}

// PostDeleter removes posts via the content-service
type PostDeleter interface {
	DeletePost(ctx context.Context, postID string) error
}

// CommentDeleter removes comments via the interaction-service
type CommentDeleter interface {
	DeleteComment(ctx context.Context, commentID string) error
}

// NotificationRepository defines the interface for ban notification storage
type NotificationRepository interface {
	Create(ctx context.Context, n *models.BanNotification) (*models.BanNotification, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.BanNotification, error)
	Delete(ctx context.Context, id int64) error
}

// BanNoticeSender sends the optional courtesy email for a moderation action
type BanNoticeSender interface {
	SendBanNotice(ctx context.Context, email, reason, duration string) error
}

// ModerationRequest describes one action against a user and a piece of
// their content. DurationMinutes of zero means a permanent ban.
type ModerationRequest struct {
	UserID          int64
	ContentID       string
	ContentType     string // "POST" or "COMMENT", compared case-insensitively
	Reason          string
	DurationMinutes int
}

// ModerationService orchestrates moderation actions across the peer
// services. Its contract is deliberately one-sided: ExecuteModeration never
// reports failure to the caller. Remote calls are best-effort, and the local
// notification record is written no matter what happened before it.
type ModerationService struct {
	users         UserDirectory
	posts         PostDeleter
	comments      CommentDeleter
	notifications NotificationRepository
	emailer       BanNoticeSender
	logger        *slog.Logger
	auditLogger   *pkglogger.AuditLogger
}

// NewModerationService creates a new ModerationService. emailer may be nil
// when outbound email is disabled.
func NewModerationService(
	users UserDirectory,
	posts PostDeleter,
	comments CommentDeleter,
	notifications NotificationRepository,
	emailer BanNoticeSender,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
) *ModerationService {
	return &ModerationService{
		users:         users,
		posts:         posts,
		comments:      comments,
		notifications: notifications,
		emailer:       emailer,
		logger:        logger,
		auditLogger:   auditLogger,
	}
}

// ExecuteModeration runs the three moderation steps in order: apply the ban,
// delete the offending content, persist the notification record. Steps one
// and two are remote and may fail; their failures are logged and swallowed
// so that step three always runs. There is no rollback.
func (s *ModerationService) ExecuteModeration(ctx context.Context, req ModerationRequest) {
	now := time.Now().UnixMilli()

	var bannedUntil int64
	duration := permanentLabel
	if req.DurationMinutes > 0 {
		bannedUntil = now + int64(req.DurationMinutes)*60_000
		duration = fmt.Sprintf("%d minutos", req.DurationMinutes)
	}

	banApplied := true
	if err := s.users.UpdateBanStatus(ctx, req.UserID, bannedUntil); err != nil {
		banApplied = false
		s.logger.Error("moderation: ban call failed",
			slog.Int64("user_id", req.UserID),
			slog.Any("error", err))
	}

	title := titleGenericNotice
	contentDeleted := false
	switch strings.ToUpper(strings.TrimSpace(req.ContentType)) {
	case "POST":
		title = titlePostDeleted
		if err := s.posts.DeletePost(ctx, req.ContentID); err != nil {
			s.logger.Error("moderation: post deletion failed",
				slog.String("content_id", req.ContentID),
				slog.Any("error", err))
		} else {
			contentDeleted = true
		}
	case "COMMENT":
		title = titleCommentDeleted
		if err := s.comments.DeleteComment(ctx, req.ContentID); err != nil {
			s.logger.Error("moderation: comment deletion failed",
				slog.String("content_id", req.ContentID),
				slog.Any("error", err))
		} else {
			contentDeleted = true
		}
	default:
		// Unknown content types skip deletion; the notification still
		// records the action under the generic title.
	}

	notification := &models.BanNotification{
		UserID:      req.UserID,
		Reason:      title + " Motivo: " + req.Reason,
		Duration:    duration,
		AppealGuide: appealGuide,
		Timestamp:   now,
		IsRead:      false,
	}

	if _, err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Error("moderation: failed to persist notification",
			slog.Int64("user_id", req.UserID),
			slog.Any("error", err))
	}

	s.auditLogger.LogModerationAction(req.UserID, req.ContentType, req.ContentID,
		req.DurationMinutes, banApplied, contentDeleted)

	s.sendNotice(ctx, req.UserID, notification.Reason, duration)
}

// sendNotice emails the sanctioned user if email is enabled and their
// address can still be resolved. Purely best-effort.
func (s *ModerationService) sendNotice(ctx context.Context, userID int64, reason, duration string) {
	if s.emailer == nil {
		return
	}

	user, found := s.users.FetchByID(ctx, userID)
	if !found || user.Email == "" {
		s.logger.Debug("moderation: no email address for notice", slog.Int64("user_id", userID))
		return
	}

	if err := s.emailer.SendBanNotice(ctx, user.Email, reason, duration); err != nil {
		s.logger.Warn("moderation: failed to send notice email",
			slog.Int64("user_id", userID),
			slog.Any("error", err))
	}
}

// ListNotifications returns a user's moderation notifications, newest first
func (s *ModerationService) ListNotifications(ctx context.Context, userID int64) ([]*models.BanNotification, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list notifications", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return notifications, nil
}

// DeleteNotification removes a notification record. Unknown ids are a no-op.
func (s *ModerationService) DeleteNotification(ctx context.Context, id int64) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		s.logger.Error("failed to delete notification", slog.Int64("notification_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	return nil
}
