package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/geekplay/platform/internal/models"
	"github.com/geekplay/platform/internal/services"
	pkghttp "github.com/geekplay/platform/pkg/http"
	"github.com/go-chi/chi/v5"
)

// ModerationServiceInterface defines the interface for moderation logic
type ModerationServiceInterface interface {
	ExecuteModeration(ctx context.Context, req services.ModerationRequest)
	ListNotifications(ctx context.Context, userID int64) ([]*models.BanNotification, error)
	DeleteNotification(ctx context.Context, id int64) error
}

// ModerationHandler handles moderation HTTP requests
type ModerationHandler struct {
	service ModerationServiceInterface
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(service ModerationServiceInterface) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// ModerationActionRequest represents the request body for a moderation
// action. DurationMinutes of zero means a permanent ban; negative values are
// rejected at this boundary.
type ModerationActionRequest struct {
	UserID          int64  `json:"userId" validate:"required,gt=0"`
	ContentID       string `json:"contentId" validate:"required"`
	ContentType     string `json:"contentType" validate:"required"`
	Reason          string `json:"reason" validate:"required,min=1,max=500"`
	DurationMinutes int    `json:"durationMinutes" validate:"gte=0"`
}

// BanNotificationResponse represents a stored notification
type BanNotificationResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Reason      string `json:"reason"`
	Duration    string `json:"duration"`
	AppealGuide string `json:"appealGuide"`
	Timestamp   int64  `json:"timestamp"`
	IsRead      bool   `json:"isRead"`
}

// ExecuteAction runs a moderation action. The orchestration itself never
// fails, so a valid request is always accepted.
func (h *ModerationHandler) ExecuteAction(w http.ResponseWriter, r *http.Request) {
	var req ModerationActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	h.service.ExecuteModeration(r.Context(), services.ModerationRequest{
		UserID:          req.UserID,
		ContentID:       req.ContentID,
		ContentType:     req.ContentType,
		Reason:          req.Reason,
		DurationMinutes: req.DurationMinutes,
	})

	w.WriteHeader(http.StatusAccepted)
}

// ListNotifications returns a user's moderation notifications, newest first
func (h *ModerationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid user id")
		return
	}

	notifications, err := h.service.ListNotifications(r.Context(), userID)
	if err != nil {
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	resp := make([]*BanNotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, &BanNotificationResponse{
			ID:          n.ID,
			UserID:      n.UserID,
			Reason:      n.Reason,
			Duration:    n.Duration,
			AppealGuide: n.AppealGuide,
			Timestamp:   n.Timestamp,
			IsRead:      n.IsRead,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeleteNotification removes a notification. Deleting an unknown id is a
// no-op and still returns 204.
func (h *ModerationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid notification id")
		return
	}

	if err := h.service.DeleteNotification(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
