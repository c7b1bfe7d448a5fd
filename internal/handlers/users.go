package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/geekplay/platform/internal/auth"
	"github.com/geekplay/platform/internal/models"
	"github.com/geekplay/platform/internal/services"
	pkghttp "github.com/geekplay/platform/pkg/http"
	"github.com/go-chi/chi/v5"
)

// maxImageUploadBytes caps profile and post image uploads at 5 MiB
const maxImageUploadBytes = 5 << 20

// UserServiceInterface defines the interface for user business logic
type UserServiceInterface interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, phone string) (*models.User, error)
	ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error
	UpdateBanStatus(ctx context.Context, id int64, bannedUntil int64) error
	UpdateProfileImage(ctx context.Context, id int64, filename string, size int64, content io.Reader) (*models.User, error)
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// UpdateProfileRequest represents the request body for profile updates.
// Blank fields keep their stored values.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
}

// ChangePasswordRequest represents the request body for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// GetUser returns the public projection of a user by numeric id
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid user id")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "user not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, services.UserToResponse(user))
}

// GetUserByEmail returns the public projection of a user by email
func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		pkghttp.WriteBadRequest(w, "email is required")
		return
	}

	user, err := h.service.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "user not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, services.UserToResponse(user))
}

// GetProfile returns the authenticated user's own profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "user not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, services.UserToResponse(user))
}

// UpdateProfile updates the authenticated user's name and phone
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), claims.UserID, req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "user not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, services.UserToResponse(user))
}

// ChangePassword changes the authenticated user's password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	err := h.service.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrWrongPassword):
			pkghttp.WriteUnauthorized(w, "current password is incorrect")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "user not found")
		case errors.Is(err, models.ErrInternalServer):
			pkghttp.WriteInternalError(w, "internal server error")
		default:
			pkghttp.WriteBadRequest(w, "invalid password")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadProfileImage stores a new profile image for the authenticated user
func (h *UserHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	file, header, err := readImageUpload(w, r)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}
	defer file.Close()

	user, err := h.service.UpdateProfileImage(r.Context(), claims.UserID, header.Filename, header.Size, file)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "user not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, services.UserToResponse(user))
}

// UpdateBanStatus sets the user's ban expiry from a raw epoch-millis body.
// The peer moderation-service sends the bare JSON number; 0 clears the ban
// (banned_until is stored as NULL).
func (h *UserHandler) UpdateBanStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid user id")
		return
	}

	var bannedUntil int64
	if err := json.NewDecoder(r.Body).Decode(&bannedUntil); err != nil {
		pkghttp.WriteBadRequest(w, "body must be an epoch-millis integer")
		return
	}
	if bannedUntil < 0 {
		pkghttp.WriteBadRequest(w, "banned_until cannot be negative")
		return
	}

	if err := h.service.UpdateBanStatus(r.Context(), id, bannedUntil); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "user not found")
			return
		}
		pkghttp.WriteInternalError(w, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readImageUpload parses the multipart "image" field with a size cap
func readImageUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		return nil, nil, errors.New("invalid multipart form or file too large")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, nil, errors.New("image field is required")
	}

	return file, header, nil
}
