package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/geekplay/platform/internal/models"
	pkgauth "github.com/geekplay/platform/pkg/auth"
	pkglogger "github.com/geekplay/platform/pkg/logger"
)

// ProfileImageStore defines the interface for storing profile images
type ProfileImageStore interface {
	SaveProfileImage(ctx context.Context, userID int64, filename string, size int64, content io.Reader) (string, error)
}

// UserService handles user business logic for the user-service
type UserService struct {
	repo        UserRepository
	images      ProfileImageStore
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewUserService creates a new UserService
func NewUserService(repo UserRepository, images ProfileImageStore, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *UserService {
	return &UserService{
		repo:        repo,
		images:      images,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("user not found", slog.Int64("user_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Int64("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("user not found by email")
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return user, nil
}

// UpdateProfile merges the provided fields into the stored profile. Blank
// fields keep their current values.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, name, phone string) (*models.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("user not found", slog.Int64("user_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Int64("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if name = strings.TrimSpace(name); name != "" {
		existing.Name = name
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		existing.Phone = phone
	}

	updated, err := s.repo.UpdateProfile(ctx, id, existing)
	if err != nil {
		s.logger.Error("failed to update profile", slog.Int64("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("profile updated", slog.Int64("user_id", id))
	return updated, nil
}

// ChangePassword verifies the current password before setting a new one
func (s *UserService) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Int64("user_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		s.auditLogger.LogPasswordChange(id, "", false)
		return models.ErrWrongPassword
	}

	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.repo.UpdatePassword(ctx, id, hashed); err != nil {
		s.logger.Error("failed to update password", slog.Int64("user_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.auditLogger.LogPasswordChange(id, "", true)
	s.logger.Info("password changed", slog.Int64("user_id", id))
	return nil
}

// UpdateBanStatus sets or clears the user's ban expiry. bannedUntil is epoch
// millis; zero (or anything non-positive) is the "not banned" sentinel the
// internal ban endpoint sends in place of null.
func (s *UserService) UpdateBanStatus(ctx context.Context, id int64, bannedUntil int64) error {
	var expiry *int64
	if bannedUntil > 0 {
		expiry = &bannedUntil
	}

	err := s.repo.UpdateBannedUntil(ctx, id, expiry)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("ban update for unknown user", slog.Int64("user_id", id))
			return models.ErrNotFound
		}
		s.logger.Error("failed to update ban status", slog.Int64("user_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("ban status updated",
		slog.Int64("user_id", id),
		slog.Int64("banned_until", bannedUntil))
	return nil
}

// UpdateProfileImage stores the uploaded image and records its path
func (s *UserService) UpdateProfileImage(ctx context.Context, id int64, filename string, size int64, content io.Reader) (*models.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Int64("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	path, err := s.images.SaveProfileImage(ctx, id, filename, size, content)
	if err != nil {
		s.logger.Error("failed to store profile image", slog.Int64("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	existing.ProfileImagePath = &path

	updated, err := s.repo.UpdateProfile(ctx, id, existing)
	if err != nil {
		s.logger.Error("failed to record profile image path", slog.Int64("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("profile image updated", slog.Int64("user_id", id))
	return updated, nil
}
