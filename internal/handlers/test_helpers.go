package handlers

import (
	"context"
	"io"

	"github.com/geekplay/platform/internal/models"
	"github.com/geekplay/platform/internal/services"
)

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	RegisterFunc     func(ctx context.Context, name, email, phone, password string) (*services.AuthResponse, error)
	LoginFunc        func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, name, email, phone, password string) (*services.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, phone, password)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, models.ErrUnauthorized
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return nil, models.ErrUnauthorized
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	GetUserByIDFunc        func(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	UpdateProfileFunc      func(ctx context.Context, id int64, name, phone string) (*models.User, error)
	ChangePasswordFunc     func(ctx context.Context, id int64, currentPassword, newPassword string) error
	UpdateBanStatusFunc    func(ctx context.Context, id int64, bannedUntil int64) error
	UpdateProfileImageFunc func(ctx context.Context, id int64, filename string, size int64, content io.Reader) (*models.User, error)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id int64, name, phone string) (*models.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, name, phone)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, id, currentPassword, newPassword)
	}
	return nil
}

func (m *MockUserService) UpdateBanStatus(ctx context.Context, id int64, bannedUntil int64) error {
	if m.UpdateBanStatusFunc != nil {
		return m.UpdateBanStatusFunc(ctx, id, bannedUntil)
	}
	return nil
}

func (m *MockUserService) UpdateProfileImage(ctx context.Context, id int64, filename string, size int64, content io.Reader) (*models.User, error) {
	if m.UpdateProfileImageFunc != nil {
		return m.UpdateProfileImageFunc(ctx, id, filename, size, content)
	}
	return nil, models.ErrNotFound
}

// MockInteractionService implements InteractionServiceInterface for testing
type MockInteractionService struct {
	ListCommentsFunc  func(ctx context.Context, postID int64) ([]*services.EnrichedComment, error)
	CreateCommentFunc func(ctx context.Context, postID, authorID int64, content string) (*models.Comment, error)
	DeleteCommentFunc func(ctx context.Context, id string) error
	ListLikesFunc     func(ctx context.Context, postID int64) ([]*services.EnrichedLike, error)
	ToggleLikeFunc    func(ctx context.Context, postID int64, userEmail string) (bool, error)
}

func (m *MockInteractionService) ListComments(ctx context.Context, postID int64) ([]*services.EnrichedComment, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, postID)
	}
	return []*services.EnrichedComment{}, nil
}

func (m *MockInteractionService) CreateComment(ctx context.Context, postID, authorID int64, content string) (*models.Comment, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, postID, authorID, content)
	}
	return nil, models.ErrInternalServer
}

func (m *MockInteractionService) DeleteComment(ctx context.Context, id string) error {
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(ctx, id)
	}
	return nil
}

func (m *MockInteractionService) ListLikes(ctx context.Context, postID int64) ([]*services.EnrichedLike, error) {
	if m.ListLikesFunc != nil {
		return m.ListLikesFunc(ctx, postID)
	}
	return []*services.EnrichedLike{}, nil
}

func (m *MockInteractionService) ToggleLike(ctx context.Context, postID int64, userEmail string) (bool, error) {
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, postID, userEmail)
	}
	return true, nil
}

// MockModerationService implements ModerationServiceInterface for testing
type MockModerationService struct {
	ExecuteModerationFunc  func(ctx context.Context, req services.ModerationRequest)
	ListNotificationsFunc  func(ctx context.Context, userID int64) ([]*models.BanNotification, error)
	DeleteNotificationFunc func(ctx context.Context, id int64) error

	Executed []services.ModerationRequest
}

func (m *MockModerationService) ExecuteModeration(ctx context.Context, req services.ModerationRequest) {
	m.Executed = append(m.Executed, req)
	if m.ExecuteModerationFunc != nil {
		m.ExecuteModerationFunc(ctx, req)
	}
}

func (m *MockModerationService) ListNotifications(ctx context.Context, userID int64) ([]*models.BanNotification, error) {
	if m.ListNotificationsFunc != nil {
		return m.ListNotificationsFunc(ctx, userID)
	}
	return []*models.BanNotification{}, nil
}

func (m *MockModerationService) DeleteNotification(ctx context.Context, id int64) error {
	if m.DeleteNotificationFunc != nil {
		return m.DeleteNotificationFunc(ctx, id)
	}
	return nil
}
