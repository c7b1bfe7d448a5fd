package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/geekplay/platform/internal/clients"
	"github.com/geekplay/platform/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc           func(ctx context.Context, id int64) (*models.User, error)
	GetByEmailFunc        func(ctx context.Context, email string) (*models.User, error)
	CreateFunc            func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateProfileFunc     func(ctx context.Context, id int64, user *models.User) (*models.User, error)
	UpdatePasswordFunc    func(ctx context.Context, id int64, passwordHash string) error
	UpdateBannedUntilFunc func(ctx context.Context, id int64, bannedUntil *int64) error
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, user)
	}
	return user, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) UpdateBannedUntil(ctx context.Context, id int64, bannedUntil *int64) error {
	if m.UpdateBannedUntilFunc != nil {
		return m.UpdateBannedUntilFunc(ctx, id, bannedUntil)
	}
	return nil
}

// MockPostRepository implements PostRepository for testing
type MockPostRepository struct {
	ListAllFunc        func(ctx context.Context) ([]*models.Post, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*models.Post, error)
	ListByCategoryFunc func(ctx context.Context, category string) ([]*models.Post, error)
	ListByAuthorFunc   func(ctx context.Context, authorID int64) ([]*models.Post, error)
	SearchFunc         func(ctx context.Context, term string) ([]*models.Post, error)
	CreateFunc         func(ctx context.Context, post *models.Post) (*models.Post, error)
	DeleteFunc         func(ctx context.Context, id int64) error
	UpdateImageURLFunc func(ctx context.Context, id int64, imageURL string) error
}

func (m *MockPostRepository) ListAll(ctx context.Context) ([]*models.Post, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []*models.Post{}, nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockPostRepository) ListByCategory(ctx context.Context, category string) ([]*models.Post, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(ctx, category)
	}
	return []*models.Post{}, nil
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	if m.ListByAuthorFunc != nil {
		return m.ListByAuthorFunc(ctx, authorID)
	}
	return []*models.Post{}, nil
}

func (m *MockPostRepository) Search(ctx context.Context, term string) ([]*models.Post, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, term)
	}
	return []*models.Post{}, nil
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return post, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPostRepository) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	if m.UpdateImageURLFunc != nil {
		return m.UpdateImageURLFunc(ctx, id, imageURL)
	}
	return nil
}

// MockCommentRepository implements CommentRepository for testing
type MockCommentRepository struct {
	ListByPostFunc func(ctx context.Context, postID int64) ([]*models.Comment, error)
	CreateFunc     func(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	if m.ListByPostFunc != nil {
		return m.ListByPostFunc(ctx, postID)
	}
	return []*models.Comment{}, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return comment, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockLikeRepository implements LikeRepository for testing. When no funcs
// are set it behaves as an in-memory table keyed by (post, email).
type MockLikeRepository struct {
	GetByPostAndEmailFunc    func(ctx context.Context, postID int64, userEmail string) (*models.Like, error)
	ListByPostFunc           func(ctx context.Context, postID int64) ([]*models.Like, error)
	CreateFunc               func(ctx context.Context, like *models.Like) error
	DeleteByPostAndEmailFunc func(ctx context.Context, postID int64, userEmail string) error

	rows map[string]*models.Like
}

func likeKey(postID int64, userEmail string) string {
	return fmt.Sprintf("%d|%s", postID, userEmail)
}

func (m *MockLikeRepository) table() map[string]*models.Like {
	if m.rows == nil {
		m.rows = make(map[string]*models.Like)
	}
	return m.rows
}

func (m *MockLikeRepository) GetByPostAndEmail(ctx context.Context, postID int64, userEmail string) (*models.Like, error) {
	if m.GetByPostAndEmailFunc != nil {
		return m.GetByPostAndEmailFunc(ctx, postID, userEmail)
	}
	if like, ok := m.table()[likeKey(postID, userEmail)]; ok {
		return like, nil
	}
	return nil, models.ErrNotFound
}

func (m *MockLikeRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Like, error) {
	if m.ListByPostFunc != nil {
		return m.ListByPostFunc(ctx, postID)
	}
	likes := make([]*models.Like, 0)
	for _, like := range m.table() {
		if like.PostID == postID {
			likes = append(likes, like)
		}
	}
	return likes, nil
}

func (m *MockLikeRepository) Create(ctx context.Context, like *models.Like) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, like)
	}
	key := likeKey(like.PostID, like.UserEmail)
	if _, exists := m.table()[key]; exists {
		return models.ErrConflict
	}
	m.table()[key] = like
	return nil
}

func (m *MockLikeRepository) DeleteByPostAndEmail(ctx context.Context, postID int64, userEmail string) error {
	if m.DeleteByPostAndEmailFunc != nil {
		return m.DeleteByPostAndEmailFunc(ctx, postID, userEmail)
	}
	delete(m.table(), likeKey(postID, userEmail))
	return nil
}

// MockNotificationRepository implements NotificationRepository for testing.
// Created notifications are recorded for assertions.
type MockNotificationRepository struct {
	CreateFunc     func(ctx context.Context, n *models.BanNotification) (*models.BanNotification, error)
	ListByUserFunc func(ctx context.Context, userID int64) ([]*models.BanNotification, error)
	DeleteFunc     func(ctx context.Context, id int64) error

	Created []*models.BanNotification
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.BanNotification) (*models.BanNotification, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	n.ID = int64(len(m.Created) + 1)
	m.Created = append(m.Created, n)
	return n, nil
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.BanNotification, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*models.BanNotification{}, nil
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAuthorLookup implements AuthorLookup for testing. Call counters track
// how many remote lookups an operation would have made.
type MockAuthorLookup struct {
	FetchByIDFunc    func(ctx context.Context, id int64) (clients.AuthorDetails, bool)
	FetchByEmailFunc func(ctx context.Context, email string) (clients.AuthorDetails, bool)

	FetchByIDCalls    int
	FetchByEmailCalls int
}

func (m *MockAuthorLookup) FetchByID(ctx context.Context, id int64) (clients.AuthorDetails, bool) {
	m.FetchByIDCalls++
	if m.FetchByIDFunc != nil {
		return m.FetchByIDFunc(ctx, id)
	}
	return clients.AuthorDetails{}, false
}

func (m *MockAuthorLookup) FetchByEmail(ctx context.Context, email string) (clients.AuthorDetails, bool) {
	m.FetchByEmailCalls++
	if m.FetchByEmailFunc != nil {
		return m.FetchByEmailFunc(ctx, email)
	}
	return clients.AuthorDetails{}, false
}

// MockUserDirectory implements UserDirectory for testing
type MockUserDirectory struct {
	UpdateBanStatusFunc func(ctx context.Context, userID int64, bannedUntil int64) error
	FetchByIDFunc       func(ctx context.Context, id int64) (clients.AuthorDetails, bool)

	BanCalls []int64 // bannedUntil values passed to UpdateBanStatus
}

func (m *MockUserDirectory) UpdateBanStatus(ctx context.Context, userID int64, bannedUntil int64) error {
	m.BanCalls = append(m.BanCalls, bannedUntil)
	if m.UpdateBanStatusFunc != nil {
		return m.UpdateBanStatusFunc(ctx, userID, bannedUntil)
	}
	return nil
}

func (m *MockUserDirectory) FetchByID(ctx context.Context, id int64) (clients.AuthorDetails, bool) {
	if m.FetchByIDFunc != nil {
		return m.FetchByIDFunc(ctx, id)
	}
	return clients.AuthorDetails{}, false
}

// MockPostDeleter implements PostDeleter for testing
type MockPostDeleter struct {
	DeletePostFunc func(ctx context.Context, postID string) error

	Deleted []string
}

func (m *MockPostDeleter) DeletePost(ctx context.Context, postID string) error {
	m.Deleted = append(m.Deleted, postID)
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, postID)
	}
	return nil
}

// MockCommentDeleter implements CommentDeleter for testing
type MockCommentDeleter struct {
	DeleteCommentFunc func(ctx context.Context, commentID string) error

	Deleted []string
}

func (m *MockCommentDeleter) DeleteComment(ctx context.Context, commentID string) error {
	m.Deleted = append(m.Deleted, commentID)
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(ctx, commentID)
	}
	return nil
}

// MockBanNoticeSender implements BanNoticeSender for testing
type MockBanNoticeSender struct {
	SendBanNoticeFunc func(ctx context.Context, email, reason, duration string) error

	Sent []string // recipient emails
}

func (m *MockBanNoticeSender) SendBanNotice(ctx context.Context, email, reason, duration string) error {
	m.Sent = append(m.Sent, email)
	if m.SendBanNoticeFunc != nil {
		return m.SendBanNoticeFunc(ctx, email, reason, duration)
	}
	return nil
}

// MockImageStore implements both image store interfaces for testing
type MockImageStore struct {
	SaveProfileImageFunc func(ctx context.Context, userID int64, filename string, size int64, content io.Reader) (string, error)
	SavePostImageFunc    func(ctx context.Context, postID int64, filename string, size int64, content io.Reader) (string, error)
}

func (m *MockImageStore) SaveProfileImage(ctx context.Context, userID int64, filename string, size int64, content io.Reader) (string, error) {
	if m.SaveProfileImageFunc != nil {
		return m.SaveProfileImageFunc(ctx, userID, filename, size, content)
	}
	return "profiles/test.png", nil
}

func (m *MockImageStore) SavePostImage(ctx context.Context, postID int64, filename string, size int64, content io.Reader) (string, error) {
	if m.SavePostImageFunc != nil {
		return m.SavePostImageFunc(ctx, postID, filename, size, content)
	}
	return "posts/test.png", nil
}

// NewTestUser creates a user for tests
func NewTestUser(id int64, email, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestPost creates a post for tests
func NewTestPost(id, authorID int64, title string) *models.Post {
	return &models.Post{
		ID:          id,
		Title:       title,
		Summary:     "summary of " + title,
		Content:     "content of " + title,
		Category:    "general",
		AuthorID:    authorID,
		PublishedAt: time.Now().UnixMilli(),
	}
}
