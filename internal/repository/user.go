// Package repository provides the data access layer. Every query goes
// through gorm parameter binding, caller input never ends up in query text.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keylian15/le-garde-manger/internal/model"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("record not found")
)

// ResetTokenRecord is the joined view a reset-password call needs:
// the token row plus the owning user's email.
type ResetTokenRecord struct {
	TokenID   int64
	UserID    int64
	Email     string
	ExpiresAt time.Time
}

// UserStore owns the users and password_reset_tokens tables.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)
	UpdatePassword(ctx context.Context, userID int64, newHash string) error

	DeleteResetTokensForUser(ctx context.Context, userID int64) error
	InsertResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	FindResetTokenByHash(ctx context.Context, tokenHash string) (*ResetTokenRecord, error)
	DeleteResetToken(ctx context.Context, tokenID int64) error
}

type userStore struct {
	db *gorm.DB
}

// NewUserStore creates a gorm-backed UserStore.
func NewUserStore(db *gorm.DB) UserStore {
	return &userStore{db: db}
}

func (s *userStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &user, nil
}

func (s *userStore) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	user := model.User{
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := s.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateEmail
		}

		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ID, nil
}

func (s *userStore) UpdatePassword(ctx context.Context, userID int64, newHash string) error {
	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("password_hash", newHash).Error
	if err != nil {
		return fmt.Errorf("failed to update password for user %d: %w", userID, err)
	}

	return nil
}

func (s *userStore) DeleteResetTokensForUser(ctx context.Context, userID int64) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PasswordResetToken{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete reset tokens for user %d: %w", userID, err)
	}

	return nil
}

func (s *userStore) InsertResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	token := model.PasswordResetToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}

	err := s.db.WithContext(ctx).Create(&token).Error
	if err != nil {
		return fmt.Errorf("failed to insert reset token: %w", err)
	}

	return nil
}

func (s *userStore) FindResetTokenByHash(ctx context.Context, tokenHash string) (*ResetTokenRecord, error) {
	var record ResetTokenRecord

	err := s.db.WithContext(ctx).
		Model(&model.PasswordResetToken{}).
		Select("password_reset_tokens.id as token_id, password_reset_tokens.user_id, users.email, password_reset_tokens.expires_at").
		Joins("JOIN users ON users.id = password_reset_tokens.user_id").
		Where("password_reset_tokens.token_hash = ?", tokenHash).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}

	return &record, nil
}

func (s *userStore) DeleteResetToken(ctx context.Context, tokenID int64) error {
	err := s.db.WithContext(ctx).
		Where("id = ?", tokenID).
		Delete(&model.PasswordResetToken{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete reset token %d: %w", tokenID, err)
	}

	return nil
}
