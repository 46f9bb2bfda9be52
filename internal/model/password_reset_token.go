package model

import "time"

// PasswordResetToken only ever stores the SHA-256 digest of the value
// that gets emailed to the user. The plaintext never touches the database.
type PasswordResetToken struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"index;not null"`
	TokenHash string `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
