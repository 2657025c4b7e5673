package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract the auth workflow consumes.
// Create is the final authority on email/mobile uniqueness: a concurrent
// duplicate must surface as ErrUserAlreadyExists, never as a crash.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByMobile(ctx context.Context, mobile string) (*User, error)
	GetByEmailOrMobile(ctx context.Context, email, mobile string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error

	// UpdatePassword stores a new hash and clears the active reset token in
	// the same write, consuming the token that authorized the change.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// SetResetToken records the last-issued reset token. A reset token is
	// honored only while it matches this value.
	SetResetToken(ctx context.Context, userID uuid.UUID, token string) error

	UpdateDeviceToken(ctx context.Context, userID uuid.UUID, deviceToken *string) error
}
