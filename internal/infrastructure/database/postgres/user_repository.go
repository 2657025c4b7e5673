package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"accounts-service/internal/domain/user"
	"accounts-service/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository on postgres.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		// The unique indexes are the final authority on email/mobile
		// uniqueness; a concurrent duplicate lands here, not in the
		// existence check that preceded it.
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.CreatedAt = dbModel.CreatedAt
	u.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where("mobile = ?", mobile).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByEmailOrMobile(ctx context.Context, email, mobile string) (*user.User, error) {
	query := r.db.DB.WithContext(ctx)
	switch {
	case email != "" && mobile != "":
		query = query.Where("email = ? OR mobile = ?", email, mobile)
	case email != "":
		query = query.Where("email = ?", email)
	case mobile != "":
		query = query.Where("mobile = ?", mobile)
	default:
		return nil, user.ErrUserNotFound
	}

	var dbModel models.UserModel
	err := query.First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*user.User, error) {
	var dbModels []models.UserModel
	if err := r.db.DB.WithContext(ctx).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	users := make([]*user.User, len(dbModels))
	for i := range dbModels {
		users[i] = toUserEntity(&dbModels[i])
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":                   u.Name,
			"email":                  u.Email,
			"mobile":                 u.Mobile,
			"password_hashed":        u.PasswordHashed,
			"is_email_verified":      u.IsEmailVerified,
			"is_mobile_verified":     u.IsMobileVerified,
			"invitation_accepted":    u.InvitationAccepted,
			"invitation_accepted_on": u.InvitationAcceptedOn,
			"updated_at":             u.UpdatedAt,
		})

	if result.Error != nil {
		if strings.Contains(strings.ToLower(result.Error.Error()), "duplicate key") {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hashed":    passwordHash,
			"active_reset_token": nil,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID uuid.UUID, token string) error {
	var value interface{}
	if token != "" {
		value = token
	}

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"active_reset_token": value,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set reset token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdateDeviceToken(ctx context.Context, userID uuid.UUID, deviceToken *string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"device_token": deviceToken,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update device token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		Mobile:               u.Mobile,
		PasswordHashed:       u.PasswordHashed,
		Role:                 u.Role,
		ApprovalStatus:       u.ApprovalStatus,
		IsEmailVerified:      u.IsEmailVerified,
		IsMobileVerified:     u.IsMobileVerified,
		IsBlocked:            u.IsBlocked,
		InvitedByEmail:       u.InvitedByEmail,
		InvitedBy:            u.InvitedBy,
		InvitationAccepted:   u.InvitationAccepted,
		InvitationAcceptedOn: u.InvitationAcceptedOn,
		ActiveResetToken:     u.ActiveResetToken,
		DeviceToken:          u.DeviceToken,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:                   m.ID,
		Name:                 m.Name,
		Email:                m.Email,
		Mobile:               m.Mobile,
		PasswordHashed:       m.PasswordHashed,
		Role:                 m.Role,
		ApprovalStatus:       m.ApprovalStatus,
		IsEmailVerified:      m.IsEmailVerified,
		IsMobileVerified:     m.IsMobileVerified,
		IsBlocked:            m.IsBlocked,
		InvitedByEmail:       m.InvitedByEmail,
		InvitedBy:            m.InvitedBy,
		InvitationAccepted:   m.InvitationAccepted,
		InvitationAcceptedOn: m.InvitationAcceptedOn,
		ActiveResetToken:     m.ActiveResetToken,
		DeviceToken:          m.DeviceToken,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
