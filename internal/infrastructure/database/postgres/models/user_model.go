package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is the gorm mapping for the users table. Email and mobile are
// nullable with unique indexes; postgres treats NULLs as distinct, so
// accounts missing one identifier do not collide.
type UserModel struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name                 string     `gorm:"size:255"`
	Email                *string    `gorm:"size:255;uniqueIndex"`
	Mobile               *string    `gorm:"size:32;uniqueIndex"`
	PasswordHashed       string     `gorm:"size:255;not null"`
	Role                 string     `gorm:"size:32;not null;default:user"`
	ApprovalStatus       int        `gorm:"not null;default:1"`
	IsEmailVerified      bool       `gorm:"not null;default:false"`
	IsMobileVerified     bool       `gorm:"not null;default:false"`
	IsBlocked            bool       `gorm:"not null;default:false"`
	InvitedByEmail       bool       `gorm:"not null;default:false"`
	InvitedBy            *uuid.UUID `gorm:"type:uuid"`
	InvitationAccepted   bool       `gorm:"not null;default:false"`
	InvitationAcceptedOn *time.Time
	ActiveResetToken     *string `gorm:"size:1024"`
	DeviceToken          *string `gorm:"size:512"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (UserModel) TableName() string {
	return "users"
}
