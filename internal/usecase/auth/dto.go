package auth

import (
	"time"

	domainUser "accounts-service/internal/domain/user"
	"accounts-service/internal/token"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=2,max=255"`
	Email       string  `json:"email" validate:"omitempty,email"`
	Mobile      string  `json:"mobile" validate:"omitempty,mobile"`
	Password    string  `json:"password" validate:"required,min=8"`
	DeviceToken *string `json:"deviceToken"`
}

type LoginRequest struct {
	Email       string  `json:"email" validate:"omitempty,email"`
	Mobile      string  `json:"mobile" validate:"omitempty,mobile"`
	Password    string  `json:"password" validate:"required"`
	DeviceToken *string `json:"deviceToken"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Mobile string `json:"mobile" validate:"omitempty,mobile"`
}

type VerifyOtpRequest struct {
	Token string `json:"token" validate:"required"`
	Otp   string `json:"otp" validate:"required,numeric"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AcceptInvitationRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Mobile   *string `json:"mobile" validate:"omitempty,mobile"`
}

// UserResponse is the sanitized user shape: no password hash, no reset
// token, no device token.
type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              *string   `json:"email"`
	Mobile             *string   `json:"mobile"`
	Role               string    `json:"role"`
	ApprovalStatus     int       `json:"approvalStatus"`
	IsEmailVerified    bool      `json:"isEmailVerified"`
	IsMobileVerified   bool      `json:"isMobileVerified"`
	InvitationAccepted bool      `json:"invitationAccepted"`
	CreatedAt          time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User   *UserResponse `json:"user"`
	Tokens *token.Pair   `json:"tokens"`
}

// RegisterResult is either a pending-verification token (Token, SentTo) or,
// when registration routed into invitation acceptance, a full auth response.
type RegisterResult struct {
	Token  string        `json:"token,omitempty"`
	SentTo string        `json:"-"`
	Auth   *AuthResponse `json:"auth,omitempty"`
}

type ResetTokenResponse struct {
	ResetPasswordToken string    `json:"resetPasswordToken"`
	UserID             uuid.UUID `json:"userId"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Mobile:             u.Mobile,
		Role:               u.Role,
		ApprovalStatus:     u.ApprovalStatus,
		IsEmailVerified:    u.IsEmailVerified,
		IsMobileVerified:   u.IsMobileVerified,
		InvitationAccepted: u.InvitationAccepted,
		CreatedAt:          u.CreatedAt,
	}
}
