package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Approval status values applied at account creation. New accounts start
// pending unless the admin settings enable auto-approval.
const (
	ApprovalPending  = 1
	ApprovalApproved = 2
)

// User represents a user account in the domain. Email and Mobile are
// pointers: each is optional but unique when present, and a usable account
// carries at least one of them.
type User struct {
	ID                   uuid.UUID
	Name                 string
	Email                *string
	Mobile               *string
	PasswordHashed       string
	Role                 string
	ApprovalStatus       int
	IsEmailVerified      bool
	IsMobileVerified     bool
	IsBlocked            bool
	InvitedByEmail       bool
	InvitedBy            *uuid.UUID
	InvitationAccepted   bool
	InvitationAcceptedOn *time.Time
	ActiveResetToken     *string
	DeviceToken          *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasPendingInvitation reports whether this record is an invited placeholder
// that has not been converted into a credentialed account yet.
func (u *User) HasPendingInvitation() bool {
	return u.InvitedByEmail && !u.InvitationAccepted
}

// AcceptInvitation converts the placeholder into a credentialed account.
// Acceptance implies a verified email.
func (u *User) AcceptInvitation(email, passwordHash string, mobile *string) {
	now := time.Now()
	u.Email = &email
	u.PasswordHashed = passwordHash
	u.Mobile = mobile
	u.IsEmailVerified = true
	u.InvitationAccepted = true
	u.InvitationAcceptedOn = &now
	u.UpdatedAt = now
}
