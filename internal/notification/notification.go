package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmailSender delivers one-time codes over email.
type EmailSender interface {
	SendOTP(ctx context.Context, email, code string) error
}

// SMSSender delivers one-time codes over SMS.
type SMSSender interface {
	SendOTP(ctx context.Context, mobile, code string) error
}

// InvitationNotifier is fired after an invitation is accepted so the
// inviting user learns their invitee on-boarded.
type InvitationNotifier interface {
	InvitationAccepted(ctx context.Context, inviterID uuid.UUID, inviteeName string) error
}

// LogSender is the development delivery channel: it writes the code or event
// to the log instead of dispatching it. Used wherever a real transport is
// not configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendOTP(ctx context.Context, destination, code string) error {
	s.log.Info("OTP dispatched",
		zap.String("destination", destination),
		zap.String("code", code),
	)
	return nil
}

func (s *LogSender) InvitationAccepted(ctx context.Context, inviterID uuid.UUID, inviteeName string) error {
	s.log.Info("Invitation accepted notification",
		zap.String("inviter_id", inviterID.String()),
		zap.String("invitee", inviteeName),
	)
	return nil
}
