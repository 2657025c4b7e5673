package auth

import (
	"context"
	"errors"

	"accounts-service/internal/domain/setting"
	domainUser "accounts-service/internal/domain/user"
	"accounts-service/internal/notification"
	"accounts-service/internal/otp"
	"accounts-service/internal/token"
	apiErrors "accounts-service/pkg/errors"
	"accounts-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service orchestrates the credential store, token engine, otp generator and
// notification channels to implement the auth workflows.
type Service struct {
	users    domainUser.Repository
	settings setting.Repository
	tokens   *token.Engine
	otp      *otp.Generator
	email    notification.EmailSender
	sms      notification.SMSSender
	invites  notification.InvitationNotifier
	log      *zap.Logger
}

func NewService(
	users domainUser.Repository,
	settings setting.Repository,
	tokens *token.Engine,
	otpGen *otp.Generator,
	email notification.EmailSender,
	sms notification.SMSSender,
	invites notification.InvitationNotifier,
	log *zap.Logger,
) *Service {
	return &Service{
		users:    users,
		settings: settings,
		tokens:   tokens,
		otp:      otpGen,
		email:    email,
		sms:      sms,
		invites:  invites,
		log:      log,
	}
}

// Register starts a signup. No account is materialized here: the submitted
// fields and a fresh OTP travel inside a signed payload token the client
// must echo back on verification. If the email belongs to an invited
// placeholder user, registration becomes invitation acceptance instead.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apiErrors.NewBadRequest(err.Error())
	}
	if req.Email == "" && req.Mobile == "" {
		return nil, apiErrors.NewBadRequest(MsgIdentifierRequired)
	}

	if req.Email != "" {
		existing, err := s.findByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.HasPendingInvitation() {
				auth, err := s.AcceptInvitation(ctx, existing.ID, &AcceptInvitationRequest{
					Email:    req.Email,
					Password: req.Password,
					Mobile:   optional(req.Mobile),
				})
				if err != nil {
					return nil, err
				}
				return &RegisterResult{Auth: auth}, nil
			}
			return nil, apiErrors.NewConflict(MsgUserAlreadyExists)
		}
	}

	existing, err := s.findByEmailOrMobile(ctx, req.Email, req.Mobile)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apiErrors.NewConflict(MsgUserAlreadyExists)
	}

	code, err := s.otp.Generate()
	if err != nil {
		return nil, apiErrors.NewInternal("failed to generate otp", err)
	}

	payloadToken, err := s.tokens.IssuePayloadToken(token.Claims{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
		OTP:      code,
	})
	if err != nil {
		return nil, err
	}

	if req.Mobile != "" {
		if err := s.sms.SendOTP(ctx, req.Mobile, code); err != nil {
			return nil, apiErrors.NewInternal("failed to send otp", err)
		}
		s.log.Info("Registration otp sent", zap.String("channel", "sms"))
		return &RegisterResult{Token: payloadToken, SentTo: "mobile"}, nil
	}

	if err := s.email.SendOTP(ctx, req.Email, code); err != nil {
		return nil, apiErrors.NewInternal("failed to send otp", err)
	}
	s.log.Info("Registration otp sent", zap.String("channel", "email"))
	return &RegisterResult{Token: payloadToken, SentTo: "email"}, nil
}

// VerifyRegistrationOtp materializes the account a Register call put on
// hold. The OTP the user submits is compared against the claim embedded in
// the payload token; the duplicate check runs again because another request
// may have created the account since registration started.
func (s *Service) VerifyRegistrationOtp(ctx context.Context, req *VerifyOtpRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apiErrors.NewBadRequest(err.Error())
	}

	claims, err := s.tokens.VerifyAccess(req.Token)
	if err != nil {
		return nil, err
	}
	if claims.OTP == "" || claims.OTP != req.Otp {
		return nil, apiErrors.NewBadRequest(MsgIncorrectOtp)
	}

	existing, err := s.findByEmailOrMobile(ctx, claims.Email, claims.Mobile)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apiErrors.NewBadRequest(MsgExpiredLink)
	}

	created, err := s.createUserFromClaims(ctx, claims, claims.Mobile != "")
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssueAuthPair(created.ID, created.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered", zap.String("user_id", created.ID.String()))

	return &AuthResponse{User: ToUserResponse(created), Tokens: pair}, nil
}

// VerifyEmail handles the emailed verification link: same materialization as
// the OTP path, guarded against replay by the existence of the account the
// first call created.
func (s *Service) VerifyEmail(ctx context.Context, req *VerifyEmailRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apiErrors.NewBadRequest(err.Error())
	}

	claims, err := s.tokens.VerifyAccess(req.Token)
	if err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, apiErrors.NewBadRequest(MsgExpiredLink)
	}

	existing, err := s.findByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apiErrors.NewBadRequest(MsgExpiredLink)
	}

	created, err := s.createUserFromClaims(ctx, claims, false)
	if err != nil {
		return nil, err
	}

	s.log.Info("Email verified, account created", zap.String("user_id", created.ID.String()))

	return ToUserResponse(created), nil
}

// Login authenticates by email or mobile. The failure ladder is ordered:
// unknown identifier, blocked account, unverified identifier, wrong password.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apiErrors.NewBadRequest(err.Error())
	}
	if req.Email == "" && req.Mobile == "" {
		return nil, apiErrors.NewBadRequest(MsgIdentifierRequired)
	}

	var (
		u   *domainUser.User
		err error
	)
	if req.Email != "" {
		u, err = s.findByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, apiErrors.NewUnauthorized(MsgIncorrectEmail)
		}
		if u.IsBlocked {
			return nil, apiErrors.NewNotAcceptable(MsgBlockedUser)
		}
		if !u.IsEmailVerified {
			return nil, apiErrors.NewUnauthorized(MsgUnverifiedEmail)
		}
	} else {
		u, err = s.findByMobile(ctx, req.Mobile)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, apiErrors.NewUnauthorized(MsgIncorrectMobile)
		}
		if u.IsBlocked {
			return nil, apiErrors.NewNotAcceptable(MsgBlockedUser)
		}
		if !u.IsMobileVerified {
			return nil, apiErrors.NewUnauthorized(MsgUnverifiedMobile)
		}
	}

	if !utils.CheckPassword(u.PasswordHashed, req.Password) {
		s.log.Warn("Login failed, invalid password", zap.String("user_id", u.ID.String()))
		return nil, apiErrors.NewUnauthorized(MsgIncorrectPassword)
	}

	pair, err := s.tokens.IssueAuthPair(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	if req.DeviceToken != nil {
		if err := s.users.UpdateDeviceToken(ctx, u.ID, req.DeviceToken); err != nil {
			s.log.Error("Failed to update device token",
				zap.String("user_id", u.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.log.Info("User logged in", zap.String("user_id", u.ID.String()))

	return &AuthResponse{User: ToUserResponse(u), Tokens: pair}, nil
}

// AdminLogin collapses every failure cause into one generic Unauthorized so
// the endpoint cannot be used to enumerate admin accounts.
func (s *Service) AdminLogin(ctx context.Context, req *AdminLoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apiErrors.NewBadRequest(err.Error())
	}

	u, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apiErrors.NewUnauthorized(MsgAdminLoginError)
	}
	if !utils.CheckPassword(u.PasswordHashed, req.Password) || u.Role != domainUser.RoleAdmin {
		return nil, apiErrors.NewUnauthorized(MsgAdminLoginError)
	}

	pair, err := s.tokens.IssueAuthPair(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info("Admin logged in", zap.String("user_id", u.ID.String()))

	return &AuthResponse{User: ToUserResponse(u), Tokens: pair}, nil
}

// ForgotPassword issues a reset-scoped payload token. On the mobile path the
// token additionally carries an OTP that is texted to the user. The issued
// token is persisted as the user's active reset token on both paths, so it
// can be honored at most once.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) (*ResetTokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apiErrors.NewBadRequest(err.Error())
	}
	if req.Email == "" && req.Mobile == "" {
		return nil, apiErrors.NewBadRequest(MsgIdentifierRequired)
	}

	u, err := s.findByEmailOrMobile(ctx, req.Email, req.Mobile)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apiErrors.NewNotFound(MsgNoUserFound)
	}
	if u.Role != domainUser.RoleUser {
		return nil, apiErrors.NewBadRequest(MsgInvalidUser)
	}

	claims := token.Claims{}
	claims.Subject = u.ID.String()

	if req.Mobile != "" {
		code, err := s.otp.Generate()
		if err != nil {
			return nil, apiErrors.NewInternal("failed to generate otp", err)
		}
		claims.OTP = code
		claims.Mobile = req.Mobile

		if err := s.sms.SendOTP(ctx, req.Mobile, code); err != nil {
			return nil, apiErrors.NewInternal("failed to send otp", err)
		}
	} else {
		claims.Email = req.Email
	}

	resetToken, err := s.tokens.IssuePayloadToken(claims)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetResetToken(ctx, u.ID, resetToken); err != nil {
		return nil, apiErrors.NewInternal("failed to store reset token", err)
	}

	s.log.Info("Password reset token issued", zap.String("user_id", u.ID.String()))

	return &ResetTokenResponse{ResetPasswordToken: resetToken, UserID: u.ID}, nil
}

// AdminForgotPassword is the admin counterpart of ForgotPassword; no OTP
// channel, email identification only.
func (s *Service) AdminForgotPassword(ctx context.Context, email string) (*ResetTokenResponse, error) {
	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apiErrors.NewNotFound(MsgNoUserFound)
	}
	if u.Role != domainUser.RoleAdmin {
		return nil, apiErrors.NewUnauthorized(MsgIncorrectEmail)
	}

	claims := token.Claims{}
	claims.Subject = u.ID.String()

	resetToken, err := s.tokens.IssuePayloadToken(claims)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetResetToken(ctx, u.ID, resetToken); err != nil {
		return nil, apiErrors.NewInternal("failed to store reset token", err)
	}

	return &ResetTokenResponse{ResetPasswordToken: resetToken, UserID: u.ID}, nil
}

// VerifyResetOtp confirms the texted OTP and exchanges the first reset token
// for a fresh one bound to the same user; only that fresh token can change
// the password.
func (s *Service) VerifyResetOtp(ctx context.Context, req *VerifyOtpRequest) (*ResetTokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apiErrors.NewBadRequest(err.Error())
	}

	claims, err := s.tokens.VerifyAccess(req.Token)
	if err != nil {
		return nil, err
	}
	if claims.OTP == "" || claims.OTP != req.Otp {
		return nil, apiErrors.NewBadRequest(MsgIncorrectOtp)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apiErrors.NewBadRequest(MsgInvalidRequest)
	}

	u, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apiErrors.NewBadRequest(MsgInvalidRequest)
	}

	fresh := token.Claims{}
	fresh.Subject = u.ID.String()

	resetToken, err := s.tokens.IssuePayloadToken(fresh)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetResetToken(ctx, u.ID, resetToken); err != nil {
		return nil, apiErrors.NewInternal("failed to store reset token", err)
	}

	s.log.Info("Reset otp verified", zap.String("user_id", u.ID.String()))

	return &ResetTokenResponse{ResetPasswordToken: resetToken, UserID: u.ID}, nil
}

// ResetPassword consumes a reset token. The token must both verify and match
// the user's active reset token; the password update clears that field, so a
// second call with the same token fails.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apiErrors.NewBadRequest(err.Error())
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return apiErrors.NewBadRequest(err.Error())
	}

	claims, err := s.tokens.VerifyAccess(req.Token)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return apiErrors.NewBadRequest(MsgInvalidLink)
	}

	u, err := s.findByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return apiErrors.NewBadRequest(MsgInvalidLink)
	}
	if u.ActiveResetToken == nil || *u.ActiveResetToken != req.Token {
		return apiErrors.NewBadRequest(MsgExpiredLink)
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apiErrors.NewInternal("failed to hash password", err)
	}

	if err := s.users.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return apiErrors.NewInternal("failed to update password", err)
	}

	s.log.Info("Password reset", zap.String("user_id", u.ID.String()))

	return nil
}

// AcceptInvitation converts an invited placeholder record into a
// credentialed account and notifies the inviter.
func (s *Service) AcceptInvitation(ctx context.Context, userID uuid.UUID, req *AcceptInvitationRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apiErrors.NewBadRequest(err.Error())
	}

	u, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apiErrors.NewNotFound(MsgNoUserFound)
	}
	if !u.HasPendingInvitation() {
		return nil, apiErrors.NewBadRequest(MsgInvitationAccepted)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apiErrors.NewInternal("failed to hash password", err)
	}

	u.AcceptInvitation(req.Email, hashed, req.Mobile)

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, apiErrors.NewConflict(MsgUserAlreadyExists)
		}
		return nil, apiErrors.NewInternal("failed to accept invitation", err)
	}

	if u.InvitedBy != nil {
		if err := s.invites.InvitationAccepted(ctx, *u.InvitedBy, u.Name); err != nil {
			s.log.Error("Failed to notify inviter",
				zap.String("inviter_id", u.InvitedBy.String()),
				zap.Error(err),
			)
		}
	}

	pair, err := s.tokens.IssueAuthPair(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info("Invitation accepted", zap.String("user_id", u.ID.String()))

	return &AuthResponse{User: ToUserResponse(u), Tokens: pair}, nil
}

// RefreshAuth exchanges a valid refresh token for a new token pair. Refresh
// tokens are stateless and are not rotated or invalidated server-side; they
// remain reusable until natural expiry.
func (s *Service) RefreshAuth(ctx context.Context, refreshToken string) (*token.Pair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apiErrors.NewUnauthorized(MsgPleaseAuthenticate)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apiErrors.NewUnauthorized(MsgPleaseAuthenticate)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apiErrors.NewUnauthorized(MsgPleaseAuthenticate)
	}

	return s.tokens.IssueAuthPair(u.ID, u.Role)
}

// Profile returns the sanitized user for an authenticated subject.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apiErrors.NewNotFound(MsgNoUserFound)
	}
	return ToUserResponse(u), nil
}

// ListUsers returns every user, sanitized. Admin surface.
func (s *Service) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, apiErrors.NewInternal("failed to list users", err)
	}

	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}
	return responses, nil
}

// Settings returns the admin settings. Admin surface.
func (s *Service) Settings(ctx context.Context) (*setting.Setting, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, apiErrors.NewInternal("failed to read settings", err)
	}
	return cfg, nil
}

func (s *Service) createUserFromClaims(ctx context.Context, claims *token.Claims, mobileVerified bool) (*domainUser.User, error) {
	hashed, err := utils.HashPassword(claims.Password)
	if err != nil {
		return nil, apiErrors.NewInternal("failed to hash password", err)
	}

	approval := domainUser.ApprovalPending
	adminSetting, err := s.settings.Get(ctx)
	if err != nil {
		s.log.Error("Failed to read admin settings", zap.Error(err))
	} else if adminSetting.AutoApproved {
		approval = domainUser.ApprovalApproved
	}

	u := &domainUser.User{
		Name:           claims.Name,
		Email:          optional(claims.Email),
		Mobile:         optional(claims.Mobile),
		PasswordHashed: hashed,
		Role:           domainUser.RoleUser,
		ApprovalStatus: approval,
	}
	if mobileVerified {
		u.IsMobileVerified = true
	} else {
		u.IsEmailVerified = true
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, apiErrors.NewConflict(MsgUserAlreadyExists)
		}
		return nil, apiErrors.NewInternal("failed to create user", err)
	}

	return u, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apiErrors.NewInternal("failed to look up user by email", err)
	}
	return u, nil
}

func (s *Service) findByMobile(ctx context.Context, mobile string) (*domainUser.User, error) {
	u, err := s.users.GetByMobile(ctx, mobile)
	if errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apiErrors.NewInternal("failed to look up user by mobile", err)
	}
	return u, nil
}

func (s *Service) findByEmailOrMobile(ctx context.Context, email, mobile string) (*domainUser.User, error) {
	u, err := s.users.GetByEmailOrMobile(ctx, email, mobile)
	if errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apiErrors.NewInternal("failed to look up user", err)
	}
	return u, nil
}

func (s *Service) findByID(ctx context.Context, id uuid.UUID) (*domainUser.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apiErrors.NewInternal("failed to look up user by id", err)
	}
	return u, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
