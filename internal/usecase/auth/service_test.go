package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"accounts-service/internal/config"
	"accounts-service/internal/domain/setting"
	domainUser "accounts-service/internal/domain/user"
	"accounts-service/internal/otp"
	"accounts-service/internal/token"
	apiErrors "accounts-service/pkg/errors"
	"accounts-service/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- fakes ----

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domainUser.User) error {
	for _, existing := range f.users {
		if matches(existing, u.Email, u.Mobile) {
			return domainUser.ErrUserAlreadyExists
		}
	}
	u.ID = uuid.New()
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) GetByMobile(ctx context.Context, mobile string) (*domainUser.User, error) {
	for _, u := range f.users {
		if u.Mobile != nil && *u.Mobile == mobile {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmailOrMobile(ctx context.Context, email, mobile string) (*domainUser.User, error) {
	for _, u := range f.users {
		if (email != "" && u.Email != nil && *u.Email == email) ||
			(mobile != "" && u.Mobile != nil && *u.Mobile == mobile) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domainUser.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]*domainUser.User, error) {
	all := make([]*domainUser.User, 0, len(f.users))
	for _, u := range f.users {
		copied := *u
		all = append(all, &copied)
	}
	return all, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domainUser.User) error {
	stored, ok := f.users[u.ID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	for id, existing := range f.users {
		if id != u.ID && matches(existing, u.Email, u.Mobile) {
			return domainUser.ErrUserAlreadyExists
		}
	}
	stored.Name = u.Name
	stored.Email = u.Email
	stored.Mobile = u.Mobile
	stored.PasswordHashed = u.PasswordHashed
	stored.IsEmailVerified = u.IsEmailVerified
	stored.IsMobileVerified = u.IsMobileVerified
	stored.InvitationAccepted = u.InvitationAccepted
	stored.InvitationAcceptedOn = u.InvitationAcceptedOn
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHashed = passwordHash
	u.ActiveResetToken = nil
	return nil
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, userID uuid.UUID, tokenValue string) error {
	u, ok := f.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	if tokenValue == "" {
		u.ActiveResetToken = nil
	} else {
		u.ActiveResetToken = &tokenValue
	}
	return nil
}

func (f *fakeUserRepo) UpdateDeviceToken(ctx context.Context, userID uuid.UUID, deviceToken *string) error {
	u, ok := f.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.DeviceToken = deviceToken
	return nil
}

func matches(u *domainUser.User, email, mobile *string) bool {
	if email != nil && u.Email != nil && *u.Email == *email {
		return true
	}
	if mobile != nil && u.Mobile != nil && *u.Mobile == *mobile {
		return true
	}
	return false
}

type fakeSettingRepo struct {
	autoApproved bool
}

func (f *fakeSettingRepo) Get(ctx context.Context) (*setting.Setting, error) {
	return &setting.Setting{AutoApproved: f.autoApproved}, nil
}

type fakeSender struct {
	destinations []string
	codes        []string
	inviters     []uuid.UUID
}

func (f *fakeSender) SendOTP(ctx context.Context, destination, code string) error {
	f.destinations = append(f.destinations, destination)
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeSender) InvitationAccepted(ctx context.Context, inviterID uuid.UUID, inviteeName string) error {
	f.inviters = append(f.inviters, inviterID)
	return nil
}

// ---- fixture ----

type fixture struct {
	service  *Service
	users    *fakeUserRepo
	settings *fakeSettingRepo
	tokens   *token.Engine
	email    *fakeSender
	sms      *fakeSender
	invites  *fakeSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := newFakeUserRepo()
	settings := &fakeSettingRepo{}
	tokens := token.NewEngine(config.JWTConfig{
		AccessSecret:         "access-secret",
		RefreshSecret:        "refresh-secret",
		AccessExpiryMinutes:  15,
		RefreshExpiryHours:   24,
		PayloadExpiryMinutes: 10,
	})
	email := &fakeSender{}
	sms := &fakeSender{}
	invites := &fakeSender{}

	service := NewService(
		users,
		settings,
		tokens,
		otp.NewGenerator(4),
		email,
		sms,
		invites,
		zap.NewNop(),
	)

	return &fixture{
		service:  service,
		users:    users,
		settings: settings,
		tokens:   tokens,
		email:    email,
		sms:      sms,
		invites:  invites,
	}
}

func (f *fixture) seedUser(t *testing.T, mutate func(*domainUser.User)) *domainUser.User {
	t.Helper()

	hash, err := utils.HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	email := "seed@example.com"
	u := &domainUser.User{
		Email:           &email,
		Name:            "Seed User",
		PasswordHashed:  hash,
		Role:            domainUser.RoleUser,
		ApprovalStatus:  domainUser.ApprovalApproved,
		IsEmailVerified: true,
	}
	if mutate != nil {
		mutate(u)
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func assertApiError(t *testing.T, err error, code int, message string) {
	t.Helper()

	var apiErr *apiErrors.ApiError
	require.True(t, errors.As(err, &apiErr), "expected ApiError, got %v", err)
	assert.Equal(t, code, apiErr.Code)
	if message != "" {
		assert.Equal(t, message, apiErr.Message)
	}
}

// ---- registration ----

func TestRegisterIssuesPayloadTokenAndSendsEmailOtp(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Register(context.Background(), &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, "email", result.SentTo)
	assert.Nil(t, result.Auth)

	// No account exists yet.
	_, err = f.users.GetByEmail(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)

	claims, err := f.tokens.VerifyAccess(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	require.Len(t, f.email.codes, 1)
	assert.Equal(t, f.email.codes[0], claims.OTP)
}

func TestRegisterSendsSmsWhenMobileGiven(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Register(context.Background(), &RegisterRequest{
		Mobile:   "+14155550100",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	assert.Equal(t, "mobile", result.SentTo)
	require.Len(t, f.sms.destinations, 1)
	assert.Equal(t, "+14155550100", f.sms.destinations[0])
	assert.Empty(t, f.email.codes)
}

func TestRegisterConflictsOnExistingEmail(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, nil)

	_, err := f.service.Register(context.Background(), &RegisterRequest{
		Email:    "seed@example.com",
		Password: "Sup3rSecret!",
	})
	assertApiError(t, err, http.StatusConflict, MsgUserAlreadyExists)
}

func TestRegisterConflictsOnExistingMobile(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, func(u *domainUser.User) {
		mobile := "+14155550100"
		u.Mobile = &mobile
	})

	_, err := f.service.Register(context.Background(), &RegisterRequest{
		Mobile:   "+14155550100",
		Password: "Sup3rSecret!",
	})
	assertApiError(t, err, http.StatusConflict, MsgUserAlreadyExists)
}

func TestRegisterRequiresIdentifier(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Register(context.Background(), &RegisterRequest{Password: "Sup3rSecret!"})
	assertApiError(t, err, http.StatusBadRequest, MsgIdentifierRequired)
}

func TestVerifyRegistrationOtpCreatesAccount(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Register(context.Background(), &RegisterRequest{
		Name:     "Bob",
		Mobile:   "+14155550100",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	require.Len(t, f.sms.codes, 1)

	auth, err := f.service.VerifyRegistrationOtp(context.Background(), &VerifyOtpRequest{
		Token: result.Token,
		Otp:   f.sms.codes[0],
	})
	require.NoError(t, err)
	require.NotNil(t, auth.User)
	require.NotNil(t, auth.Tokens)
	assert.True(t, auth.User.IsMobileVerified)
	assert.False(t, auth.User.IsEmailVerified)
	assert.Equal(t, domainUser.RoleUser, auth.User.Role)
	assert.Equal(t, domainUser.ApprovalPending, auth.User.ApprovalStatus)

	stored, err := f.users.GetByID(context.Background(), auth.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", stored.PasswordHashed)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "Sup3rSecret!"))
}

func TestVerifyRegistrationOtpRejectsWrongCode(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Register(context.Background(), &RegisterRequest{
		Mobile:   "+14155550100",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	wrong := "0000"
	if f.sms.codes[0] == wrong {
		wrong = "0001"
	}

	_, err = f.service.VerifyRegistrationOtp(context.Background(), &VerifyOtpRequest{
		Token: result.Token,
		Otp:   wrong,
	})
	assertApiError(t, err, http.StatusBadRequest, MsgIncorrectOtp)
}

func TestVerifyRegistrationOtpRejectsReplay(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Register(context.Background(), &RegisterRequest{
		Mobile:   "+14155550100",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	req := &VerifyOtpRequest{Token: result.Token, Otp: f.sms.codes[0]}

	_, err = f.service.VerifyRegistrationOtp(context.Background(), req)
	require.NoError(t, err)

	_, err = f.service.VerifyRegistrationOtp(context.Background(), req)
	assertApiError(t, err, http.StatusBadRequest, MsgExpiredLink)
}

func TestVerifyEmailCreatesVerifiedAccountAndGuardsReplay(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Register(context.Background(), &RegisterRequest{
		Email:    "a@x.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	created, err := f.service.VerifyEmail(context.Background(), &VerifyEmailRequest{Token: result.Token})
	require.NoError(t, err)
	assert.True(t, created.IsEmailVerified)
	require.NotNil(t, created.Email)
	assert.Equal(t, "a@x.com", *created.Email)

	_, err = f.service.VerifyEmail(context.Background(), &VerifyEmailRequest{Token: result.Token})
	assertApiError(t, err, http.StatusBadRequest, MsgExpiredLink)
}

func TestVerifyEmailAppliesAutoApproval(t *testing.T) {
	f := newFixture(t)
	f.settings.autoApproved = true

	result, err := f.service.Register(context.Background(), &RegisterRequest{
		Email:    "a@x.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	created, err := f.service.VerifyEmail(context.Background(), &VerifyEmailRequest{Token: result.Token})
	require.NoError(t, err)
	assert.Equal(t, domainUser.ApprovalApproved, created.ApprovalStatus)
}

// ---- login ----

func TestLoginFailureLadder(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domainUser.User)
		request  LoginRequest
		code     int
		message  string
		seedSkip bool
	}{
		{
			name:     "unknown email",
			seedSkip: true,
			request:  LoginRequest{Email: "ghost@example.com", Password: "Sup3rSecret!"},
			code:     http.StatusUnauthorized,
			message:  MsgIncorrectEmail,
		},
		{
			name:    "blocked user",
			mutate:  func(u *domainUser.User) { u.IsBlocked = true },
			request: LoginRequest{Email: "seed@example.com", Password: "Sup3rSecret!"},
			code:    http.StatusNotAcceptable,
			message: MsgBlockedUser,
		},
		{
			name:    "unverified email",
			mutate:  func(u *domainUser.User) { u.IsEmailVerified = false },
			request: LoginRequest{Email: "seed@example.com", Password: "Sup3rSecret!"},
			code:    http.StatusUnauthorized,
			message: MsgUnverifiedEmail,
		},
		{
			name:    "wrong password",
			request: LoginRequest{Email: "seed@example.com", Password: "wrong-password"},
			code:    http.StatusUnauthorized,
			message: MsgIncorrectPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if !tt.seedSkip {
				f.seedUser(t, tt.mutate)
			}

			_, err := f.service.Login(context.Background(), &tt.request)
			assertApiError(t, err, tt.code, tt.message)
		})
	}
}

func TestLoginSucceedsAndSanitizesUser(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedUser(t, nil)

	device := "device-token-1"
	auth, err := f.service.Login(context.Background(), &LoginRequest{
		Email:       "seed@example.com",
		Password:    "Sup3rSecret!",
		DeviceToken: &device,
	})
	require.NoError(t, err)
	require.NotNil(t, auth.Tokens)
	assert.NotEmpty(t, auth.Tokens.AccessToken)
	assert.NotEmpty(t, auth.Tokens.RefreshToken)
	assert.Equal(t, seeded.ID, auth.User.ID)

	stored, err := f.users.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DeviceToken)
	assert.Equal(t, device, *stored.DeviceToken)
}

func TestLoginByMobileChecksMobileVerification(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, func(u *domainUser.User) {
		mobile := "+14155550100"
		u.Mobile = &mobile
		u.IsMobileVerified = false
	})

	_, err := f.service.Login(context.Background(), &LoginRequest{
		Mobile:   "+14155550100",
		Password: "Sup3rSecret!",
	})
	assertApiError(t, err, http.StatusUnauthorized, MsgUnverifiedMobile)
}

func TestAdminLoginCollapsesFailureCauses(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, nil) // plain user, correct credentials

	// Non-admin with correct credentials, unknown email and wrong password
	// must all yield the same generic error.
	_, err := f.service.AdminLogin(context.Background(), &AdminLoginRequest{
		Email:    "seed@example.com",
		Password: "Sup3rSecret!",
	})
	assertApiError(t, err, http.StatusUnauthorized, MsgAdminLoginError)

	_, err = f.service.AdminLogin(context.Background(), &AdminLoginRequest{
		Email:    "ghost@example.com",
		Password: "Sup3rSecret!",
	})
	assertApiError(t, err, http.StatusUnauthorized, MsgAdminLoginError)

	_, err = f.service.AdminLogin(context.Background(), &AdminLoginRequest{
		Email:    "seed@example.com",
		Password: "wrong-password",
	})
	assertApiError(t, err, http.StatusUnauthorized, MsgAdminLoginError)
}

func TestAdminLoginSucceedsForAdmin(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, func(u *domainUser.User) { u.Role = domainUser.RoleAdmin })

	auth, err := f.service.AdminLogin(context.Background(), &AdminLoginRequest{
		Email:    "seed@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	assert.Equal(t, domainUser.RoleAdmin, auth.User.Role)
}

// ---- password reset ----

func TestForgotPasswordPersistsResetToken(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedUser(t, nil)

	result, err := f.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "seed@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, result.UserID)

	stored, err := f.users.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ActiveResetToken)
	assert.Equal(t, result.ResetPasswordToken, *stored.ActiveResetToken)
}

func TestForgotPasswordRejectsUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "ghost@example.com",
	})
	assertApiError(t, err, http.StatusNotFound, MsgNoUserFound)
}

func TestForgotPasswordRejectsAdminAccounts(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, func(u *domainUser.User) { u.Role = domainUser.RoleAdmin })

	_, err := f.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "seed@example.com",
	})
	assertApiError(t, err, http.StatusBadRequest, MsgInvalidUser)
}

func TestResetPasswordConsumesToken(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedUser(t, nil)

	result, err := f.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "seed@example.com",
	})
	require.NoError(t, err)

	req := &ResetPasswordRequest{Token: result.ResetPasswordToken, NewPassword: "N3wSecret!!"}
	require.NoError(t, f.service.ResetPassword(context.Background(), req))

	stored, err := f.users.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ActiveResetToken)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "N3wSecret!!"))

	// Second use of the same token must fail.
	err = f.service.ResetPassword(context.Background(), req)
	assertApiError(t, err, http.StatusBadRequest, MsgExpiredLink)
}

func TestResetPasswordRejectsSupersededToken(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, nil)

	first, err := f.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "seed@example.com",
	})
	require.NoError(t, err)

	// A second request replaces the active token; the first one dies.
	_, err = f.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "seed@example.com",
	})
	require.NoError(t, err)

	err = f.service.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       first.ResetPasswordToken,
		NewPassword: "N3wSecret!!",
	})
	assertApiError(t, err, http.StatusBadRequest, MsgExpiredLink)
}

func TestMobileResetFlowWithOtp(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedUser(t, func(u *domainUser.User) {
		mobile := "+14155550100"
		u.Mobile = &mobile
		u.IsMobileVerified = true
	})

	result, err := f.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Mobile: "+14155550100",
	})
	require.NoError(t, err)
	require.Len(t, f.sms.codes, 1)

	// Wrong OTP is rejected.
	wrong := "0000"
	if f.sms.codes[0] == wrong {
		wrong = "0001"
	}
	_, err = f.service.VerifyResetOtp(context.Background(), &VerifyOtpRequest{
		Token: result.ResetPasswordToken,
		Otp:   wrong,
	})
	assertApiError(t, err, http.StatusBadRequest, MsgIncorrectOtp)

	// Correct OTP exchanges the token for a fresh one.
	fresh, err := f.service.VerifyResetOtp(context.Background(), &VerifyOtpRequest{
		Token: result.ResetPasswordToken,
		Otp:   f.sms.codes[0],
	})
	require.NoError(t, err)
	assert.NotEqual(t, result.ResetPasswordToken, fresh.ResetPasswordToken)

	// Only the fresh token can change the password now.
	err = f.service.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       result.ResetPasswordToken,
		NewPassword: "N3wSecret!!",
	})
	assertApiError(t, err, http.StatusBadRequest, MsgExpiredLink)

	require.NoError(t, f.service.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       fresh.ResetPasswordToken,
		NewPassword: "N3wSecret!!",
	}))

	stored, err := f.users.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "N3wSecret!!"))
}

// ---- invitations ----

func TestRegisterRoutesInvitedUserToAcceptance(t *testing.T) {
	f := newFixture(t)
	inviter := f.seedUser(t, func(u *domainUser.User) {
		email := "inviter@example.com"
		u.Email = &email
	})
	invited := f.seedUser(t, func(u *domainUser.User) {
		email := "invited@example.com"
		u.Email = &email
		u.Name = "Invited User"
		u.PasswordHashed = ""
		u.IsEmailVerified = false
		u.InvitedByEmail = true
		u.InvitedBy = &inviter.ID
	})

	result, err := f.service.Register(context.Background(), &RegisterRequest{
		Email:    "invited@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Auth)
	assert.Empty(t, result.Token)

	stored, err := f.users.GetByID(context.Background(), invited.ID)
	require.NoError(t, err)
	assert.True(t, stored.InvitationAccepted)
	// Acceptance implies a verified email.
	assert.True(t, stored.IsEmailVerified)
	require.NotNil(t, stored.InvitationAcceptedOn)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "Sup3rSecret!"))

	require.Len(t, f.invites.inviters, 1)
	assert.Equal(t, inviter.ID, f.invites.inviters[0])
}

func TestAcceptInvitationRejectsNonInvitedUser(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedUser(t, nil)

	_, err := f.service.AcceptInvitation(context.Background(), seeded.ID, &AcceptInvitationRequest{
		Email:    "seed@example.com",
		Password: "Sup3rSecret!",
	})
	assertApiError(t, err, http.StatusBadRequest, MsgInvitationAccepted)
}

// ---- refresh ----

func TestRefreshAuthIssuesNewPair(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedUser(t, nil)

	pair, err := f.tokens.IssueAuthPair(seeded.ID, seeded.Role)
	require.NoError(t, err)

	fresh, err := f.service.RefreshAuth(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)
}

func TestRefreshAuthRejectsAccessToken(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedUser(t, nil)

	pair, err := f.tokens.IssueAuthPair(seeded.ID, seeded.Role)
	require.NoError(t, err)

	_, err = f.service.RefreshAuth(context.Background(), pair.AccessToken)
	assertApiError(t, err, http.StatusUnauthorized, MsgPleaseAuthenticate)
}

func TestRefreshAuthRejectsUnknownUser(t *testing.T) {
	f := newFixture(t)

	pair, err := f.tokens.IssueAuthPair(uuid.New(), domainUser.RoleUser)
	require.NoError(t, err)

	_, err = f.service.RefreshAuth(context.Background(), pair.RefreshToken)
	assertApiError(t, err, http.StatusUnauthorized, MsgPleaseAuthenticate)
}
