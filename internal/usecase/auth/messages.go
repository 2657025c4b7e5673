package auth

// User-facing messages. The admin login message deliberately covers every
// failure cause so callers cannot tell a missing admin from a wrong password.
const (
	MsgIncorrectEmail     = "Incorrect email"
	MsgIncorrectMobile    = "Incorrect mobile"
	MsgIncorrectPassword  = "Incorrect password"
	MsgBlockedUser        = "Your account has been blocked"
	MsgUnverifiedEmail    = "Please verify your email"
	MsgUnverifiedMobile   = "Please verify your mobile"
	MsgAdminLoginError    = "Incorrect email or password"
	MsgUserAlreadyExists  = "User already exists with this email or mobile"
	MsgNoUserFound        = "No user found"
	MsgInvalidUser        = "Invalid user account"
	MsgIdentifierRequired = "Email or mobile is required"
	MsgInvalidLink        = "Invalid link"
	MsgExpiredLink        = "Link has been expired"
	MsgIncorrectOtp       = "Incorrect otp"
	MsgInvalidRequest     = "Invalid request"
	MsgPleaseAuthenticate = "Please authenticate"
	MsgInvitationAccepted = "Invitation has already been accepted"

	MsgOtpSentEmail = "Otp has been sent to your email"
	MsgOtpSentSMS   = "Otp has been sent to your mobile"
)
