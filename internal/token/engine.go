package token

import (
	"fmt"
	"time"

	"accounts-service/internal/config"
	apiErrors "accounts-service/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionExpiredMessage = "Session has been expired"

// Claims is the single payload shape all tokens share. Optional fields stay
// empty and are omitted from the encoded token: auth tokens carry sub+role,
// registration payload tokens carry the pending signup fields plus the otp,
// reset tokens carry sub plus otp/mobile on the SMS path.
type Claims struct {
	Role     string `json:"role,omitempty"`
	OTP      string `json:"otp,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Password string `json:"password,omitempty"`
	jwt.RegisteredClaims
}

// Pair is the access/refresh token pair issued on login and refresh.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Engine signs and verifies all tokens. Two distinct secrets are configured:
// one for access-class tokens (access tokens and the signup/reset/verify
// payload tokens), one for refresh tokens, so a leaked access token can
// never stand in for a refresh token.
type Engine struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	payloadTTL    time.Duration
}

func NewEngine(cfg config.JWTConfig) *Engine {
	return &Engine{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL(),
		refreshTTL:    cfg.RefreshTTL(),
		payloadTTL:    cfg.PayloadTTL(),
	}
}

// Issue signs claims with the given secret, stamping issuance and expiry.
func (e *Engine) Issue(claims Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", apiErrors.NewInternal("failed to sign token", err)
	}

	return signed, nil
}

// VerifyAccess validates an access-class token. Every failure mode (bad
// signature, malformed token, expiry) collapses into the same Unauthorized
// error so callers cannot probe validation internals.
func (e *Engine) VerifyAccess(tokenString string) (*Claims, error) {
	return e.verify(tokenString, e.accessSecret)
}

// VerifyRefresh validates a refresh token against the refresh secret.
func (e *Engine) VerifyRefresh(tokenString string) (*Claims, error) {
	return e.verify(tokenString, e.refreshSecret)
}

func (e *Engine) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apiErrors.NewUnauthorized(sessionExpiredMessage)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apiErrors.NewUnauthorized(sessionExpiredMessage)
	}

	return claims, nil
}

// IssueAuthPair issues the access/refresh pair for an authenticated user.
func (e *Engine) IssueAuthPair(userID uuid.UUID, role string) (*Pair, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID.String(),
		},
	}

	accessToken, err := e.Issue(claims, e.accessSecret, e.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := e.Issue(claims, e.refreshSecret, e.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &Pair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// IssuePayloadToken issues a short-lived purpose-scoped token carrying
// provisional signup or reset state instead of server-side storage.
func (e *Engine) IssuePayloadToken(claims Claims) (string, error) {
	return e.Issue(claims, e.accessSecret, e.payloadTTL)
}
