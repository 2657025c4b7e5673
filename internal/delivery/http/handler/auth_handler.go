package handler

import (
	"errors"
	"net/http"

	"accounts-service/internal/config"
	"accounts-service/internal/middleware"
	"accounts-service/internal/usecase/auth"
	apiErrors "accounts-service/pkg/errors"
	"accounts-service/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *auth.Service
	cfg     *config.Config
	log     *zap.Logger
}

func NewAuthHandler(service *auth.Service, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, cfg: cfg, log: log}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/admin/login", h.AdminLogin)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/admin/forgot-password", h.AdminForgotPassword)
		authGroup.POST("/verify-otp", h.VerifyRegistrationOtp)
		authGroup.POST("/verify-email", h.VerifyEmail)
		authGroup.POST("/verify-reset-otp", h.VerifyResetOtp)
		authGroup.POST("/reset-password", h.ResetPassword)
		authGroup.POST("/refresh-token", h.RefreshToken)
	}
}

func (h *AuthHandler) RegisterProfileRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.Profile)
}

func (h *AuthHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/users", h.ListUsers)
	router.GET("/settings", h.Settings)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Mobile = utils.SanitizeMobile(req.Mobile)
	req.Name = utils.SanitizeString(req.Name)

	result, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	if result.Auth != nil {
		utils.SuccessResponse(c, http.StatusOK, "Invitation accepted successfully", result.Auth)
		return
	}

	message := auth.MsgOtpSentEmail
	if result.SentTo == "mobile" {
		message = auth.MsgOtpSentSMS
	}
	utils.SuccessResponse(c, http.StatusOK, message, gin.H{"token": result.Token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Mobile = utils.SanitizeMobile(req.Mobile)

	authResponse, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "You have logged-in successfully", authResponse)
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req auth.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	authResponse, err := h.service.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "You have logged-in successfully", authResponse)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req auth.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Mobile = utils.SanitizeMobile(req.Mobile)

	result, err := h.service.ForgotPassword(c.Request.Context(), &req)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reset password token generated", result)
}

func (h *AuthHandler) AdminForgotPassword(c *gin.Context) {
	var req auth.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.AdminForgotPassword(c.Request.Context(), utils.SanitizeEmail(req.Email))
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reset password token generated", result)
}

func (h *AuthHandler) VerifyRegistrationOtp(c *gin.Context) {
	var req auth.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	authResponse, err := h.service.VerifyRegistrationOtp(c.Request.Context(), &req)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account verified successfully", authResponse)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req auth.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userResponse, err := h.service.VerifyEmail(c.Request.Context(), &req)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email verified successfully", userResponse)
}

func (h *AuthHandler) VerifyResetOtp(c *gin.Context) {
	var req auth.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.VerifyResetOtp(c.Request.Context(), &req)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Otp verified successfully", result)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req auth.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req auth.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.service.RefreshAuth(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", pair)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *AuthHandler) Settings(c *gin.Context) {
	settings, err := h.service.Settings(c.Request.Context())
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Settings retrieved successfully", settings)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// respondWithError maps workflow errors onto the HTTP contract. Operational
// errors pass through with their status and message; anything else becomes a
// generic 500 in production, with message and cause preserved in development.
func (h *AuthHandler) respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *apiErrors.ApiError
	if errors.As(err, &apiErr) {
		if apiErr.Operational {
			utils.ErrorResponse(c, apiErr.Code, apiErr.Message)
			return
		}

		h.log.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)

		if h.cfg.Server.Environment == "production" {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		utils.ErrorResponseWithStack(c, http.StatusInternalServerError, apiErr.Message, err.Error())
		return
	}

	h.log.Error("Unhandled error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)

	if h.cfg.Server.Environment == "production" {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	utils.ErrorResponseWithStack(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
}
