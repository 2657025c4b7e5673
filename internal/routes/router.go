package routes

import (
	"net/http"

	"accounts-service/internal/config"
	"accounts-service/internal/delivery/http/handler"
	"accounts-service/internal/infrastructure/database/postgres"
	"accounts-service/internal/middleware"
	"accounts-service/internal/notification"
	"accounts-service/internal/otp"
	"accounts-service/internal/token"
	"accounts-service/internal/usecase/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Senders groups the outbound delivery channels the auth workflow needs.
type Senders struct {
	Email   notification.EmailSender
	SMS     notification.SMSSender
	Invites notification.InvitationNotifier
}

func SetupRoutes(cfg *config.Config, db *postgres.DB, senders Senders, log *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	tokenEngine := token.NewEngine(cfg.JWT)
	otpGenerator := otp.NewGenerator(cfg.OTP.Digits)

	userRepository := postgres.NewUserRepository(db)
	settingRepository := postgres.NewSettingRepository(db)

	authService := auth.NewService(
		userRepository,
		settingRepository,
		tokenEngine,
		otpGenerator,
		senders.Email,
		senders.SMS,
		senders.Invites,
		log,
	)
	authHandler := handler.NewAuthHandler(authService, cfg, log)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(tokenEngine))
		{
			authHandler.RegisterProfileRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	log.Info("All routes initialized")
	return router
}
