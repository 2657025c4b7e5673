package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Email    EmailConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig carries the two signing secrets and the three token lifetimes.
// Access-class tokens (access tokens and the signup/reset/verify payload
// tokens) use AccessSecret; refresh tokens use RefreshSecret.
type JWTConfig struct {
	AccessSecret         string
	RefreshSecret        string
	AccessExpiryMinutes  int
	RefreshExpiryHours   int
	PayloadExpiryMinutes int
}

type OTPConfig struct {
	Digits int
}

type EmailConfig struct {
	Region string
	From   string
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	viper.SetDefault("ACCESS_TOKEN_EXPIRATION_MINUTES", 15)
	viper.SetDefault("REFRESH_TOKEN_EXPIRATION_HOURS", 24*7)
	viper.SetDefault("PAYLOAD_TOKEN_EXPIRATION_MINUTES", 10)
	viper.SetDefault("OTP_DIGITS", 4)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			AccessSecret:         viper.GetString("ACCESS_TOKEN_SECRET"),
			RefreshSecret:        viper.GetString("REFRESH_TOKEN_SECRET"),
			AccessExpiryMinutes:  viper.GetInt("ACCESS_TOKEN_EXPIRATION_MINUTES"),
			RefreshExpiryHours:   viper.GetInt("REFRESH_TOKEN_EXPIRATION_HOURS"),
			PayloadExpiryMinutes: viper.GetInt("PAYLOAD_TOKEN_EXPIRATION_MINUTES"),
		},
		OTP: OTPConfig{
			Digits: viper.GetInt("OTP_DIGITS"),
		},
		Email: EmailConfig{
			Region: viper.GetString("AWS_SES_REGION"),
			From:   viper.GetString("EMAIL_FROM"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (j *JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessExpiryMinutes) * time.Minute
}

func (j *JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshExpiryHours) * time.Hour
}

func (j *JWTConfig) PayloadTTL() time.Duration {
	return time.Duration(j.PayloadExpiryMinutes) * time.Minute
}
