package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	Server     ServerConfig
	Mongo      MongoConfig
	JWT        JWTConfig
	SendGrid   SendGridConfig
	Cloudinary CloudinaryConfig
	App        AppConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	Secret string
}

type SendGridConfig struct {
	APIKey string
	Sender string
}

type CloudinaryConfig struct {
	URL string
}

type AppConfig struct {
	// BaseURL is the public storefront origin used in emailed links.
	BaseURL string
}

// Load reads .env (if present) and builds the configuration from the
// environment, applying development defaults where sensible.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: getEnv("MONGODB_DATABASE", "blushbelle"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		SendGrid: SendGridConfig{
			APIKey: os.Getenv("SENDGRID_API_KEY"),
			Sender: getEnv("EMAIL_SENDER", "no-reply@blushbelle.com"),
		},
		Cloudinary: CloudinaryConfig{
			URL: os.Getenv("CLOUDINARY_URL"),
		},
		App: AppConfig{
			BaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
		},
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
