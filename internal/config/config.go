package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	Env         string // "development" or "production"

	JWTSecret    string
	JWTExpiresIn time.Duration

	CORSOrigins string // comma separated allow-list

	CloudinaryURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EnquiryTo    string

	SuperAdminEmail string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=scholarship port=5432 sslmode=disable"),
		Env:             getEnv("APP_ENV", "development"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTExpiresIn:    getDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"),
		CloudinaryURL:   getEnv("CLOUDINARY_URL", ""),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getInt("SMTP_PORT", 587),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		EnquiryTo:       getEnv("ENQUIRY_TO", ""),
		SuperAdminEmail: getEnv("SUPER_ADMIN_EMAIL", "eccentricecc481@gmail.com"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set; refusing to start without a signing secret")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.CloudinaryURL == "" {
		log.Println("[WARN] CLOUDINARY_URL is not set, file uploads will fail")
	}
	if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
		log.Println("[WARN] SMTP credentials are not set, enquiry emails will fail")
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s is not a number (%q), using default %d", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] %s is not a duration (%q), using default %s", key, v, def)
		return def
	}
	return d
}
