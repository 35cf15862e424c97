package config

import (
	"os"
	"strconv"
)

// Config collects every environment setting the server reads. Values come
// from the process environment (godotenv loads .env in main).
type Config struct {
	DatabaseURL string
	HTTPPort    string

	JWTSecret    string
	JWTTTLHours  int
	VerifySecret string

	AppURL    string
	UploadDir string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	ContactRecipient string
}

func Load() Config {
	return Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		HTTPPort:         getenv("HTTP_PORT", "8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTTTLHours:      getint("JWT_TTL_HOURS", 1),
		VerifySecret:     os.Getenv("VERIFY_SECRET"),
		AppURL:           getenv("APP_URL", "http://localhost:8080"),
		UploadDir:        getenv("UPLOAD_DIR", "uploads"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getint("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		MailFrom:         getenv("MAIL_FROM", "noreply@craftmarket.local"),
		ContactRecipient: os.Getenv("CONTACT_RECIPIENT"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
