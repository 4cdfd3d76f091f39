package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	RedisAddr  string
	RedisPass  string
	// TrustMe external e-sign API settings
	TrustMeBaseURL       string
	TrustMeAPIKey        string
	TrustMeWebhookSecret string
	// Google Sheets export settings
	SheetsSpreadsheetID string
	GoogleCredsFile     string
	// Каталог образовательных программ университета
	CatalogURL string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return &Config{
		DBHost:               os.Getenv("DB_HOST"),
		DBPort:               os.Getenv("DB_PORT"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Port:                 getenvOrDefault("PORT", "8080"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             os.Getenv("SMTP_PORT"),
		SMTPUser:             os.Getenv("SMTP_USER"),
		SMTPPass:             os.Getenv("SMTP_PASS"),
		RedisAddr:            getenvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		TrustMeBaseURL:       getenvOrDefault("TRUSTME_BASE_URL", "https://api.trustme.kz"),
		TrustMeAPIKey:        os.Getenv("TRUSTME_API_KEY"),
		TrustMeWebhookSecret: os.Getenv("TRUSTME_WEBHOOK_SECRET"),
		SheetsSpreadsheetID:  os.Getenv("SHEETS_SPREADSHEET_ID"),
		GoogleCredsFile:      getenvOrDefault("GOOGLE_CREDS_FILE", "credentials.json"),
		CatalogURL:           os.Getenv("CATALOG_URL"),
	}
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
