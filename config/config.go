package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr  string
	DatabaseDSN string

	AccessSecret string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string
	KafkaGroupID  string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	// Frontend base used when building password-reset links.
	ResetBaseURL string

	UploadDir string
	BaseURL   string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":3000"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		AccessSecret:  os.Getenv("ACCESS_SECRET"),
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "shop.mail"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "mail-sender"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		MailFromName:  getEnv("MAIL_FROM_NAME", "Shop"),
		ResetBaseURL:  getEnv("RESET_BASE_URL", "http://localhost:3000/reset-password"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads/products"),
		BaseURL:       getEnv("BASE_URL", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
