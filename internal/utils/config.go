package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         int    `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// SMS gateway configuration
	SMSAPIURL    string `yaml:"SMS_API_URL"`
	SMSAPIKey    string `yaml:"SMS_API_KEY"`
	SMSSenderNum string `yaml:"SMS_SENDER_NUMBER"`
}

// LoadConfig reads and parses the yaml config file. Services receive the
// parsed struct explicitly; nothing is stashed in process globals.
func LoadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	return &cfg, nil
}
