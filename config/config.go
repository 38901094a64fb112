package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session sources.
const (
	SourceCSV        = "csv"
	SourceSessionize = "sessionize"
	SourcePostgres   = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string
	ConventionFile string
	Source         string
	InputFile      string
	SessionizeID   string
	DBUrl          string
	EventID        string
	OutputDir      string
	// Generated pins the document timestamp; empty means now.
	Generated      string
	Port           string
	JWTSecret      string
	TokenExpiry    time.Duration
	Quiet          bool
	CORSOrigins    []string

	MailProvider    string
	MailFrom        string
	MailFromName    string
	AWSRegion       string
	AWSAccessKey    string
	AWSSecretKey    string
	ProofRecipients []string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production there is usually no .env file and the environment is authoritative.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:     env,
		ConventionFile:  os.Getenv("CONGUIDE_CONFIG"),
		Source:          strings.ToLower(os.Getenv("CONGUIDE_SOURCE")),
		InputFile:       os.Getenv("CONGUIDE_INPUT"),
		SessionizeID:    os.Getenv("SESSIONIZE_ID"),
		DBUrl:           os.Getenv("DATABASE_URL"),
		EventID:         os.Getenv("EVENT_ID"),
		OutputDir:       os.Getenv("CONGUIDE_OUTPUT_DIR"),
		Generated:       os.Getenv("CONGUIDE_GENERATED"),
		Port:            os.Getenv("PORT"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),
		MailProvider:    os.Getenv("MAIL_PROVIDER"),
		MailFrom:        os.Getenv("MAIL_FROM"),
		MailFromName:    os.Getenv("MAIL_FROM_NAME"),
		AWSRegion:       os.Getenv("AWS_REGION"),
		AWSAccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		ProofRecipients: splitList(os.Getenv("PROOF_RECIPIENTS")),
	}

	// Set defaults
	if cfg.ConventionFile == "" {
		cfg.ConventionFile = "conguide.yaml"
	}
	if cfg.Source == "" {
		cfg.Source = SourceCSV
	}
	if cfg.InputFile == "" {
		cfg.InputFile = "schedule.csv"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MailProvider == "" {
		cfg.MailProvider = "noop"
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-east-1"
	}

	cfg.TokenExpiry = 24 * time.Hour
	if s := os.Getenv("JWT_EXPIRY"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRY %q: %w", s, err)
		}
		cfg.TokenExpiry = d
	}
	if s := os.Getenv("QUIET"); s != "" {
		q, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid QUIET %q: %w", s, err)
		}
		cfg.Quiet = q
	}

	switch cfg.Source {
	case SourceCSV, SourceSessionize, SourcePostgres:
	default:
		return nil, fmt.Errorf("unknown CONGUIDE_SOURCE %q", cfg.Source)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
