package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	SessionSecret      string
	SessionTTL         time.Duration
	AttachmentsDir     string
	AttachmentsBaseURL string
	AdminEmails        []string
	CORSOrigins        []string
	SweepInterval      time.Duration
	SweepMinAge        time.Duration
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultSessionSecret   = "change-me-in-production"
	defaultSessionTTL      = 24 * time.Hour
	defaultAttachmentsDir  = "attachments"
	defaultBaseURL         = "http://localhost:8080"
	defaultSweepInterval   = time.Hour
	defaultSweepMinAge     = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables, and flags, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		SessionSecret:      getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:         getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		AttachmentsDir:     getString(lookup, "ATTACHMENTS_DIR", defaultAttachmentsDir),
		AttachmentsBaseURL: getString(lookup, "ATTACHMENTS_BASE_URL", defaultBaseURL),
		AdminEmails:        getList(lookup, "ADMIN_EMAILS"),
		CORSOrigins:        getList(lookup, "CORS_ALLOWED_ORIGINS"),
		SweepInterval:      getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepMinAge:        getDuration(lookup, "SWEEP_MIN_AGE", defaultSweepMinAge),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("suppliertracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		adminEmailsStr     = strings.Join(cfg.AdminEmails, ",")
		corsOriginsStr     = strings.Join(cfg.CORSOrigins, ",")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.StringVar(&cfg.AttachmentsDir, "attachments-dir", cfg.AttachmentsDir, "Directory backing the attachment store")
	fs.StringVar(&cfg.AttachmentsBaseURL, "base-url", cfg.AttachmentsBaseURL, "Public base URL for attachment links")
	fs.StringVar(&adminEmailsStr, "admin-emails", adminEmailsStr, "Comma separated admin principal emails")
	fs.StringVar(&corsOriginsStr, "cors-origins", corsOriginsStr, "Comma separated allowed CORS origins")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.AdminEmails = splitList(adminEmailsStr)
	cfg.CORSOrigins = splitList(corsOriginsStr)

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.SweepMinAge <= 0 {
		cfg.SweepMinAge = defaultSweepMinAge
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getList(lookup envLookup, key string) []string {
	if v, ok := lookup(key); ok {
		return splitList(v)
	}
	return nil
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
