package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"campus-route-finder/internal/ports"

	"github.com/joho/godotenv"
)

// Config is the explicit configuration handed to adapters at construction.
type Config struct {
	// Either DatabaseURL, or the discrete connection fields it is built from.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	GoogleAPIKey  string
	GoogleBaseURL string

	CampusBaseURL string
	TermCode      string
	JWTSecret     string

	LogFile  string
	LogLevel string
	Port     string

	AWSRegion string
	// SSMPrefix enables secret lookup in the parameter store, e.g. "/route-finder/dev".
	SSMPrefix string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBHost:        Get("DB_HOST", "localhost"),
		DBPort:        Get("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USERNAME"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        Get("DB_NAME", "pgdb"),
		DBSSLMode:     Get("DB_SSLMODE", "disable"),
		GoogleAPIKey:  os.Getenv("GOOGLE_API_KEY"),
		GoogleBaseURL: Get("GOOGLE_BASE_URL", "https://maps.googleapis.com"),
		CampusBaseURL: Get("CAMPUS_API_BASE_URL", "https://api-sandbox.byu.edu:443"),
		TermCode:      Get("TERM_CODE", "20225"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogFile:       Get("LOG_FILE", "logs/route-finder.log"),
		LogLevel:      Get("LOG_LEVEL", "info"),
		Port:          Get("PORT", "8080"),
		AWSRegion:     Get("AWS_REGION", "us-west-2"),
		SSMPrefix:     os.Getenv("SSM_PREFIX"),
	}
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DSN returns DatabaseURL, or a postgres URL assembled from the discrete fields.
func (c Config) DSN() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// ResolveSecrets fills empty database credentials and the Maps API key from
// the parameter store under SSMPrefix. Values already set are kept.
func ResolveSecrets(ctx context.Context, cfg Config, store ports.ParamStore) (Config, error) {
	if cfg.SSMPrefix == "" || store == nil {
		return cfg, nil
	}

	prefix := strings.TrimRight(cfg.SSMPrefix, "/")
	secrets := []struct {
		name string
		dst  *string
	}{
		{"DB_USERNAME", &cfg.DBUser},
		{"DB_PASSWORD", &cfg.DBPassword},
		{"GOOGLE_API_KEY", &cfg.GoogleAPIKey},
	}

	for _, s := range secrets {
		if *s.dst != "" {
			continue
		}
		v, err := store.GetParameter(ctx, prefix+"/"+s.name)
		if err != nil {
			return cfg, fmt.Errorf("resolve secrets: %s: %w", s.name, err)
		}
		*s.dst = v
	}

	return cfg, nil
}
