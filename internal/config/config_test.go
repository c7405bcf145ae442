package config

import (
	"context"
	"errors"
	"testing"
)

type fakeStore map[string]string

func (f fakeStore) GetParameter(_ context.Context, name string) (string, error) {
	v, ok := f[name]
	if !ok {
		return "", errors.New("parameter not found")
	}
	return v, nil
}

func TestDSNFromFields(t *testing.T) {
	cfg := Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "walker",
		DBPassword: "p@ss",
		DBName:     "routes",
		DBSSLMode:  "disable",
	}

	want := "postgres://walker:p%40ss@db:5433/routes?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}

	cfg.DatabaseURL = "postgres://override"
	if got := cfg.DSN(); got != "postgres://override" {
		t.Fatalf("DSN = %q, want DATABASE_URL", got)
	}
}

func TestResolveSecrets(t *testing.T) {
	store := fakeStore{
		"/rf/dev/DB_USERNAME":    "ssm-user",
		"/rf/dev/DB_PASSWORD":    "ssm-pass",
		"/rf/dev/GOOGLE_API_KEY": "ssm-key",
	}

	cfg := Config{SSMPrefix: "/rf/dev/", DBUser: "env-user"}
	got, err := ResolveSecrets(context.Background(), cfg, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.DBUser != "env-user" {
		t.Errorf("DBUser = %q, want env value kept", got.DBUser)
	}
	if got.DBPassword != "ssm-pass" {
		t.Errorf("DBPassword = %q", got.DBPassword)
	}
	if got.GoogleAPIKey != "ssm-key" {
		t.Errorf("GoogleAPIKey = %q", got.GoogleAPIKey)
	}
}

func TestResolveSecretsSkippedWithoutPrefix(t *testing.T) {
	cfg := Config{}
	got, err := ResolveSecrets(context.Background(), cfg, fakeStore{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != cfg {
		t.Fatalf("config changed without SSM prefix: %+v", got)
	}
}

func TestGetFallback(t *testing.T) {
	t.Setenv("RF_TEST_KEY", "")
	if got := Get("RF_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("Get = %q, want fallback", got)
	}
	t.Setenv("RF_TEST_KEY", "set")
	if got := Get("RF_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("Get = %q, want set", got)
	}
}
