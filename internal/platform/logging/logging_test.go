package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	closer, err := Setup(Options{File: path, Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logrus.WithField("op", "test").Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("log file is empty")
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", logrus.GetLevel())
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if _, err := Setup(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
