package testing

import (
	"testing"

	"dyelens/internal/platform/config"
	"dyelens/internal/platform/logging"
)

func SetupTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Log.Level = "debug"
	cfg.Guard.AllowedHosts = []string{"cdn.discordapp.com", "media.discordapp.net"}
	return cfg
}

func SetupTestLogger(t *testing.T) *logging.Logger {
	t.Helper()

	logger, err := logging.New(logging.Config{Level: "error"})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return logger
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}

func AssertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}
