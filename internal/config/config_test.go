package config

import (
	"os"
	"testing"
	"time"
)

func TestReadDefaults(t *testing.T) {
	for _, name := range []string{"TRELLIS_ENV", "TRELLIS_API_URL", "TRELLIS_API_TIMEOUT", "TRELLIS_LOG_LEVEL", "TRELLIS_LOG_FILE"} {
		// t.Setenv registers the restore; the variable must be absent,
		// not empty, for the defaults to apply.
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	cfg, err := Read()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
}

func TestReadFromEnvironment(t *testing.T) {
	t.Setenv("TRELLIS_API_URL", "https://board.example.com/api")
	t.Setenv("TRELLIS_API_TIMEOUT", "3s")
	t.Setenv("TRELLIS_LOG_LEVEL", "debug")

	cfg, err := Read()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "https://board.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
}

func TestReadRejectsBadTimeout(t *testing.T) {
	t.Setenv("TRELLIS_API_TIMEOUT", "soon")
	if _, err := Read(); err == nil {
		t.Error("malformed duration accepted")
	}
}
