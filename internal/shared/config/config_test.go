package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "CORS_ALLOW_ORIGINS", "OBJECT_STORE", "EXPORT_FILE_NAME", "CAPTURE_TIMEOUT", "CHROME_PATH"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.Env != "dev" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ObjectStoreType != "local" || cfg.ExportFileName != "resume" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CaptureTimeout != 60*time.Second {
		t.Fatalf("expected 60s capture timeout, got %s", cfg.CaptureTimeout)
	}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, []string{"http://localhost:5173"}) {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("CAPTURE_TIMEOUT", "15s")
	t.Setenv("EXPORT_FILE_NAME", "cv")
	t.Setenv("DATABASE_URL", "postgres://localhost/resumes")

	cfg := Load()
	if cfg.Env != "production" || cfg.ObjectStoreType != "s3" || cfg.ExportFileName != "cv" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigin)
	}
	if cfg.CaptureTimeout != 15*time.Second {
		t.Fatalf("expected 15s, got %s", cfg.CaptureTimeout)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CAPTURE_TIMEOUT", "soon")
	if got := Load().CaptureTimeout; got != 60*time.Second {
		t.Fatalf("expected default, got %s", got)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "")
	// godotenv does not override variables that are already set, so clear
	// the key for the duration of the test.
	os.Unsetenv("LOG_LEVEL")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	if got := Load().LogLevel; got != "debug" {
		t.Fatalf("expected LOG_LEVEL from .env, got %q", got)
	}
}
