package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "ENV", "CORS_ALLOW_ORIGINS", "MAX_UPLOAD_BYTES", "MIN_TEXT_CHARS",
	"LLM_PROVIDER", "LLM_MODEL", "OPENAI_MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL",
	"GEMINI_API_KEY", "LLM_TIMEOUT", "LLM_TRANSPORT_RETRIES", "LLM_REPAIR_ATTEMPTS",
	"RATE_LIMIT_PARSE_RPS", "RATE_LIMIT_PARSE_BURST", "DATABASE_URL", "OBJECT_STORE",
	"LOCAL_STORE_DIR", "ARCHIVE_UPLOADS", "AWS_REGION", "S3_BUCKET", "S3_PREFIX", "SSE_KMS_KEY_ID",
	"RUN_LOG_CAPACITY", "RUNS_API_TOKEN",
}

// isolate clears config variables and runs in an empty directory so no .env
// file is picked up.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg := Load()
	if cfg.Port != "8080" || cfg.Env != "dev" {
		t.Fatalf("unexpected port/env %q/%q", cfg.Port, cfg.Env)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "*" {
		t.Fatalf("expected wildcard CORS, got %v", cfg.CORSAllowOrigin)
	}
	if cfg.MaxUploadBytes != 10<<20 || cfg.MinTextChars != 40 {
		t.Fatalf("unexpected limits %d/%d", cfg.MaxUploadBytes, cfg.MinTextChars)
	}
	if cfg.LLMProvider != "openai" || cfg.LLMModel != "" || cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("unexpected llm config %+v", cfg)
	}
	if cfg.LLMTransportRetries != 0 || cfg.LLMRepairAttempts != 0 {
		t.Fatalf("retries and repair must be off by default")
	}
	if cfg.RateLimitParseRPS != 0 || cfg.RateLimitParseBurst != 0 {
		t.Fatalf("rate limit must be off by default")
	}
	if cfg.ObjectStoreType != "local" || cfg.ArchiveUploads {
		t.Fatalf("unexpected store config %+v", cfg)
	}
	if cfg.RunLogCapacity != 1000 || cfg.RunsAPIToken != "" {
		t.Fatalf("unexpected run log config %d/%q", cfg.RunLogCapacity, cfg.RunsAPIToken)
	}
}

func TestLoadRunLogSettings(t *testing.T) {
	isolate(t)
	t.Setenv("RUN_LOG_CAPACITY", "50")
	t.Setenv("RUNS_API_TOKEN", "s3cret")

	cfg := Load()
	if cfg.RunLogCapacity != 50 {
		t.Fatalf("expected capacity 50, got %d", cfg.RunLogCapacity)
	}
	if cfg.RunsAPIToken != "s3cret" {
		t.Fatalf("expected token to be read, got %q", cfg.RunsAPIToken)
	}
}

func TestLoadOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "prod")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("LLM_REPAIR_ATTEMPTS", "1")
	t.Setenv("RATE_LIMIT_PARSE_RPS", "0.5")
	t.Setenv("RATE_LIMIT_PARSE_BURST", "3")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("ARCHIVE_UPLOADS", "true")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Fatalf("expected production env, got %q", cfg.Env)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigin)
	}
	if cfg.MaxUploadBytes != 2048 || cfg.LLMProvider != "gemini" || cfg.LLMModel != "gpt-4o" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.LLMTimeout != 90*time.Second || cfg.LLMRepairAttempts != 1 {
		t.Fatalf("unexpected llm knobs %+v", cfg)
	}
	if cfg.RateLimitParseRPS != 0.5 || cfg.RateLimitParseBurst != 3 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitParseRPS, cfg.RateLimitParseBurst)
	}
	if cfg.ObjectStoreType != "s3" || !cfg.ArchiveUploads {
		t.Fatalf("unexpected store config %+v", cfg)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	isolate(t)
	t.Setenv("MIN_TEXT_CHARS", "many")
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("ARCHIVE_UPLOADS", "maybe")
	t.Setenv("LLM_TRANSPORT_RETRIES", "-2")

	cfg := Load()
	if cfg.MinTextChars != 40 || cfg.LLMTimeout != 60*time.Second || cfg.ArchiveUploads || cfg.LLMTransportRetries != 0 {
		t.Fatalf("expected defaults for invalid values, got %+v", cfg)
	}
}

func TestLoadTimeoutSeconds(t *testing.T) {
	isolate(t)
	t.Setenv("LLM_TIMEOUT", "15")

	if got := Load().LLMTimeout; got != 15*time.Second {
		t.Fatalf("expected 15s, got %s", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	isolate(t)
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	content := "# local settings\nPORT=9090\nLLM_MODEL=\"gpt-4o-mini\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv only fills unset variables.
	os.Unsetenv("PORT")
	os.Unsetenv("LLM_MODEL")

	cfg := Load()
	if cfg.Port != "9090" || cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("expected values from .env, got port=%q model=%q", cfg.Port, cfg.LLMModel)
	}
}
