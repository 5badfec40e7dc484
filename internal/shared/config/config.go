package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	MaxUploadBytes int64
	MinTextChars   int

	LLMProvider         string
	LLMModel            string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	GeminiAPIKey        string
	LLMTimeout          time.Duration
	LLMTransportRetries int
	LLMRepairAttempts   int

	RateLimitParseRPS   float64
	RateLimitParseBurst int

	DatabaseURL    string
	RunLogCapacity int
	RunsAPIToken   string

	ObjectStoreType string
	LocalStoreDir   string
	ArchiveUploads  bool
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Variables that
	// are already set win.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	provider := normalizeProvider(getEnv("LLM_PROVIDER", "openai"))

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),

		MaxUploadBytes: int64(getInt("MAX_UPLOAD_BYTES", 10<<20)),
		MinTextChars:   getInt("MIN_TEXT_CHARS", 40),

		LLMProvider:         provider,
		LLMModel:            getEnv("LLM_MODEL", os.Getenv("OPENAI_MODEL")),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:       os.Getenv("OPENAI_BASE_URL"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		LLMTimeout:          getDuration("LLM_TIMEOUT", 60*time.Second),
		LLMTransportRetries: getInt("LLM_TRANSPORT_RETRIES", 0),
		LLMRepairAttempts:   getInt("LLM_REPAIR_ATTEMPTS", 0),

		RateLimitParseRPS:   getFloat("RATE_LIMIT_PARSE_RPS", 0),
		RateLimitParseBurst: getInt("RATE_LIMIT_PARSE_BURST", 0),

		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RunLogCapacity: getInt("RUN_LOG_CAPACITY", 1000),
		RunsAPIToken:   os.Getenv("RUNS_API_TOKEN"),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		ArchiveUploads:  getBool("ARCHIVE_UPLOADS", false),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
	}
}

// IsProduction reports whether missing credentials must fail startup.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("config: invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %t", key, raw, def)
		return def
	}
	return v
}

// getDuration accepts Go durations ("90s") or a bare number of seconds.
func getDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		log.Printf("config: invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	default:
		return "openai"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
