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
	Port                string
	CORSAllowOrigin     []string
	DatabaseURL         string
	Env                 string
	JWTSecret           string
	TokenTTL            time.Duration
	BcryptCost          int
	LLMProvider         string
	LLMModel            string
	GeminiAPIKey        string
	OpenAIAPIKey        string
	GoogleClientID      string
	GoogleClientSecret  string
	GoogleRedirectURL   string
	UIRedirectURL       string
	CronSecret          string
	SweepSchedule       string
	SweepConcurrency    int
	RedisAddr           string
	RedisPassword       string
	ObjectStore         string
	LocalStoreDir       string
	S3Bucket            string
	S3Prefix            string
	AWSRegion           string
	S3KMSKeyID          string
	GCSBucket           string
	GCSPrefix           string
	DocumentAIProcessor string
	TracingEnabled      bool
	OTLPEndpoint        string
	OTLPInsecure        bool
	TraceSampleRatio    float64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Missing files are fine; real environment variables always win.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                getEnv("PORT", "8080"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		DatabaseURL:         dbURL,
		Env:                 env,
		JWTSecret:           getEnv("JWT_SECRET", ""),
		TokenTTL:            time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		BcryptCost:          getEnvInt("BCRYPT_COST", 10),
		LLMProvider:         normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:            getEnv("LLM_MODEL", ""),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:   getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:       getEnv("UI_REDIRECT_URL", ""),
		CronSecret:          getEnv("CRON_SECRET", ""),
		SweepSchedule:       getEnv("INSIGHT_SWEEP_SCHEDULE", "@weekly"),
		SweepConcurrency:    getEnvInt("INSIGHT_SWEEP_CONCURRENCY", 1),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		ObjectStore:         normalizeObjectStore(getEnv("OBJECT_STORE", "none")),
		LocalStoreDir:       getEnv("LOCAL_STORE_DIR", "./data/uploads"),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Prefix:            getEnv("S3_PREFIX", ""),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		S3KMSKeyID:          getEnv("S3_SSE_KMS_KEY_ID", ""),
		GCSBucket:           getEnv("GCS_BUCKET", ""),
		GCSPrefix:           getEnv("GCS_PREFIX", ""),
		DocumentAIProcessor: getEnv("DOCUMENTAI_PROCESSOR", ""),
		TracingEnabled:      getEnvBool("OTEL_ENABLED", false),
		OTLPEndpoint:        getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:        getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSampleRatio:    getEnvFloat("OTEL_SAMPLER_RATIO", 0.1),
	}
}

// SchedulerEnabled reports whether the API process should run the weekly sweep itself.
// INSIGHT_SWEEP_SCHEDULE=off leaves sweeping to the cron hook or a separate worker.
func (c Config) SchedulerEnabled() bool {
	switch strings.ToLower(c.SweepSchedule) {
	case "off", "disabled", "none":
		return false
	default:
		return true
	}
}

// IsDevLike reports whether in-memory fallbacks are acceptable.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config %s invalid float: %v", key, err)
		return def
	}
	return val
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
	case "openai":
		return "openai"
	case "none", "placeholder":
		return "none"
	default:
		return "gemini"
	}
}

func normalizeObjectStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local", "disk":
		return "local"
	case "s3":
		return "s3"
	case "gcs", "gs":
		return "gcs"
	default:
		return "none"
	}
}
