package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider names recognized in LLM_PROVIDER_ORDER.
const (
	ProviderCerebras   = "cerebras"
	ProviderGroq       = "groq"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	// Provider fallback order plus per-provider credentials and models.
	// A provider whose credential is empty is skipped entirely.
	ProviderOrder    []string
	CerebrasAPIKey   string
	CerebrasModel    string
	GroqAPIKey       string
	GroqModel        string
	OpenRouterAPIKey string
	OpenRouterModel  string
	GeminiAPIKey     string
	GeminiModel      string

	LLMTimeout   time.Duration
	LLMMaxTokens int

	// Candidate profile inputs, loaded once at startup.
	ProfileDir        string
	CandidateName     string
	CandidateEmail    string
	CandidatePhone    string
	CandidateLinkedIn string
	CandidateLocation string

	// Rate limit applied to the generate route.
	GenerateRatePerMin float64
	GenerateBurst      int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),

		ProviderOrder:    splitAndTrim(getEnv("LLM_PROVIDER_ORDER", "cerebras,groq,openrouter,gemini")),
		CerebrasAPIKey:   os.Getenv("CEREBRAS_API_KEY"),
		CerebrasModel:    getEnv("CEREBRAS_MODEL", "llama-3.3-70b"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqModel:        getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:  getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct:free"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		LLMTimeout:   getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
		LLMMaxTokens: getEnvAsInt("LLM_MAX_TOKENS", 4096),

		ProfileDir:        getEnv("PROFILE_DIR", "./data/resumes"),
		CandidateName:     os.Getenv("CANDIDATE_NAME"),
		CandidateEmail:    os.Getenv("CANDIDATE_EMAIL"),
		CandidatePhone:    os.Getenv("CANDIDATE_PHONE"),
		CandidateLinkedIn: os.Getenv("CANDIDATE_LINKEDIN"),
		CandidateLocation: os.Getenv("CANDIDATE_LOCATION"),

		GenerateRatePerMin: getEnvAsFloat("GENERATE_RATE_PER_MIN", 10),
		GenerateBurst:      getEnvAsInt("GENERATE_BURST", 3),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
		return parsed
	}
	return def
}

func getEnvAsFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
		return parsed
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
		return parsed
	}
	return def
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
	default:
		return "dev"
	}
}
