package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// OpenAI collaborators
	OpenAIAPIKey string
	ChatModel    string
	ImageModel   string
	Temperature  float64
	MaxTokens    int

	// Image liveness probe
	ProbeTimeout time.Duration

	// Local layout
	FlowPath   string
	ReportPath string
	CacheDir   string

	// Extra report renderings
	ExportHTML bool
	ExportDocx bool

	// Preview server
	PreviewAddr string
}

func Load() Config {
	cfg := Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		ChatModel:    envOr("OPENAI_CHAT_MODEL", "gpt-4-turbo-preview"),
		ImageModel:   envOr("OPENAI_IMAGE_MODEL", "dall-e-3"),
		Temperature:  envFloat("OPENAI_TEMPERATURE", 0.7),
		MaxTokens:    envInt("OPENAI_MAX_TOKENS", 500),

		ProbeTimeout: envDuration("IMAGE_PROBE_TIMEOUT", 5*time.Second),

		FlowPath:   envOr("FLOW_PATH", "flow.json"),
		ReportPath: envOr("REPORT_PATH", "FLOW_REPORT.md"),
		CacheDir:   envOr("CACHE_DIR", ".cache"),

		ExportHTML: envBool("REPORT_HTML", true),
		ExportDocx: envBool("REPORT_DOCX", false),

		PreviewAddr: envOr("PREVIEW_ADDR", ":8090"),
	}

	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 500
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
