package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth. Empty disables API-key checks.
	APIKey string

	// Extraction cache
	CacheDir string
	UseCache bool

	// Upload handling
	UploadDir      string
	MaxUploadBytes int64

	// Segmentation defaults
	MaxSegmentsPerBatch int
	SplitSentences      bool

	// PDF
	PDFFallback bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("PDFBRIDGE_API_KEY"),

		CacheDir: envOr("CACHE_DIR", "./uploads/cache"),
		UseCache: envBool("USE_CACHE", true),

		UploadDir:      envOr("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MaxSegmentsPerBatch: envInt("MAX_SEGMENTS_PER_BATCH", 50),
		SplitSentences:      envBool("SPLIT_SENTENCES", true),

		PDFFallback: envBool("PDF_FALLBACK", true),
	}

	if cfg.MaxSegmentsPerBatch <= 0 {
		cfg.MaxSegmentsPerBatch = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}

	return cfg
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

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
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
