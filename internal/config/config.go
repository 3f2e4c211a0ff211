package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the Gemini REST endpoint prefix. A model name and
// action verb are appended per request.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type Config struct {
	// APIKey is the Google AI API key. May be empty; AI-backed endpoints
	// then answer with a configuration error instead of calling upstream.
	APIKey         string
	BaseURL        string
	ChatModel      string
	ImageModel     string
	ListenAddr     string
	ServiceName    string
	RequestTimeout time.Duration
}

func Load() *Config {
	// Optional .env for local development; real environment wins when both set.
	_ = godotenv.Load()

	cfg := &Config{ServiceName: "lepen-ai-backend"}

	flag.StringVar(&cfg.APIKey, "api-key", os.Getenv("GOOGLE_API_KEY"), "Google AI API key")
	flag.StringVar(&cfg.BaseURL, "gemini-base-url", getEnv("GEMINI_BASE_URL", DefaultBaseURL), "Gemini models endpoint prefix")
	flag.StringVar(&cfg.ChatModel, "chat-model", getEnv("CHAT_MODEL", "gemini-2.0-flash"), "Model for chat, web search, and map search")
	flag.StringVar(&cfg.ImageModel, "image-model", getEnv("IMAGE_MODEL", "gemini-2.0-flash-exp-image-generation"), "Model for image generation and editing")
	flag.StringVar(&cfg.ListenAddr, "listen-addr", getEnv("LISTEN_ADDR", ":"+getEnv("PORT", "5000")), "Server listen address")

	timeoutStr := getEnv("REQUEST_TIMEOUT", "120s")
	defaultTimeout, _ := time.ParseDuration(timeoutStr)
	if defaultTimeout == 0 {
		defaultTimeout = 120 * time.Second
	}
	flag.DurationVar(&cfg.RequestTimeout, "request-timeout", defaultTimeout, "Round-trip timeout for buffered Gemini requests")

	flag.Parse()
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
