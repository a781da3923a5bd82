package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderAlpaca  = "alpaca"
	ProviderFinnhub = "finnhub"
	ProviderNewsAPI = "newsapi"

	ClassifierHugot       = "hugot"
	ClassifierHuggingFace = "huggingface"
	ClassifierVader       = "vader"

	PolicyAbort = "abort"
	PolicySkip  = "skip"
)

// Config is built once at process start and handed to every component.
type Config struct {
	Env      string
	Port     string
	LogLevel string

	News struct {
		Provider        string
		Limit           int
		AlpacaKey       string
		AlpacaSecret    string
		AlpacaBaseURL   string
		FinnhubKey      string
		NewsAPIKey      string
		NewsAPIBaseURL  string
		OutboundTimeout time.Duration
	}

	Classifier struct {
		Backend             string
		ModelName           string
		ModelRevision       string
		ModelDir            string
		HFToken             string
		HFInferenceURL      string
		HealthCheckInterval time.Duration
	}

	Cache struct {
		Address  string
		Password string
		TLS      bool
		TTL      time.Duration
	}

	ScoreThreshold    float64
	SymbolErrorPolicy string
	TracingEnabled    bool
	AllowedOrigins    []string
}

// Load reads the process environment. Call LoadEnv first to pull in the
// .env file for the current APP_ENV.
func Load() (*Config, error) {
	var c Config
	var err error

	c.Env = AppEnv()
	c.Port = getEnvOrDefault("PORT", "8000")
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", "INFO")

	c.News.Provider = strings.ToLower(getEnvOrDefault("NEWS_PROVIDER", ProviderAlpaca))
	if c.News.Limit, err = getIntOrDefault("NEWS_LIMIT", 50); err != nil {
		return nil, err
	}
	c.News.AlpacaKey = os.Getenv("ALPACA_API_KEY")
	c.News.AlpacaSecret = os.Getenv("ALPACA_API_SECRET")
	c.News.AlpacaBaseURL = getEnvOrDefault("ALPACA_BASE_URL", "https://data.alpaca.markets")
	c.News.FinnhubKey = os.Getenv("FINNHUB_API_KEY")
	c.News.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	c.News.NewsAPIBaseURL = getEnvOrDefault("NEWS_API_BASE_URL", "https://newsapi.org")
	if c.News.OutboundTimeout, err = getDurationOrDefault("OUTBOUND_TIMEOUT", 0); err != nil {
		return nil, err
	}

	c.Classifier.Backend = strings.ToLower(getEnvOrDefault("CLASSIFIER", ClassifierHugot))
	c.Classifier.ModelName = getEnvOrDefault("MODEL_NAME", defaultModel(c.Classifier.Backend))
	c.Classifier.ModelRevision = getEnvOrDefault("MODEL_REVISION", "main")
	c.Classifier.ModelDir = getEnvOrDefault("MODEL_DIR", "./models")
	c.Classifier.HFToken = os.Getenv("HF_API_TOKEN")
	c.Classifier.HFInferenceURL = getEnvOrDefault("HF_INFERENCE_URL", "https://api-inference.huggingface.co/models")
	if c.Classifier.HealthCheckInterval, err = getDurationOrDefault("HEALTHCHECK_INTERVAL", 15*time.Second); err != nil {
		return nil, err
	}

	c.Cache.Address = os.Getenv("VALKEY_INIT_ADDRESS")
	c.Cache.Password = os.Getenv("VALKEY_PASSWORD")
	c.Cache.TLS = os.Getenv("VALKEY_TLS") == "true"
	if c.Cache.TTL, err = getDurationOrDefault("CLASSIFICATION_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if c.ScoreThreshold, err = getFloatOrDefault("SCORE_THRESHOLD", 0.99); err != nil {
		return nil, err
	}
	c.SymbolErrorPolicy = strings.ToLower(getEnvOrDefault("SYMBOL_ERROR_POLICY", PolicyAbort))
	c.TracingEnabled = os.Getenv("TRACING_ENABLED") == "true"
	c.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.News.Provider {
	case ProviderAlpaca:
		if c.News.AlpacaKey == "" || c.News.AlpacaSecret == "" {
			return errors.New("ALPACA_API_KEY and ALPACA_API_SECRET are required for the alpaca provider")
		}
	case ProviderFinnhub:
		if c.News.FinnhubKey == "" {
			return errors.New("FINNHUB_API_KEY is required for the finnhub provider")
		}
	case ProviderNewsAPI:
		if c.News.NewsAPIKey == "" {
			return errors.New("NEWS_API_KEY is required for the newsapi provider")
		}
	default:
		return fmt.Errorf("invalid NEWS_PROVIDER '%s': must be 'alpaca', 'finnhub' or 'newsapi'", c.News.Provider)
	}

	switch c.Classifier.Backend {
	case ClassifierHugot, ClassifierHuggingFace, ClassifierVader:
	default:
		return fmt.Errorf("invalid CLASSIFIER '%s': must be 'hugot', 'huggingface' or 'vader'", c.Classifier.Backend)
	}

	if c.News.Limit <= 0 {
		return fmt.Errorf("NEWS_LIMIT must be positive, got %d", c.News.Limit)
	}
	if c.ScoreThreshold < 0 || c.ScoreThreshold > 1 {
		return fmt.Errorf("SCORE_THRESHOLD must be between 0-1, got %.4f", c.ScoreThreshold)
	}
	if c.SymbolErrorPolicy != PolicyAbort && c.SymbolErrorPolicy != PolicySkip {
		return fmt.Errorf("invalid SYMBOL_ERROR_POLICY '%s': must be 'abort' or 'skip'", c.SymbolErrorPolicy)
	}
	return nil
}

// hugot needs an ONNX export; the hosted API serves the original weights.
func defaultModel(backend string) string {
	if backend == ClassifierHuggingFace {
		return "distilbert/distilbert-base-uncased-finetuned-sst-2-english"
	}
	return "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getFloatOrDefault(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
