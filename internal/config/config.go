package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	AdsData    AdsDataConfig    `yaml:"ads_data"`
	Redis      RedisConfig      `yaml:"redis"`
	Agent      AgentConfig      `yaml:"agent"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// GenerationConfig selects and configures the text-generation backend
type GenerationConfig struct {
	Provider string        `yaml:"provider"` // "gemini" or "bedrock"
	Gemini   GeminiConfig  `yaml:"gemini"`
	Bedrock  BedrockConfig `yaml:"bedrock"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c GeminiConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BedrockConfig holds AWS Bedrock configuration
type BedrockConfig struct {
	ModelID string `yaml:"model_id"`
	Region  string `yaml:"region"`
}

// AdsDataConfig holds ads reporting data source configuration
type AdsDataConfig struct {
	Backend        string `yaml:"backend"` // "postgres" or "http"
	DatabaseURL    string `yaml:"database_url"`
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c AdsDataConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisConfig holds Redis configuration for chat rate limiting
type RedisConfig struct {
	Enabled            bool   `yaml:"enabled"`
	Addr               string `yaml:"addr"`
	Password           string `yaml:"password"`
	DB                 int    `yaml:"db"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// AgentConfig holds conversational agent behavior configuration.
// The keyword sets drive language-specific routing heuristics and are
// configurable because the product ships with a Vietnamese-first UI.
type AgentConfig struct {
	Language            string   `yaml:"language"`
	DefaultTimeRange    string   `yaml:"default_time_range"`
	HistoryMessageLimit int      `yaml:"history_message_limit"`
	HistoryCharLimit    int      `yaml:"history_char_limit"`
	ExplainTriggerWords []string `yaml:"explain_trigger_words"`
	TimeSeriesMarkers   []string `yaml:"time_series_markers"`
	CampaignWords       []string `yaml:"campaign_words"`
	AccountWords        []string `yaml:"account_words"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Generation.Provider == "" {
		cfg.Generation.Provider = "gemini"
	}
	if cfg.Generation.Gemini.Model == "" {
		cfg.Generation.Gemini.Model = "gemini-3-flash-preview"
	}
	if cfg.Generation.Gemini.BaseURL == "" {
		cfg.Generation.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Generation.Gemini.TimeoutSeconds == 0 {
		cfg.Generation.Gemini.TimeoutSeconds = 60
	}
	if cfg.Generation.Bedrock.ModelID == "" {
		cfg.Generation.Bedrock.ModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	if cfg.Generation.Bedrock.Region == "" {
		cfg.Generation.Bedrock.Region = "us-east-1"
	}
	if cfg.AdsData.Backend == "" {
		cfg.AdsData.Backend = "postgres"
	}
	if cfg.AdsData.TimeoutSeconds == 0 {
		cfg.AdsData.TimeoutSeconds = 30
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.RateLimitPerMinute == 0 {
		cfg.Redis.RateLimitPerMinute = 60
	}
	if cfg.Agent.Language == "" {
		cfg.Agent.Language = "vi"
	}
	if cfg.Agent.DefaultTimeRange == "" {
		cfg.Agent.DefaultTimeRange = "last 30 days"
	}
	if cfg.Agent.HistoryMessageLimit == 0 {
		cfg.Agent.HistoryMessageLimit = 3
	}
	if cfg.Agent.HistoryCharLimit == 0 {
		cfg.Agent.HistoryCharLimit = 100
	}
	if len(cfg.Agent.ExplainTriggerWords) == 0 {
		cfg.Agent.ExplainTriggerWords = []string{"tại sao", "why", "giải thích", "explain"}
	}
	if len(cfg.Agent.TimeSeriesMarkers) == 0 {
		cfg.Agent.TimeSeriesMarkers = []string{"theo ngày", "theo tuần", "theo tháng", "over time", "biểu đồ"}
	}
	if len(cfg.Agent.CampaignWords) == 0 {
		cfg.Agent.CampaignWords = []string{"campaign", "chiến dịch"}
	}
	if len(cfg.Agent.AccountWords) == 0 {
		cfg.Agent.AccountWords = []string{"account", "tài khoản"}
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if apiKey := os.Getenv("GOOGLE_API_KEY"); apiKey != "" {
		cfg.Generation.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Generation.Gemini.Model = model
	}
	if baseURL := os.Getenv("GEMINI_BASE_URL"); baseURL != "" {
		cfg.Generation.Gemini.BaseURL = baseURL
	}
	if provider := os.Getenv("GENERATION_PROVIDER"); provider != "" {
		cfg.Generation.Provider = provider
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Generation.Bedrock.Region = region
	}
	if modelID := os.Getenv("BEDROCK_MODEL_ID"); modelID != "" {
		cfg.Generation.Bedrock.ModelID = modelID
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.AdsData.DatabaseURL = dbURL
	}
	if baseURL := os.Getenv("ADS_DATA_BASE_URL"); baseURL != "" {
		cfg.AdsData.BaseURL = baseURL
		if cfg.AdsData.Backend == "" || cfg.AdsData.Backend == "postgres" {
			cfg.AdsData.Backend = "http"
		}
	}
	if apiKey := os.Getenv("ADS_DATA_API_KEY"); apiKey != "" {
		cfg.AdsData.APIKey = apiKey
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}

	return cfg, nil
}
