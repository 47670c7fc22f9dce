package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the interview service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	CORSOrigins        string
	DatabaseDriver     string
	DatabaseURL        string
	RedisURL           string
	NATSURL            string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	PrimaryModel       string
	FallbackModels     []string
	QuestionCount      int
	WhisperModelSize   string
	WhisperModelDir    string
	WhisperBinary      string
	TranscribeLanguage string
	PDFBinary          string
	ReportDir          string
	PollInterval       time.Duration
	AICallTimeout      time.Duration
	TranscribeTimeout  time.Duration
	GraderWorkers      int
	GraderQueueSize    int
	SnapshotCacheTTL   time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// ModelChain returns the ordered list of model identifiers to try for
// report synthesis: the primary model followed by the fallbacks.
func (c Config) ModelChain() []string {
	chain := make([]string, 0, len(c.FallbackModels)+1)
	chain = append(chain, c.PrimaryModel)
	for _, model := range c.FallbackModels {
		model = strings.TrimSpace(model)
		if model != "" && model != c.PrimaryModel {
			chain = append(chain, model)
		}
	}
	return chain
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("VOXHIRE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Voxhire API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8000")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("ai.model", "qwen-flash")
	v.SetDefault("ai.fallback_models", "qwq-plus,qvq-plus,qvq-max")
	v.SetDefault("ai.call_timeout", "90s")
	v.SetDefault("question.count", 5)
	v.SetDefault("whisper.model_size", "small")
	v.SetDefault("whisper.model_dir", "models")
	v.SetDefault("whisper.binary", "whisper-cli")
	v.SetDefault("transcribe.language", "zh")
	v.SetDefault("transcribe.timeout", "2m")
	v.SetDefault("pdf.binary", "wkhtmltopdf")
	v.SetDefault("report.dir", "reports")
	v.SetDefault("poll.interval", "5m")
	v.SetDefault("grader.workers", 4)
	v.SetDefault("grader.queue_size", 64)
	v.SetDefault("snapshot.cache_ttl", "30s")

	pollInterval, err := time.ParseDuration(v.GetString("poll.interval"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid poll interval: %w", err)
	}

	aiTimeout, err := time.ParseDuration(v.GetString("ai.call_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai call timeout: %w", err)
	}

	transcribeTimeout, err := time.ParseDuration(v.GetString("transcribe.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid transcribe timeout: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("snapshot.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid snapshot cache ttl: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		CORSOrigins:        v.GetString("cors.origins"),
		DatabaseDriver:     strings.ToLower(v.GetString("database.driver")),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		NATSURL:            v.GetString("nats.url"),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		OpenAIBaseURL:      v.GetString("openai_base_url"),
		PrimaryModel:       v.GetString("ai.model"),
		FallbackModels:     splitModels(v.GetString("ai.fallback_models")),
		QuestionCount:      v.GetInt("question.count"),
		WhisperModelSize:   v.GetString("whisper.model_size"),
		WhisperModelDir:    v.GetString("whisper.model_dir"),
		WhisperBinary:      v.GetString("whisper.binary"),
		TranscribeLanguage: v.GetString("transcribe.language"),
		PDFBinary:          v.GetString("pdf.binary"),
		ReportDir:          v.GetString("report.dir"),
		PollInterval:       pollInterval,
		AICallTimeout:      aiTimeout,
		TranscribeTimeout:  transcribeTimeout,
		GraderWorkers:      v.GetInt("grader.workers"),
		GraderQueueSize:    v.GetInt("grader.queue_size"),
		SnapshotCacheTTL:   cacheTTL,
	}

	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = 5
	}

	if cfg.GraderWorkers <= 0 {
		cfg.GraderWorkers = 4
	}

	if cfg.GraderQueueSize <= 0 {
		cfg.GraderQueueSize = 64
	}

	return cfg, nil
}

func splitModels(raw string) []string {
	parts := strings.Split(raw, ",")
	models := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			models = append(models, trimmed)
		}
	}
	return models
}
