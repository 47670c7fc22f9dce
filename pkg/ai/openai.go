package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

var (
	chatDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "voxhire",
		Subsystem: "ai",
		Name:      "completion_duration_seconds",
		Help:      "Duration of chat completion requests",
	}, []string{"model"})

	chatFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxhire",
		Subsystem: "ai",
		Name:      "completion_failures_total",
		Help:      "Number of chat completion failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI-compatible client.
// BaseURL allows pointing the client at any compatible provider.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIClient implements Client against an OpenAI-compatible chat API.
type OpenAIClient struct {
	client *openai.Client
	cfg    OpenAIConfig
	logger zerolog.Logger
}

// NewOpenAIClient builds a new client using the provided configuration.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(config)

	return &OpenAIClient{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Complete sends the conversation to the given model and returns the raw
// message content of the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, model string, messages []Message, jsonObject bool) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, message := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    message.Role,
			Content: message.Content,
		})
	}
	if jsonObject {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	chatDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	if err != nil {
		chatFailures.WithLabelValues(model).Inc()
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		chatFailures.WithLabelValues(model).Inc()
		return "", fmt.Errorf("no choices returned from model %s", model)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
