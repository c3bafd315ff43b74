package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/pkg/logging"
)

const fallbackUpstreamError = "Failed to retrieve a response from OpenAI."

// CompletionRequest is a sanitized, ready-to-forward chat turn.
type CompletionRequest struct {
	Messages    []models.ChatMessage
	Temperature float64
	MaxTokens   int // 0 leaves the upstream limit unset
}

// CompletionService forwards chat turns to the OpenAI completion API.
// It holds no conversation state; every call is self-contained.
type CompletionService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *logging.Logger
}

// NewCompletionService builds the upstream client. An empty apiKey is
// allowed: the service then fails each Complete call with a ConfigError
// instead of preventing startup.
func NewCompletionService(apiKey, model, baseURL string, timeout time.Duration, logger *logging.Logger) *CompletionService {
	if logger == nil {
		logger = logging.Default()
	}

	var client *openai.Client
	if apiKey != "" {
		clientConfig := openai.DefaultConfig(apiKey)
		if baseURL != "" {
			clientConfig.BaseURL = baseURL
		}
		client = openai.NewClientWithConfig(clientConfig)
	}

	return &CompletionService{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Complete performs a single completion call bounded by the configured
// timeout. Cancellation tears down the outbound connection.
func (s *CompletionService) Complete(ctx context.Context, req CompletionRequest) (*models.ChatResponse, error) {
	if s.client == nil {
		return nil, &ConfigError{Message: "OPENAI_API_KEY is not configured on the server."}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	history := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, message := range req.Messages {
		history = append(history, openai.ChatCompletionMessage{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    history,
		Temperature: requestTemperature(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, s.mapUpstreamError(err)
	}

	var answer string
	if len(resp.Choices) > 0 {
		answer = resp.Choices[0].Message.Content
	}

	var usage *models.Usage
	if resp.Usage.PromptTokens != 0 || resp.Usage.CompletionTokens != 0 || resp.Usage.TotalTokens != 0 {
		usage = &models.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return &models.ChatResponse{Message: answer, Usage: usage}, nil
}

// requestTemperature works around go-openai omitting a zero temperature
// from the wire: an explicit 0 is sent as the smallest positive float.
func requestTemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

func (s *CompletionService) mapUpstreamError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("openai request timed out")
		return &TimeoutError{Message: "The OpenAI request timed out."}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = fallbackUpstreamError
		}
		s.logger.Error("openai api error", "status", apiErr.HTTPStatusCode, "message", apiErr.Message)
		return &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Message: message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		s.logger.Error("openai request error", "status", reqErr.HTTPStatusCode, "error", reqErr.Err)
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Message: fallbackUpstreamError}
	}

	s.logger.Error("error contacting openai", "error", err)
	return &BadGatewayError{Message: "Unable to complete the request to OpenAI."}
}
