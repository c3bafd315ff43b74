package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/observability/metrics"
	"chatrelay-backend/internal/services"
	"chatrelay-backend/pkg/logging"
)

// maxBodyBytes caps an inbound chat request body.
const maxBodyBytes = 1_000_000

// defaultTemperature is used when the client value is not a number.
const defaultTemperature = 0.7

// completionProvider lets tests stand in for the upstream service.
type completionProvider interface {
	Complete(ctx context.Context, req services.CompletionRequest) (*models.ChatResponse, error)
}

type ChatHandler struct {
	completions completionProvider
	metrics     *metrics.RelayMetrics
	logger      *logging.Logger
}

func NewChatHandler(completions completionProvider, m *metrics.RelayMetrics, logger *logging.Logger) *ChatHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatHandler{completions: completions, metrics: m, logger: logger}
}

// Relay validates and sanitizes one chat turn, forwards it upstream and
// relays the answer. The server keeps no conversation state.
func (h *ChatHandler) Relay(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	raw, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			// MaxBytesReader already flagged the connection for close.
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Unable to read request body.")
		return
	}

	if len(raw) == 0 {
		raw = []byte("{}")
	}
	var req models.ChatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, `The "messages" array is required.`)
		return
	}

	sanitized, ok := sanitizeMessages(req.Messages)
	if !ok {
		writeError(w, http.StatusBadRequest, "Each message must include a role and content string.")
		return
	}

	completion := services.CompletionRequest{
		Messages:    sanitized,
		Temperature: defaultTemperature,
	}
	if t, isNumber := req.Temperature.(float64); isNumber {
		completion.Temperature = t
	}
	if mt, isNumber := req.MaxTokens.(float64); isNumber {
		completion.MaxTokens = int(mt)
	}

	start := time.Now()
	resp, err := h.completions.Complete(r.Context(), completion)
	if err != nil {
		h.metrics.ObserveUpstream("error", time.Since(start).Seconds())
		h.logger.Warn("chat relay failed", "error", err)
		handleRelayError(w, err)
		return
	}
	h.metrics.ObserveUpstream("success", time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, resp)
}

// sanitizeMessages keeps only string role/content pairs; any other field
// or shape is either dropped or rejects the request.
func sanitizeMessages(raw []models.RawMessage) ([]models.ChatMessage, bool) {
	sanitized := make([]models.ChatMessage, 0, len(raw))
	for _, message := range raw {
		role, roleOK := message.Role.(string)
		content, contentOK := message.Content.(string)
		if !roleOK || !contentOK {
			return nil, false
		}
		sanitized = append(sanitized, models.ChatMessage{Role: role, Content: content})
	}
	return sanitized, true
}
