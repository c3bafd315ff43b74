package models

// ChatMessage is a single conversation turn. Only role and content
// ever travel upstream; any other field a client sends is dropped.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// RawMessage is a not-yet-validated message as received from a client.
// Role and content stay untyped so validation can name the broken field
// instead of failing the whole body decode.
type RawMessage struct {
	Role    any `json:"role"`
	Content any `json:"content"`
}

// ChatRequest is the payload of POST /api/chat. Temperature and MaxTokens
// are untyped on purpose: a non-number temperature falls back to the
// server default rather than rejecting the request, and max_tokens is
// forwarded only when it actually is a number.
type ChatRequest struct {
	Messages    []RawMessage `json:"messages"`
	Temperature any          `json:"temperature"`
	MaxTokens   any          `json:"max_tokens"`
}

// ChatResponse is the relay's answer: the assistant text plus the
// upstream usage block, null when the upstream omitted it.
type ChatResponse struct {
	Message string `json:"message"`
	Usage   *Usage `json:"usage"`
}

// Usage mirrors the upstream token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrorResponse is the wire shape of every JSON error the relay emits.
type ErrorResponse struct {
	Error string `json:"error"`
}
