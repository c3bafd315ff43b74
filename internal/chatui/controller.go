package chatui

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"chatrelay-backend/internal/models"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultSystemPrompt seeds a fresh conversation.
const DefaultSystemPrompt = "You are a helpful assistant. Answer questions clearly and concisely."

const (
	defaultTemperature     = 0.7
	blankAnswerPlaceholder = "(No content in answer)"
)

// Status levels for the user-visible status line.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Status is the latest user-visible status line.
type Status struct {
	Message string
	Level   string
}

// Controller owns the full client state: the conversation, the system
// prompt, the compose field and the sending flag. All mutation goes
// through its operations, so tests can drive it without any UI attached.
// It is not safe for concurrent use; the client has a single logical
// thread of control.
type Controller struct {
	store  StateStore
	client RelayClient

	conversation []models.ChatMessage
	systemPrompt string
	temperature  float64
	input        string
	sending      bool
	status       Status
}

// NewController builds a controller and restores persisted state.
func NewController(store StateStore, client RelayClient) *Controller {
	c := &Controller{store: store, client: client}
	c.Restore()
	return c
}

// persistedState is the stored blob shape. Temperature is kept as text,
// matching the browser UI's slider value.
type persistedState struct {
	System       string               `json:"system"`
	Temperature  string               `json:"temperature"`
	Conversation []models.ChatMessage `json:"conversation"`
}

// Restore loads the persisted blob. Absence or corruption falls back to
// the default system prompt and an empty conversation; otherwise the
// conversation is filtered to well-formed messages and normalized to
// hold exactly one system message matching the restored prompt.
func (c *Controller) Restore() {
	c.systemPrompt = DefaultSystemPrompt
	c.temperature = defaultTemperature
	c.conversation = nil

	blob, ok := c.store.Load()
	if !ok {
		c.syncSystemMessage()
		c.persist()
		c.status = Status{Message: "Ready to chat.", Level: LevelInfo}
		return
	}

	var saved struct {
		System       any                 `json:"system"`
		Temperature  any                 `json:"temperature"`
		Conversation []models.RawMessage `json:"conversation"`
	}
	if err := json.Unmarshal(blob, &saved); err != nil {
		c.syncSystemMessage()
		c.persist()
		c.status = Status{Message: "Could not load the saved conversation.", Level: LevelWarning}
		return
	}

	if system, isString := saved.System.(string); isString {
		c.systemPrompt = system
	}

	for _, message := range saved.Conversation {
		role, roleOK := message.Role.(string)
		content, contentOK := message.Content.(string)
		if roleOK && contentOK {
			c.conversation = append(c.conversation, models.ChatMessage{Role: role, Content: content})
		}
	}

	c.syncSystemMessage()

	if temp, isNumber := coerceTemperature(saved.Temperature); isNumber {
		c.temperature = clampTemperature(temp)
	}

	c.persist()
	c.status = Status{Message: "Ready to chat.", Level: LevelInfo}
}

func coerceTemperature(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func clampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// SetInput replaces the compose field.
func (c *Controller) SetInput(text string) { c.input = text }

// Input returns the compose field contents.
func (c *Controller) Input() string { return c.input }

// SetSystemPrompt updates the prompt and resyncs the system message.
func (c *Controller) SetSystemPrompt(text string) {
	c.systemPrompt = text
	c.syncSystemMessage()
	c.persist()
	c.status = Status{Message: "System message updated.", Level: LevelInfo}
}

// SystemPrompt returns the current prompt text.
func (c *Controller) SystemPrompt() string { return c.systemPrompt }

// SetTemperature clamps and stores the sampling temperature.
func (c *Controller) SetTemperature(t float64) {
	c.temperature = clampTemperature(t)
	c.persist()
}

// Temperature returns the current sampling temperature.
func (c *Controller) Temperature() float64 { return c.temperature }

// Sending reports whether a send is in flight.
func (c *Controller) Sending() bool { return c.sending }

// Status returns the latest status line.
func (c *Controller) Status() Status { return c.status }

// Conversation returns a copy of the transcript.
func (c *Controller) Conversation() []models.ChatMessage {
	return append([]models.ChatMessage(nil), c.conversation...)
}

// syncSystemMessage enforces the invariant: at most one system message,
// always at index 0, holding the trimmed prompt.
func (c *Controller) syncSystemMessage() {
	rest := make([]models.ChatMessage, 0, len(c.conversation))
	for _, message := range c.conversation {
		if message.Role != RoleSystem {
			rest = append(rest, message)
		}
	}

	prompt := strings.TrimSpace(c.systemPrompt)
	if prompt == "" {
		c.conversation = rest
		return
	}
	c.conversation = append([]models.ChatMessage{{Role: RoleSystem, Content: prompt}}, rest...)
}

// Send submits the compose field as a user turn. A blank input or an
// in-flight send leaves everything untouched. On failure the optimistic
// user append is rolled back and the input restored for retry; the
// controller returns to idle either way.
func (c *Controller) Send(ctx context.Context) {
	if c.sending {
		return
	}

	text := strings.TrimSpace(c.input)
	if text == "" {
		c.status = Status{Message: "Type a message first.", Level: LevelWarning}
		return
	}

	c.syncSystemMessage()
	c.conversation = append(c.conversation, models.ChatMessage{Role: RoleUser, Content: text})
	c.input = ""
	c.persist()

	c.sending = true
	defer func() { c.sending = false }()

	resp, err := c.client.Chat(ctx, c.Conversation(), c.temperature)
	if err != nil {
		c.conversation = c.conversation[:len(c.conversation)-1]
		c.input = text
		c.persist()
		c.status = Status{Message: err.Error(), Level: LevelError}
		return
	}

	answer := strings.TrimSpace(resp.Message)
	if answer == "" {
		answer = blankAnswerPlaceholder
	}
	c.conversation = append(c.conversation, models.ChatMessage{Role: RoleAssistant, Content: answer})
	c.persist()
	c.status = usageStatus(resp.Usage)
}

func usageStatus(usage *models.Usage) Status {
	if usage == nil {
		return Status{Message: "Answer received.", Level: LevelInfo}
	}
	return Status{
		Message: fmt.Sprintf("Answer received (prompt: %d, answer: %d, total: %d).",
			usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens),
		Level: LevelInfo,
	}
}

// Clear resets a non-empty conversation to the system message alone, or
// to nothing when the prompt is blank.
func (c *Controller) Clear() {
	if len(c.conversation) == 0 {
		return
	}

	prompt := strings.TrimSpace(c.systemPrompt)
	if prompt == "" {
		c.conversation = nil
	} else {
		c.conversation = []models.ChatMessage{{Role: RoleSystem, Content: prompt}}
	}
	c.persist()
	c.status = Status{Message: "Conversation cleared.", Level: LevelInfo}
}

// ComposeAdvisorPrompt builds the gas-free-home advisor prompt and
// places it in the compose field without sending it.
func (c *Controller) ComposeAdvisorPrompt(in PromptInputs) {
	c.input = BuildGasFreePrompt(in)
	c.status = Status{Message: "Advisor prompt generated. Adjust as needed and send.", Level: LevelInfo}
}

// persist writes the full state blob after every mutation.
func (c *Controller) persist() {
	conversation := c.conversation
	if conversation == nil {
		conversation = []models.ChatMessage{}
	}
	blob, err := json.Marshal(persistedState{
		System:       c.systemPrompt,
		Temperature:  strconv.FormatFloat(c.temperature, 'f', -1, 64),
		Conversation: conversation,
	})
	if err != nil {
		return
	}
	if err := c.store.Save(blob); err != nil {
		c.status = Status{Message: "Could not save the conversation.", Level: LevelWarning}
	}
}
