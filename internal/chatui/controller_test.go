package chatui

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatrelay-backend/internal/models"
)

type fakeRelay struct {
	resp         *models.ChatResponse
	err          error
	calls        int
	lastMessages []models.ChatMessage
	lastTemp     float64
	hook         func()
}

func (f *fakeRelay) Chat(ctx context.Context, messages []models.ChatMessage, temperature float64) (*models.ChatResponse, error) {
	f.calls++
	f.lastMessages = messages
	f.lastTemp = temperature
	if f.hook != nil {
		f.hook()
	}
	return f.resp, f.err
}

func seedStore(t *testing.T, state any) *MemStore {
	t.Helper()
	blob, err := json.Marshal(state)
	require.NoError(t, err)
	store := &MemStore{}
	require.NoError(t, store.Save(blob))
	return store
}

func systemCount(conversation []models.ChatMessage) int {
	n := 0
	for _, m := range conversation {
		if m.Role == RoleSystem {
			n++
		}
	}
	return n
}

func TestRestoreWithoutBlob(t *testing.T) {
	c := NewController(&MemStore{}, &fakeRelay{})

	conv := c.Conversation()
	require.Len(t, conv, 1)
	assert.Equal(t, RoleSystem, conv[0].Role)
	assert.Equal(t, DefaultSystemPrompt, conv[0].Content)
	assert.Equal(t, 0.7, c.Temperature())
}

func TestRestoreCorruptBlob(t *testing.T) {
	store := &MemStore{}
	require.NoError(t, store.Save([]byte("{not json")))

	c := NewController(store, &fakeRelay{})

	conv := c.Conversation()
	require.Len(t, conv, 1)
	assert.Equal(t, DefaultSystemPrompt, conv[0].Content)
	assert.Equal(t, LevelWarning, c.Status().Level)
}

func TestRestoreFiltersMalformedMessages(t *testing.T) {
	store := seedStore(t, map[string]any{
		"system":      "Be terse.",
		"temperature": "0.3",
		"conversation": []any{
			map[string]any{"role": "user", "content": "hi"},
			map[string]any{"role": 5, "content": "bad"},
			map[string]any{"role": "assistant"},
			map[string]any{"role": "assistant", "content": "hello"},
		},
	})

	c := NewController(store, &fakeRelay{})

	conv := c.Conversation()
	require.Len(t, conv, 3) // system + the two well-formed messages
	assert.Equal(t, RoleSystem, conv[0].Role)
	assert.Equal(t, "Be terse.", conv[0].Content)
	assert.Equal(t, "hi", conv[1].Content)
	assert.Equal(t, "hello", conv[2].Content)
	assert.Equal(t, 0.3, c.Temperature())
}

func TestRestoreTemperatureClamped(t *testing.T) {
	tests := []struct {
		name     string
		stored   any
		expected float64
	}{
		{"string above range", "1.7", 1.0},
		{"number below range", -3.0, 0.0},
		{"in range", 0.5, 0.5},
		{"non-numeric", "warm", 0.7},
		{"absent", nil, 0.7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := seedStore(t, map[string]any{
				"system":       "x",
				"temperature":  tc.stored,
				"conversation": []any{},
			})

			c := NewController(store, &fakeRelay{})
			assert.Equal(t, tc.expected, c.Temperature())
		})
	}
}

func TestRestoreThenPersistIsIdempotent(t *testing.T) {
	store := seedStore(t, map[string]any{
		"system":      "Be terse.",
		"temperature": "0.4",
		"conversation": []any{
			map[string]any{"role": "system", "content": "Be terse."},
			map[string]any{"role": "user", "content": "hi"},
		},
	})

	c := NewController(store, &fakeRelay{})
	first, ok := store.Load()
	require.True(t, ok)

	// Restoring from our own output must not change it again.
	c.Restore()
	second, _ := store.Load()
	assert.JSONEq(t, string(first), string(second))
}

func TestSyncSystemMessageInvariant(t *testing.T) {
	c := NewController(&MemStore{}, &fakeRelay{})

	c.SetSystemPrompt("Act formal.")
	conv := c.Conversation()
	assert.Equal(t, 1, systemCount(conv))
	assert.Equal(t, RoleSystem, conv[0].Role)
	assert.Equal(t, "Act formal.", conv[0].Content)

	c.SetSystemPrompt("  Act casual.  ")
	conv = c.Conversation()
	assert.Equal(t, 1, systemCount(conv))
	assert.Equal(t, "Act casual.", conv[0].Content)

	c.SetSystemPrompt("   ")
	assert.Zero(t, systemCount(c.Conversation()))

	c.SetSystemPrompt("Back again.")
	conv = c.Conversation()
	assert.Equal(t, 1, systemCount(conv))
	assert.Equal(t, RoleSystem, conv[0].Role)
}

func TestSystemMessageMovedToFront(t *testing.T) {
	// A hand-edited blob can hold the system message out of position;
	// sync must normalize it back to index 0.
	store := seedStore(t, map[string]any{
		"system":      "Be terse.",
		"temperature": "0.7",
		"conversation": []any{
			map[string]any{"role": "user", "content": "hi"},
			map[string]any{"role": "system", "content": "old"},
		},
	})

	c := NewController(store, &fakeRelay{})

	conv := c.Conversation()
	require.Len(t, conv, 2)
	assert.Equal(t, RoleSystem, conv[0].Role)
	assert.Equal(t, "Be terse.", conv[0].Content)
	assert.Equal(t, RoleUser, conv[1].Role)
}

func TestSendBlankInput(t *testing.T) {
	relay := &fakeRelay{}
	c := NewController(&MemStore{}, relay)
	before := c.Conversation()

	c.SetInput("   \n  ")
	c.Send(context.Background())

	assert.Equal(t, before, c.Conversation())
	assert.Zero(t, relay.calls, "blank input must not hit the network")
	assert.Equal(t, LevelWarning, c.Status().Level)
}

func TestSendSuccess(t *testing.T) {
	relay := &fakeRelay{resp: &models.ChatResponse{
		Message: "  hello there  ",
		Usage:   &models.Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5},
	}}
	c := NewController(&MemStore{}, relay)

	c.SetInput("hi")
	c.Send(context.Background())

	conv := c.Conversation()
	require.Len(t, conv, 3)
	assert.Equal(t, RoleUser, conv[1].Role)
	assert.Equal(t, "hi", conv[1].Content)
	assert.Equal(t, RoleAssistant, conv[2].Role)
	assert.Equal(t, "hello there", conv[2].Content)

	assert.Empty(t, c.Input())
	assert.False(t, c.Sending())
	assert.Contains(t, c.Status().Message, "total: 5")

	// The wire carries the full conversation including the user turn.
	require.Len(t, relay.lastMessages, 2)
	assert.Equal(t, RoleSystem, relay.lastMessages[0].Role)
	assert.Equal(t, 0.7, relay.lastTemp)
}

func TestSendBlankAnswerPlaceholder(t *testing.T) {
	relay := &fakeRelay{resp: &models.ChatResponse{Message: "   "}}
	c := NewController(&MemStore{}, relay)

	c.SetInput("hi")
	c.Send(context.Background())

	conv := c.Conversation()
	assert.Equal(t, blankAnswerPlaceholder, conv[len(conv)-1].Content)
	assert.Equal(t, "Answer received.", c.Status().Message)
}

func TestSendFailureRollsBack(t *testing.T) {
	relay := &fakeRelay{err: assert.AnError}
	c := NewController(&MemStore{}, relay)
	before := len(c.Conversation())

	c.SetInput("hello?")
	c.Send(context.Background())

	assert.Len(t, c.Conversation(), before, "optimistic append must be rolled back")
	assert.Equal(t, "hello?", c.Input(), "input restored for retry")
	assert.Equal(t, LevelError, c.Status().Level)
	assert.False(t, c.Sending(), "controller returns to idle on failure")
}

func TestSendReentrancyGuard(t *testing.T) {
	relay := &fakeRelay{resp: &models.ChatResponse{Message: "ok"}}
	c := NewController(&MemStore{}, relay)

	relay.hook = func() {
		// A second submission while the first is in flight is ignored.
		assert.True(t, c.Sending())
		c.SetInput("again")
		c.Send(context.Background())
	}

	c.SetInput("first")
	c.Send(context.Background())

	assert.Equal(t, 1, relay.calls)
}

func TestClear(t *testing.T) {
	relay := &fakeRelay{resp: &models.ChatResponse{Message: "ok"}}
	c := NewController(&MemStore{}, relay)
	c.SetInput("hi")
	c.Send(context.Background())
	require.Len(t, c.Conversation(), 3)

	c.Clear()

	conv := c.Conversation()
	require.Len(t, conv, 1)
	assert.Equal(t, RoleSystem, conv[0].Role)

	c.SetSystemPrompt("")
	c.SetInput("hi")
	c.Send(context.Background())
	c.Clear()
	assert.Empty(t, c.Conversation())
}

func TestPersistedBlobShape(t *testing.T) {
	store := &MemStore{}
	c := NewController(store, &fakeRelay{resp: &models.ChatResponse{Message: "ok"}})

	c.SetInput("hi")
	c.Send(context.Background())

	blob, ok := store.Load()
	require.True(t, ok)

	var state persistedState
	require.NoError(t, json.Unmarshal(blob, &state))
	assert.Equal(t, DefaultSystemPrompt, state.System)
	assert.Equal(t, "0.7", state.Temperature)
	require.Len(t, state.Conversation, 3)
}
