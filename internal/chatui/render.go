package chatui

import (
	"regexp"
	"strings"

	"chatrelay-backend/internal/models"
)

// EmptyTranscriptNotice is shown in place of an empty conversation.
const EmptyTranscriptNotice = "No messages yet. Ask a question to get started."

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// RenderedMessage is a display-ready message: a role label plus
// paragraphs, each a list of explicit lines. No markdown interpretation.
type RenderedMessage struct {
	Role       string
	Label      string
	Paragraphs [][]string
}

// RoleLabel maps a wire role to its display label.
func RoleLabel(role string) string {
	switch role {
	case RoleSystem:
		return "System"
	case RoleAssistant:
		return "Assistant"
	case RoleUser:
		return "You"
	default:
		return role
	}
}

// RenderMessage splits content into paragraphs on blank lines and into
// lines within a paragraph on single newlines.
func RenderMessage(message models.ChatMessage) RenderedMessage {
	blocks := paragraphBreak.Split(message.Content, -1)
	paragraphs := make([][]string, 0, len(blocks))
	for _, block := range blocks {
		paragraphs = append(paragraphs, strings.Split(block, "\n"))
	}

	return RenderedMessage{
		Role:       message.Role,
		Label:      RoleLabel(message.Role),
		Paragraphs: paragraphs,
	}
}

// Transcript renders the whole conversation as a full replacement view.
func (c *Controller) Transcript() []RenderedMessage {
	rendered := make([]RenderedMessage, 0, len(c.conversation))
	for _, message := range c.conversation {
		rendered = append(rendered, RenderMessage(message))
	}
	return rendered
}
