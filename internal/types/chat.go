// Package types provides type definitions for structured data used throughout the recruiting pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Message roles in an evaluation conversation.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message is one entry in a role's evaluation conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CloneMessages returns a copy of a message sequence.
func CloneMessages(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	return append([]Message(nil), msgs...)
}
