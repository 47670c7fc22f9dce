package ai

import "context"

// Message roles accepted by Complete.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of a chat-completion conversation.
type Message struct {
	Role    string
	Content string
}

// Client describes a chat-completion model endpoint. Implementations may
// raise on transport or model failure; callers decide how to degrade.
type Client interface {
	Complete(ctx context.Context, model string, messages []Message, jsonObject bool) (string, error)
}
