package ports

import "context"

// Role tags one block of a completion conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged text block.
type Message struct {
	Role    Role
	Content string
}

// Completer sends one ordered conversation to the completion service and
// returns the response text. Implementations surface transport failures and
// unusable output as errors; they never retry on their own.
type Completer interface {
	Complete(ctx context.Context, msgs []Message) (string, error)
}
