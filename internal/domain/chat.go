package domain

// ChatRole identifies the author of a conversation entry.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single entry of a support conversation.
type ChatMessage struct {
	Role    ChatRole
	Content string
}
