package dto

import "github.com/genesis-commerce/backend/internal/domain"

// ChatMessage is a single conversation history entry.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest payload for the support chat endpoint.
type ChatRequest struct {
	Message             string        `json:"message"`
	OrderID             *int64        `json:"order_id"`
	TicketID            *int64        `json:"ticket_id"`
	UserID              *int64        `json:"user_id"`
	ConversationHistory []ChatMessage `json:"conversation_history"`
}

// ChatResponse carries the bot's reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// HistoryToDomain converts wire-format history entries.
func HistoryToDomain(history []ChatMessage) []domain.ChatMessage {
	if len(history) == 0 {
		return nil
	}
	result := make([]domain.ChatMessage, 0, len(history))
	for _, msg := range history {
		result = append(result, domain.ChatMessage{
			Role:    domain.ChatRole(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}
