package bot

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/genesis-commerce/backend/internal/domain"
)

const systemPromptTemplate = `You are a helpful customer support assistant for Genesis E-commerce.

Your responsibilities:
1. Answer questions about orders, shipping, returns, and refunds
2. Provide information from our Terms and Conditions and Support Guide
3. Help customers understand our policies and procedures
4. Be polite, professional, and concise
5. If you cannot find specific information in the provided context, be honest about it

Context Information:
%s

Important Guidelines:
- Always be courteous and empathetic
- Provide accurate information based on the context
- If discussing specific orders or tickets, use the provided database information
- Cite relevant policy sections when applicable
- Keep responses concise but complete
- If you don't know something, suggest contacting human support
`

// PromptBuilder deterministically assembles the final prompt text from
// the fixed instruction, context block, truncated history, and message.
type PromptBuilder struct {
	MaxHistoryMessages int
}

// Build concatenates all prompt sections. Only the most recent
// MaxHistoryMessages history entries are kept, in their original order.
func (b *PromptBuilder) Build(contextBlock string, history []domain.ChatMessage, message string) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, systemPromptTemplate, contextBlock)

	history = truncateHistory(history, b.MaxHistoryMessages)
	if len(history) > 0 {
		prompt.WriteString("\n\nConversation History:\n")
		for _, msg := range history {
			prompt.WriteString(capitalize(string(msg.Role)))
			prompt.WriteString(": ")
			prompt.WriteString(msg.Content)
			prompt.WriteString("\n")
		}
	}

	fmt.Fprintf(&prompt, "\n\nUser: %s\n\nAssistant:", message)
	return prompt.String()
}

func truncateHistory(history []domain.ChatMessage, max int) []domain.ChatMessage {
	if max <= 0 || len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
