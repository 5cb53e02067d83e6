package bot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/genesis-commerce/backend/internal/config"
	"github.com/genesis-commerce/backend/internal/domain"
	"github.com/genesis-commerce/backend/internal/llm"
)

// SupportBot answers customer questions by concatenating policy
// documents and database context into a prompt for the generative API.
type SupportBot struct {
	documents string
	resolver  *ContextResolver
	prompts   *PromptBuilder
	generator llm.Generator
	logger    *zap.Logger
}

// ChatInput carries a single chat turn with optional entity context.
type ChatInput struct {
	Message  string
	OrderID  *int64
	TicketID *int64
	UserID   *int64
	History  []domain.ChatMessage
}

// NewSupportBot loads documents and wires the bot dependencies.
func NewSupportBot(cfg config.BotConfig, resolver *ContextResolver, generator llm.Generator, logger *zap.Logger) *SupportBot {
	return &SupportBot{
		documents: LoadDocuments(cfg.DocumentsDir, logger),
		resolver:  resolver,
		prompts:   &PromptBuilder{MaxHistoryMessages: cfg.MaxHistoryMessages},
		generator: generator,
		logger:    logger,
	}
}

// Chat resolves context, assembles the prompt, and returns the model
// response verbatim. Upstream failures are returned to the caller.
func (b *SupportBot) Chat(ctx context.Context, input ChatInput) (string, error) {
	contextBlock := b.documents
	if resolved := b.resolver.Resolve(ctx, ContextRef{
		OrderID:  input.OrderID,
		TicketID: input.TicketID,
		UserID:   input.UserID,
	}); resolved != "" {
		contextBlock += "\n\n" + resolved
	}

	prompt := b.prompts.Build(contextBlock, input.History, input.Message)

	b.logger.Info("generating support response", zap.String("message_preview", preview(input.Message, 50)))
	response, err := b.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate support response: %w", err)
	}

	b.logger.Info("generated support response")
	return response, nil
}

func preview(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars]) + "..."
}
