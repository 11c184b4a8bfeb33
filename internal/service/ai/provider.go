package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/careerlift/resume-coach/backend/internal/config"
)

// ErrEmptyCompletion is returned when the upstream answers with no text.
var ErrEmptyCompletion = errors.New("upstream returned empty completion")

// Provider is the text-generation capability the orchestrator consumes.
// Implementations may fail transiently; retry policy lives elsewhere.
type Provider interface {
	Generate(ctx context.Context, messages []*schema.Message) (string, error)
}

// Service implements Provider on top of an eino chat chain.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the chat chain for the configured Ark model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return newServiceWithModel(ctx, chatModel)
}

// NewServiceWithModel wraps an existing chat model, letting callers
// share one model instance across services.
func NewServiceWithModel(ctx context.Context, chatModel model.ChatModel) (*Service, error) {
	return newServiceWithModel(ctx, chatModel)
}

func newServiceWithModel(ctx context.Context, chatModel model.ChatModel) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("messages", false),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

// Generate runs the assembled transcript through the chain and returns
// the model's text.
func (s *Service) Generate(ctx context.Context, messages []*schema.Message) (string, error) {
	response, err := s.chain.Invoke(ctx, map[string]any{"messages": messages})
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", ErrEmptyCompletion
	}

	log.Printf("[ai] generated completion, prompt_messages=%d, length=%d", len(messages), len(response.Content))
	return response.Content, nil
}
