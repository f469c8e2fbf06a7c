package generation

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI generates text with an OpenAI-compatible chat completion API.
type OpenAI struct {
	client *openai.Client // nil when no API key is configured
	model  string
}

// NewOpenAI builds an OpenAI generator.
func NewOpenAI(cfg Config) *OpenAI {
	o := &OpenAI{model: cfg.Model}
	if o.model == "" {
		o.model = DefaultOpenAIModel
	}
	if cfg.APIKey == "" {
		return o
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	o.client = openai.NewClientWithConfig(oc)
	return o
}

// Generate implements Generator.
func (o *OpenAI) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	const op = "generation.OpenAI.Generate"
	if o.client == nil {
		return "", fmt.Errorf("%s: %w: OpenAI API key is not set", op, domain.ErrConfiguration)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classify(op, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", emptyResponse(op)
	}
	return resp.Choices[0].Message.Content, nil
}

// Configured implements Generator.
func (o *OpenAI) Configured() bool { return o.client != nil }

// Name implements Generator.
func (o *OpenAI) Name() string { return ProviderOpenAI }
