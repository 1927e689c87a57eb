package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/clintrovert/nudgebot/pkg/types"
)

// completionClient is the slice of the OpenAI client the generator
// needs. Satisfied by *openai.Client, faked in tests.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator turns classified tasks into chat messages via OpenAI,
// falling back to deterministic templates when the model is
// unreachable. Generate never returns an error; callers inspect the
// message's Source instead.
type Generator struct {
	client   completionClient
	mentions *MentionResolver
	logger   *zap.Logger
	model    string
}

// New creates a new Generator.
func New(apiKey, model string, mappings types.UserMappings, logger *zap.Logger) *Generator {
	if model == "" {
		model = openai.GPT4
	}
	return &Generator{
		client:   openai.NewClient(apiKey),
		mentions: NewMentionResolver(mappings),
		logger:   logger,
		model:    model,
	}
}

// Generate produces the chat message for one classified task.
func (g *Generator) Generate(ctx context.Context, task *types.Task) types.GeneratedMessage {
	mention := g.mentions.ResolveAll(task.Assignees)
	prompt := buildPrompt(task, mention)

	oneLiner, err := g.complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("model call failed, using fallback text",
			zap.String("task_id", task.ID),
			zap.String("bucket", string(task.Bucket)),
			zap.Error(err),
		)
		return types.GeneratedMessage{
			TaskID: task.ID,
			Bucket: task.Bucket,
			Text:   compose(fallbackText(task, mention), task),
			Source: types.SourceFallback,
		}
	}

	return types.GeneratedMessage{
		TaskID: task.ID,
		Bucket: task.Bucket,
		Text:   compose(oneLiner, task),
		Source: types.SourceModel,
	}
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   80,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from model")
	}

	oneLiner := strings.TrimSpace(resp.Choices[0].Message.Content)
	if oneLiner == "" {
		return "", errors.New("empty response from model")
	}
	return oneLiner, nil
}

// compose puts the one-liner first, then the task reference on its own
// line so the reminder always names the task.
func compose(oneLiner string, task *types.Task) string {
	return oneLiner + "\n" + task.ID + ": " + task.Title
}
