package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	model      anthropic.Model
	maxTokens  int64
	credential func() (string, error)
	client     anthropic.Client
}

const (
	defaultAnthropicModel = "claude-3-haiku-20240307"
	defaultAnswerTimeout  = 60 * time.Second
	defaultMaxTokens      = 1000
)

// NewAnthropicClient builds a client against api.anthropic.com. The
// credential func is invoked on every call rather than captured once, so a
// rotated key takes effect without a restart.
func NewAnthropicClient(credential func() (string, error), model string, maxTokens int) (*AnthropicClient, error) {
	if credential == nil {
		return nil, fmt.Errorf("credential resolver required")
	}
	if model == "" {
		model = defaultAnthropicModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &AnthropicClient{
		model:      anthropic.Model(model),
		maxTokens:  int64(maxTokens),
		credential: credential,
		client:     anthropic.NewClient(),
	}, nil
}

func (c *AnthropicClient) Answer(ctx context.Context, documentText, question string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("nil anthropic client")
	}
	key, err := c.credential()
	if err != nil {
		return "", fmt.Errorf("resolve credential: %w", err)
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultAnswerTimeout)
	defer cancel()

	msg, err := c.client.Messages.New(reqCtx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(documentText, question))),
		},
	}, option.WithAPIKey(key))
	if err != nil {
		return "", err
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("anthropic: empty response content")
	}
	return msg.Content[0].Text, nil
}

func (c *AnthropicClient) Service() string { return "Claude" }
