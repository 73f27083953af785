// Package llm answers utterances the knowledge base cannot, using an
// OpenAI-compatible chat completion endpoint.
package llm

import (
	"context"
	"errors"
	"strings"

	configpkg "github.com/minhyannv/kbchat/pkg/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = "You are a friendly, concise chatbot. Answer in one or two short sentences."

// Client implements responder.FallbackReplier over a chat completion API.
type Client struct {
	client openai.Client
	model  string
}

// New builds a Client from cfg. It requires an API key and a model.
func New(cfg configpkg.Config, opts ...option.RequestOption) (*Client, error) {
	cfg = configpkg.Normalize(cfg)
	if cfg.APIKey == "" {
		return nil, errors.New("APIKey is not set")
	}
	if cfg.Model == "" {
		return nil, errors.New("Model is not set")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &Client{
		client: openai.NewClient(reqOpts...),
		model:  cfg.Model,
	}, nil
}

// Reply sends utterance as a single-turn conversation and returns the
// first choice's content.
func (c *Client) Reply(ctx context.Context, utterance string) (string, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return "", errors.New("utterance is required")
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(utterance),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion choices")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
