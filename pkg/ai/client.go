package ai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/GhaniKale/skincare-marketplace/pkg/config"
)

var ErrDisabled = errors.New("AI service is not enabled")

// Client wraps an Azure OpenAI chat deployment. A Client built without
// credentials is valid and reports Enabled() == false.
type Client struct {
	api        *openai.Client
	deployment string
}

// NewClient builds a Client for the given endpoint. Extra options are
// appended after the endpoint and key.
func NewClient(endpoint, apiKey, deployment string, opts ...option.RequestOption) *Client {
	if endpoint == "" || apiKey == "" {
		return &Client{}
	}
	if deployment == "" {
		deployment = "gpt-35-turbo"
	}

	opts = append([]option.RequestOption{
		option.WithBaseURL(endpoint),
		option.WithAPIKey(apiKey),
	}, opts...)
	api := openai.NewClient(opts...)
	return &Client{api: &api, deployment: deployment}
}

// FromConfig builds a Client from cfg and logs whether it is enabled.
func FromConfig(cfg config.Config, log *slog.Logger) *Client {
	c := NewClient(cfg.AzureOpenAIEndpoint, cfg.AzureOpenAIKey, cfg.AzureOpenAIDeployment)
	if c.Enabled() {
		log.Info("AI service initialized with Azure OpenAI", slog.String("deployment", c.deployment))
	} else {
		log.Info("AI service disabled - AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY not set")
	}
	return c
}

func (c *Client) Enabled() bool {
	return c != nil && c.api != nil
}

func (c *Client) generateCompletion(ctx context.Context, systemMessage, userMessage string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemMessage),
			openai.UserMessage(userMessage),
		},
		MaxTokens:   openai.Int(1500),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", &AIError{Message: "failed to generate AI response", Cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{Message: "AI returned empty response"}
	}
	return resp.Choices[0].Message.Content, nil
}

type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AIError) Unwrap() error {
	return e.Cause
}
