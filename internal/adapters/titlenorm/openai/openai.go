// Package openai normalizes titles with the OpenAI chat completions API
package openai

import (
	"context"
	"math"

	"grocer/internal/adapters/titlenorm"
	perr "grocer/internal/platform/errors"
	"grocer/internal/services/groceryimport/domain"

	oai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when Options.Model is empty
const DefaultModel = "gpt-4o-mini"

// Options configures the client
type Options struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for proxies and compatible servers
}

// Normalizer implements domain.Normalizer
type Normalizer struct {
	client *oai.Client
	model  string
}

// New builds a Normalizer; an empty key is an invalid argument
func New(opt Options) (*Normalizer, error) {
	if opt.APIKey == "" {
		return nil, perr.InvalidArgf("openai normalizer needs an API key")
	}
	cfg := oai.DefaultConfig(opt.APIKey)
	if opt.BaseURL != "" {
		cfg.BaseURL = opt.BaseURL
	}
	model := opt.Model
	if model == "" {
		model = DefaultModel
	}
	return &Normalizer{client: oai.NewClientWithConfig(cfg), model: model}, nil
}

// Normalize asks the model for a canonical identity of rawTitle
func (n *Normalizer) Normalize(ctx context.Context, rawTitle string) (domain.NormalizedTitle, error) {
	resp, err := n.client.CreateChatCompletion(ctx, oai.ChatCompletionRequest{
		Model: n.model,
		// zero is dropped by omitempty; the smallest float asks for deterministic output
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []oai.ChatCompletionMessage{
			{Role: oai.ChatMessageRoleSystem, Content: titlenorm.SystemPrompt},
			{Role: oai.ChatMessageRoleUser, Content: titlenorm.UserPrompt(rawTitle)},
		},
		ResponseFormat: &oai.ChatCompletionResponseFormat{Type: oai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return domain.NormalizedTitle{}, perr.Wrap(err, perr.ErrorCodeNormalization, "openai chat completion")
	}
	if len(resp.Choices) == 0 {
		return domain.NormalizedTitle{}, perr.Normalizationf("openai returned no choices")
	}
	return titlenorm.Parse(resp.Choices[0].Message.Content)
}
