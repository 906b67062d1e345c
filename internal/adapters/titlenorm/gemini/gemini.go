// Package gemini normalizes titles with Google's Gemini API
package gemini

import (
	"context"

	"grocer/internal/adapters/titlenorm"
	perr "grocer/internal/platform/errors"
	"grocer/internal/services/groceryimport/domain"

	"google.golang.org/genai"
)

// DefaultModel is used when Options.Model is empty
const DefaultModel = "gemini-2.5-flash"

// Options configures the client
type Options struct {
	APIKey  string
	Model   string
	BaseURL string // optional, used by tests
}

// Normalizer implements domain.Normalizer
type Normalizer struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// New builds a Normalizer; an empty key is an invalid argument
func New(ctx context.Context, opt Options) (*Normalizer, error) {
	if opt.APIKey == "" {
		return nil, perr.InvalidArgf("gemini normalizer needs an API key")
	}
	cc := &genai.ClientConfig{APIKey: opt.APIKey, Backend: genai.BackendGeminiAPI}
	if opt.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opt.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "create gemini client")
	}
	model := opt.Model
	if model == "" {
		model = DefaultModel
	}
	return &Normalizer{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(titlenorm.SystemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0),
			ResponseMIMEType:  "application/json",
		},
	}, nil
}

// Normalize asks the model for a canonical identity of rawTitle
func (n *Normalizer) Normalize(ctx context.Context, rawTitle string) (domain.NormalizedTitle, error) {
	resp, err := n.client.Models.GenerateContent(ctx, n.model,
		[]*genai.Content{genai.NewContentFromText(titlenorm.UserPrompt(rawTitle), genai.RoleUser)},
		n.config,
	)
	if err != nil {
		return domain.NormalizedTitle{}, perr.Wrap(err, perr.ErrorCodeNormalization, "gemini generate content")
	}
	return titlenorm.Parse(resp.Text())
}
