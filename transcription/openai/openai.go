// Package openai implements transcription.Provider with the OpenAI audio
// transcription API.
package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/transcriptor/transcription"
)

// ProviderName is the registered name for the OpenAI provider.
const ProviderName = "openai"

// Config holds configuration for the OpenAI transcription provider.
type Config struct {
	APIKey string
	// BaseURL overrides the API endpoint (proxies, compatible servers).
	BaseURL string
	// Model is the hosted model name. Local size identifiers such as
	// "small" are not hosted and map to whisper-1.
	Model string
}

// Provider implements transcription.Provider using go-openai.
type Provider struct {
	client *goopenai.Client
	model  string
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates a new OpenAI transcription provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Provider{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  hostedModel(cfg.Model),
	}, nil
}

// Factory returns a transcription.Factory building OpenAI providers.
func Factory() transcription.Factory {
	return func(cfg transcription.Config) (transcription.Provider, error) {
		return NewProvider(Config{APIKey: cfg.APIKey, BaseURL: cfg.URL, Model: cfg.Model})
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks that the API accepts the credentials.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Transcribe uploads the file and returns the verbose transcription.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	model := p.model
	if req.Model != "" {
		model = hostedModel(req.Model)
	}
	resp, err := p.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    model,
		FilePath: req.AudioPath,
		Language: req.Language,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, err
	}

	segments := make([]transcription.Segment, len(resp.Segments))
	for i, seg := range resp.Segments {
		segments[i] = transcription.Segment{Start: seg.Start, End: seg.End, Text: seg.Text}
	}
	return &transcription.Response{
		Text:     resp.Text,
		Segments: segments,
		Duration: resp.Duration,
		Language: resp.Language,
	}, nil
}

func hostedModel(model string) string {
	switch model {
	case "", "tiny", "base", "small", "medium", "large", "large-v2", "large-v3":
		return goopenai.Whisper1
	}
	return model
}
