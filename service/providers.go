package service

import (
	"fmt"

	"github.com/Uncanny01/UchihaAi-Hackathon/config"
	"github.com/Uncanny01/UchihaAi-Hackathon/model"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ProviderSet holds the two remote model clients and builds the failover
// sequences for each call shape. The user's primary-provider preference only
// orders a sequence, it never restricts it.
type ProviderSet struct {
	cfg     *config.ProvidersConfig
	clients map[model.Provider]llms.Model
}

// NewProviderSet builds the OpenAI and Groq clients from configuration. Groq
// is reached through the OpenAI-compatible client with a custom base URL.
func NewProviderSet(cfg *config.ProvidersConfig) (*ProviderSet, error) {
	openaiClient, err := openai.New(
		openai.WithToken(cfg.OpenAI.APIKey),
		openai.WithModel(cfg.OpenAI.SummaryModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	groqClient, err := openai.New(
		openai.WithToken(cfg.Groq.APIKey),
		openai.WithBaseURL(cfg.Groq.BaseURL),
		openai.WithModel(cfg.Groq.SummaryModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Groq client: %w", err)
	}

	return &ProviderSet{
		cfg: cfg,
		clients: map[model.Provider]llms.Model{
			model.ProviderOpenAI: openaiClient,
			model.ProviderGroq:   groqClient,
		},
	}, nil
}

// NewProviderSetWithClients injects prebuilt clients; used by tests.
func NewProviderSetWithClients(cfg *config.ProvidersConfig, clients map[model.Provider]llms.Model) *ProviderSet {
	return &ProviderSet{cfg: cfg, clients: clients}
}

func (p *ProviderSet) providerConfig(name model.Provider) *config.ProviderConfig {
	if name == model.ProviderGroq {
		return &p.cfg.Groq
	}
	return &p.cfg.OpenAI
}

func (p *ProviderSet) descriptor(name model.Provider, modelID string) Descriptor {
	return Descriptor{Name: name, Model: modelID, Client: p.clients[name]}
}

// ClassifySequence is the routing-decision sequence. It is hardwired to
// OpenAI then Groq and does not follow the user's primary-provider setting.
func (p *ProviderSet) ClassifySequence() Sequence {
	return Sequence{
		p.descriptor(model.ProviderOpenAI, p.cfg.OpenAI.ClassifyModel),
		p.descriptor(model.ProviderGroq, p.cfg.Groq.ClassifyModel),
	}
}

// TranscribeSequence orders the vision transcription sequence by the user's
// primary provider: primary first, fixed alternate second.
func (p *ProviderSet) TranscribeSequence(primary model.Provider) Sequence {
	alternate := primary.Alternate()
	return Sequence{
		p.descriptor(primary, p.providerConfig(primary).VisionModel),
		p.descriptor(alternate, p.providerConfig(alternate).VisionModel),
	}
}

// SummarizeSequence orders the summarization sequence by the user's primary
// provider: primary first, fixed alternate second.
func (p *ProviderSet) SummarizeSequence(primary model.Provider) Sequence {
	alternate := primary.Alternate()
	return Sequence{
		p.descriptor(primary, p.providerConfig(primary).SummaryModel),
		p.descriptor(alternate, p.providerConfig(alternate).SummaryModel),
	}
}

// CategorizeDescriptor is the single-shot categorization call: only the
// primary provider is tried, with no fallback.
func (p *ProviderSet) CategorizeDescriptor(primary model.Provider) Descriptor {
	return p.descriptor(primary, p.providerConfig(primary).CategoryModel)
}
