package service

import (
	"context"
	"fmt"

	"github.com/Uncanny01/UchihaAi-Hackathon/model"
	"github.com/Uncanny01/UchihaAi-Hackathon/pkg/logger"
	"github.com/tmc/langchaingo/llms"
)

// AllProvidersFailed is surfaced as the result when every summarization
// provider in the sequence fails.
const AllProvidersFailed = "All AI providers failed. Check API balance."

// presetInstructions maps the offered output styles to their instructions.
// Anything not in this map is passed through as a free-form instruction; the
// two kinds share the same call shape.
var presetInstructions = map[string]string{
	model.StyleShortSummary:    "Summarize briefly in 3-5 sentences.",
	model.StyleDetailedSummary: "Provide a comprehensive and detailed summary.",
	model.StyleBulletPoints:    "Summarize using clear bullet points.",
}

// SummarizeService answers a summary-style preset or a free-form instruction
// over the full extracted text. The text is sent whole: enforcing context
// limits is the provider's job, not this system's.
type SummarizeService struct {
	executor  *FailoverExecutor
	providers *ProviderSet
}

func NewSummarizeService(executor *FailoverExecutor, providers *ProviderSet) *SummarizeService {
	return &SummarizeService{executor: executor, providers: providers}
}

// Respond runs one summarization-shaped call through the failover sequence
// ordered by primary. The second return value reports whether the primary
// attempt failed; the caller owns the session flag built on it.
func (s *SummarizeService) Respond(ctx context.Context, text, instruction string, primary model.Provider, language string) (string, bool) {
	if preset, ok := presetInstructions[instruction]; ok {
		instruction = preset
	}
	prompt := fmt.Sprintf("Process this doc in %s. Instruction: %s\n\nContent: %s", language, instruction, text)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	out := s.executor.Execute(ctx, s.providers.SummarizeSequence(primary), messages)
	if out.Exhausted {
		return AllProvidersFailed, out.PrimaryFailed
	}
	logger.Info(ctx, "summarization completed", "provider", string(out.Provider), "failover", out.PrimaryFailed)
	return out.Text, out.PrimaryFailed
}
