package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Uncanny01/UchihaAi-Hackathon/model"
	"github.com/Uncanny01/UchihaAi-Hackathon/pkg/logger"
	"github.com/tmc/langchaingo/llms"
)

// categorySampleChars caps how much of the extracted text is sent; the first
// kilobyte is enough to name a document.
const categorySampleChars = 1000

// CategorizeService assigns a short category label used only for naming the
// downloaded report. It is a single-shot call on the primary provider: no
// failover, and every failure collapses to the default label.
type CategorizeService struct {
	providers *ProviderSet
}

func NewCategorizeService(providers *ProviderSet) *CategorizeService {
	return &CategorizeService{providers: providers}
}

// Categorize returns a 1-2 word label with spaces replaced by underscores so
// it can be embedded in a filename.
func (s *CategorizeService) Categorize(ctx context.Context, text string, primary model.Provider) string {
	sample := text
	if len(sample) > categorySampleChars {
		sample = sample[:categorySampleChars]
	}

	prompt := fmt.Sprintf("Categorize this document (e.g., Invoice, Resume, Legal, Report). Return ONLY the 1-2 word name.\n\nText: %s", sample)
	d := s.providers.CategorizeDescriptor(primary)

	resp, err := d.Client.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithModel(d.Model),
		llms.WithMaxTokens(10),
	)
	if err != nil || resp == nil || len(resp.Choices) == 0 {
		logger.Warn(ctx, "categorization failed, using default label", "error", err)
		return model.DefaultCategory
	}

	label := strings.ReplaceAll(strings.TrimSpace(resp.Choices[0].Content), " ", "_")
	if label == "" {
		return model.DefaultCategory
	}
	return label
}
