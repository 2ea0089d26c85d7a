package service

import (
	"context"
	"image"

	"github.com/Uncanny01/UchihaAi-Hackathon/model"
	"github.com/Uncanny01/UchihaAi-Hackathon/pkg/logger"
	"github.com/tmc/langchaingo/llms"
)

// AllTranscribersFailed is surfaced as the extracted text when every
// transcription provider in the sequence fails.
const AllTranscribersFailed = "All transcription providers failed."

const transcribePrompt = "Transcribe all text from this image perfectly. Match language script (Hindi/English). Fix handwriting errors."

// VisionService transcribes a document with a vision-capable remote model.
// Only the first page is sent; later pages of a multi-page PDF are dropped.
type VisionService struct {
	executor  *FailoverExecutor
	providers *ProviderSet
}

func NewVisionService(executor *FailoverExecutor, providers *ProviderSet) *VisionService {
	return &VisionService{executor: executor, providers: providers}
}

// ExtractVision transcribes the first page through the failover sequence
// ordered by the user's primary provider. The returned text is either the
// transcription or a fixed failure message; this call never hard-fails.
func (s *VisionService) ExtractVision(ctx context.Context, pages []image.Image, primary model.Provider) string {
	if len(pages) == 0 {
		return AllTranscribersFailed
	}

	jpegData, err := encodeJPEG(pages[0])
	if err != nil {
		logger.Warn(ctx, "failed to encode page for transcription", "error", err)
		return AllTranscribersFailed
	}

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(transcribePrompt),
				llms.ImageURLPart(dataURL("image/jpeg", jpegData)),
			},
		},
	}

	out := s.executor.Execute(ctx, s.providers.TranscribeSequence(primary), messages)
	if out.Exhausted {
		return AllTranscribersFailed
	}
	logger.Info(ctx, "transcription completed", "provider", string(out.Provider), "failover", out.PrimaryFailed)
	return out.Text
}
