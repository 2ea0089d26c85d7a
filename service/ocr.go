package service

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/Uncanny01/UchihaAi-Hackathon/pkg/logger"
	"github.com/otiai10/gosseract/v2"
)

// OCRService wraps the local Tesseract engine. It never calls a remote
// provider and on failure returns an error message as the extracted text, so
// the pipeline stays in a degraded-but-visible state instead of halting.
type OCRService struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

func NewOCRService(languages []string) *OCRService {
	return &OCRService{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

// ExtractStandard recognizes every page and joins the per-page text with
// newlines. The configured language hints are always requested together; the
// scans mix scripts within a single page.
func (s *OCRService) ExtractStandard(ctx context.Context, pages []image.Image) string {
	text, err := s.recognizePages(ctx, pages)
	if err != nil {
		logger.Warn(ctx, "local recognition failed", "error", err)
		return fmt.Sprintf("OCR Error: %v", err)
	}
	return text
}

func (s *OCRService) recognizePages(ctx context.Context, pages []image.Image) (string, error) {
	client := s.clientFactory()
	defer client.Close()

	if len(s.languages) > 0 {
		if err := client.SetLanguage(s.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}

	texts := make([]string, 0, len(pages))
	for i, page := range pages {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		pngData, err := encodePNG(page)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		if err := client.SetImageFromBytes(pngData); err != nil {
			return "", fmt.Errorf("page %d: set image: %w", i+1, err)
		}
		text, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("page %d: recognize: %w", i+1, err)
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n"), nil
}
