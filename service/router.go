package service

import (
	"context"
	"encoding/base64"
	"image"
	"strings"

	"golang.org/x/image/draw"

	"github.com/Uncanny01/UchihaAi-Hackathon/pkg/logger"
	"github.com/tmc/langchaingo/llms"
)

// Routing decision labels.
const (
	DecisionOCR    = "OCR"
	DecisionVision = "VISION"
)

// thumbnailMaxSide bounds the image sent for classification. The decision
// only needs a coarse look at the document, so the payload stays small.
const thumbnailMaxSide = 400

const routingPrompt = "Look at this document. Is it a clean printed form (OCR) or is it handwritten/complex/messy (VISION)? Reply with ONLY the word OCR or VISION."

// RouterService makes the routing decision: whether a document should go
// through local recognition or vision transcription.
type RouterService struct {
	executor  *FailoverExecutor
	providers *ProviderSet
}

func NewRouterService(executor *FailoverExecutor, providers *ProviderSet) *RouterService {
	return &RouterService{executor: executor, providers: providers}
}

// Classify inspects the first page and returns DecisionOCR or DecisionVision.
// Any non-conforming reply, and any failure up to and including the whole
// sequence, yields DecisionOCR: the local path needs no further remote call,
// so it is the safe default.
func (s *RouterService) Classify(ctx context.Context, img image.Image) string {
	thumb := downscale(img, thumbnailMaxSide)
	jpegData, err := encodeJPEG(thumb)
	if err != nil {
		logger.Warn(ctx, "failed to encode routing thumbnail", "error", err)
		return DecisionOCR
	}

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(routingPrompt),
				llms.ImageURLPart(dataURL("image/jpeg", jpegData)),
			},
		},
	}

	// The classification sequence is hardwired and ignores the user's
	// primary-provider preference.
	out := s.executor.Execute(ctx, s.providers.ClassifySequence(), messages, llms.WithMaxTokens(5))
	if out.Exhausted {
		logger.Warn(ctx, "all routing providers failed, defaulting to OCR")
		return DecisionOCR
	}

	decision := strings.ToUpper(strings.TrimSpace(out.Text))
	if decision != DecisionOCR && decision != DecisionVision {
		logger.Warn(ctx, "non-conforming routing reply, defaulting to OCR", "reply", out.Text)
		return DecisionOCR
	}
	return decision
}

// downscale shrinks img so its longest side is at most maxSide pixels,
// preserving aspect ratio. Images already within bounds pass through.
func downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(w)
	if h > w {
		scale = float64(maxSide) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
