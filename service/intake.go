package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	fitz "github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// IntakeService decodes an uploaded document into raster images: one image
// for a plain image upload, one image per page for a PDF, in page order.
type IntakeService struct {
	maxPages int
}

func NewIntakeService(maxPages int) *IntakeService {
	return &IntakeService{maxPages: maxPages}
}

// Pages rasterizes the uploaded bytes according to the declared media type.
func (s *IntakeService) Pages(data []byte, mediaType string) ([]image.Image, error) {
	if strings.Contains(mediaType, "pdf") {
		return s.pdfPages(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return []image.Image{img}, nil
}

func (s *IntakeService) pdfPages(data []byte) ([]image.Image, error) {
	// Validate the PDF and check the page budget before rendering anything.
	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	if s.maxPages > 0 && pageCount > s.maxPages {
		return nil, fmt.Errorf("PDF has %d pages, maximum is %d", pageCount, s.maxPages)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := make([]image.Image, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

// encodeJPEG serializes an image for transport to a vision model.
func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// encodePNG serializes an image for the local recognition engine, which
// prefers lossless input.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
