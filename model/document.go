package model

import (
	"time"
)

// Document represents one uploaded scan and everything derived from it during
// the session. ExtractedText and Summary hold at most one live value each;
// reprocessing or re-summarising replaces the prior value wholesale.
type Document struct {
	ID             string    `json:"id"`
	Filename       string    `json:"filename"`
	MediaType      string    `json:"media_type"`
	Owner          string    `json:"owner"`
	Status         string    `json:"status"` // uploaded, processing, processed, failed
	ScanDecision   ScanMode  `json:"scan_decision,omitempty"`
	Category       string    `json:"category,omitempty"`
	ExtractedText  string    `json:"extracted_text,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	FailoverActive bool      `json:"failover_active"`
	ErrorMsg       string    `json:"error_msg,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Content is the raw uploaded payload. Held in memory only and never
	// serialized in API responses.
	Content []byte `json:"-"`
}

// Document status constants
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusFailed     = "failed"
)

// Provider identifies one of the two remote model providers.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
)

// ParseProvider maps a request value to a Provider, defaulting to OpenAI.
func ParseProvider(s string) Provider {
	if Provider(s) == ProviderGroq {
		return ProviderGroq
	}
	return ProviderOpenAI
}

// Alternate returns the other provider of the pair.
func (p Provider) Alternate() Provider {
	if p == ProviderGroq {
		return ProviderOpenAI
	}
	return ProviderGroq
}

// ScanMode selects the text extraction strategy.
type ScanMode string

const (
	// ScanStandard runs local Tesseract recognition, page by page.
	ScanStandard ScanMode = "standard"
	// ScanVision sends the first page to a vision-capable remote model.
	ScanVision ScanMode = "vision"
)

// ParseScanMode maps a request value to a ScanMode, defaulting to standard.
func ParseScanMode(s string) ScanMode {
	if ScanMode(s) == ScanVision {
		return ScanVision
	}
	return ScanStandard
}

// Output languages offered for summaries.
const (
	LanguageEnglish = "English"
	LanguageHindi   = "Hindi"
)

// ParseLanguage maps a request value to an output language, defaulting to
// English.
func ParseLanguage(s string) string {
	if s == LanguageHindi {
		return LanguageHindi
	}
	return LanguageEnglish
}

// Summary style presets. Any other instruction string is treated as a
// free-form instruction; it is the same call shape either way.
const (
	StyleShortSummary    = "Short Summary"
	StyleDetailedSummary = "Detailed Summary"
	StyleBulletPoints    = "Bullet Points"
)

// DefaultCategory is used when categorization fails or has not run yet.
const DefaultCategory = "Document"
