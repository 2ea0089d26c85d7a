package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDocumentStruct(t *testing.T) {
	doc := &Document{
		ID:            "test-id",
		Filename:      "scan.pdf",
		MediaType:     "application/pdf",
		Owner:         "user1",
		Status:        StatusUploaded,
		ScanDecision:  ScanStandard,
		Category:      "Invoice",
		ExtractedText: "Invoice #123",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if doc.ID != "test-id" {
		t.Errorf("Expected ID 'test-id', got '%s'", doc.ID)
	}
	if doc.Status != StatusUploaded {
		t.Errorf("Expected status '%s', got '%s'", StatusUploaded, doc.Status)
	}
}

func TestDocumentStatusConstants(t *testing.T) {
	statuses := []string{StatusUploaded, StatusProcessing, StatusProcessed, StatusFailed}
	expected := []string{"uploaded", "processing", "processed", "failed"}

	for i, status := range statuses {
		if status != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], status)
		}
	}
}

func TestDocumentContentNotSerialized(t *testing.T) {
	doc := &Document{
		ID:      "test-id",
		Content: []byte("raw bytes"),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, exists := decoded["Content"]; exists {
		t.Error("Expected Content to be excluded from JSON")
	}
}

func TestParseProvider(t *testing.T) {
	if ParseProvider("groq") != ProviderGroq {
		t.Error("Expected groq")
	}
	if ParseProvider("openai") != ProviderOpenAI {
		t.Error("Expected openai")
	}
	// Unknown values fall back to OpenAI
	if ParseProvider("something-else") != ProviderOpenAI {
		t.Error("Expected fallback to openai")
	}
	if ParseProvider("") != ProviderOpenAI {
		t.Error("Expected fallback to openai for empty string")
	}
}

func TestProviderAlternate(t *testing.T) {
	if ProviderOpenAI.Alternate() != ProviderGroq {
		t.Error("Expected groq as alternate of openai")
	}
	if ProviderGroq.Alternate() != ProviderOpenAI {
		t.Error("Expected openai as alternate of groq")
	}
}

func TestParseScanMode(t *testing.T) {
	if ParseScanMode("vision") != ScanVision {
		t.Error("Expected vision")
	}
	if ParseScanMode("standard") != ScanStandard {
		t.Error("Expected standard")
	}
	if ParseScanMode("unknown") != ScanStandard {
		t.Error("Expected fallback to standard")
	}
}

func TestParseLanguage(t *testing.T) {
	if ParseLanguage("Hindi") != LanguageHindi {
		t.Error("Expected Hindi")
	}
	if ParseLanguage("English") != LanguageEnglish {
		t.Error("Expected English")
	}
	if ParseLanguage("French") != LanguageEnglish {
		t.Error("Expected fallback to English")
	}
}
