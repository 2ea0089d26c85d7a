package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	configContent := `
server:
  port: 9090
log:
  level: "debug"
  format: "json"
auth:
  jwt_secret: "test-secret"
  token_expire_hours: 48
store:
  max_documents: 50
providers:
  openai:
    api_key: "sk-test"
    vision_model: "gpt-4o"
  groq:
    api_key: "gsk-test"
    summary_model: "llama-3.3-70b-versatile"
ocr:
  languages: ["hin", "eng"]
intake:
  max_pages: 20
report:
  title: "Test Report"
users:
  - username: "testuser"
    password: "testpass"
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	// Test loading config
	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify values
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenExpireHours != 48 {
		t.Errorf("Expected token_expire_hours 48, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected log format json, got %s", cfg.Log.Format)
	}
	if cfg.Store.MaxDocuments != 50 {
		t.Errorf("Expected max_documents 50, got %d", cfg.Store.MaxDocuments)
	}
	if cfg.Providers.OpenAI.APIKey != "sk-test" {
		t.Errorf("Expected openai api key sk-test, got %s", cfg.Providers.OpenAI.APIKey)
	}
	if cfg.Providers.Groq.SummaryModel != "llama-3.3-70b-versatile" {
		t.Errorf("Expected groq summary model, got %s", cfg.Providers.Groq.SummaryModel)
	}
	if cfg.Intake.MaxPages != 20 {
		t.Errorf("Expected max_pages 20, got %d", cfg.Intake.MaxPages)
	}
	if cfg.Report.Title != "Test Report" {
		t.Errorf("Expected report title 'Test Report', got %s", cfg.Report.Title)
	}
	if len(cfg.Users) != 1 {
		t.Errorf("Expected 1 user, got %d", len(cfg.Users))
	}
	if cfg.Users[0].Username != "testuser" {
		t.Errorf("Expected username testuser, got %s", cfg.Users[0].Username)
	}
}

func TestLoadDefaults(t *testing.T) {
	// Create minimal config to test defaults
	configContent := `
auth:
  jwt_secret: "secret"
`
	tmpFile, err := os.CreateTemp("", "config-defaults-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify defaults
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenExpireHours != 24 {
		t.Errorf("Expected default token_expire_hours 24, got %d", cfg.Auth.TokenExpireHours)
	}
	if cfg.Store.MaxDocuments != 100 {
		t.Errorf("Expected default max_documents 100, got %d", cfg.Store.MaxDocuments)
	}
	if cfg.Providers.Groq.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("Expected default groq base URL, got %s", cfg.Providers.Groq.BaseURL)
	}
	if cfg.Providers.OpenAI.ClassifyModel != "gpt-4o-mini" {
		t.Errorf("Expected default classify model gpt-4o-mini, got %s", cfg.Providers.OpenAI.ClassifyModel)
	}
	if cfg.Providers.Groq.VisionModel != "meta-llama/llama-4-scout-17b-16e-instruct" {
		t.Errorf("Expected default groq vision model, got %s", cfg.Providers.Groq.VisionModel)
	}
	if cfg.Providers.Groq.CategoryModel != "llama-3.1-8b-instant" {
		t.Errorf("Expected default groq category model, got %s", cfg.Providers.Groq.CategoryModel)
	}
	if len(cfg.OCR.Languages) != 2 || cfg.OCR.Languages[0] != "hin" || cfg.OCR.Languages[1] != "eng" {
		t.Errorf("Expected default OCR languages [hin eng], got %v", cfg.OCR.Languages)
	}
	if cfg.Intake.MaxPages != 50 {
		t.Errorf("Expected default max_pages 50, got %d", cfg.Intake.MaxPages)
	}
	if cfg.Report.Title == "" {
		t.Error("Expected default report title")
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "config-invalid-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString("invalid: yaml: content:"); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	_, err = Load(tmpFile.Name())
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestFindUser(t *testing.T) {
	cfg := &Config{
		Users: []User{
			{Username: "user1", Password: "pass1"},
			{Username: "user2", Password: "pass2"},
		},
	}

	// Test finding existing user
	user := cfg.FindUser("user1")
	if user == nil {
		t.Fatal("Expected to find user1")
	}
	if user.Password != "pass1" {
		t.Errorf("Expected password pass1, got %s", user.Password)
	}

	// Test finding non-existent user
	user = cfg.FindUser("nonexistent")
	if user != nil {
		t.Error("Expected nil for non-existent user")
	}
}
