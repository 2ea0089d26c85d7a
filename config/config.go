package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Store     StoreConfig     `yaml:"store"`
	Providers ProvidersConfig `yaml:"providers"`
	OCR       OCRConfig       `yaml:"ocr"`
	Intake    IntakeConfig    `yaml:"intake"`
	Report    ReportConfig    `yaml:"report"`
	Users     []User          `yaml:"users"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type StoreConfig struct {
	MaxDocuments int `yaml:"max_documents"`
}

// ProvidersConfig describes the two remote model providers. Groq speaks the
// OpenAI wire protocol, so both entries share the same shape and only differ
// in base URL and model identifiers.
type ProvidersConfig struct {
	OpenAI ProviderConfig `yaml:"openai"`
	Groq   ProviderConfig `yaml:"groq"`
}

// ProviderConfig carries one model identifier per call shape: classification,
// vision transcription, summarization and categorization may each use a
// different concrete model on the same provider.
type ProviderConfig struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	ClassifyModel string `yaml:"classify_model"`
	VisionModel   string `yaml:"vision_model"`
	SummaryModel  string `yaml:"summary_model"`
	CategoryModel string `yaml:"category_model"`
}

type OCRConfig struct {
	// Languages are Tesseract traineddata names, requested together on every
	// recognition call (the product scans mixed Hindi/English documents).
	Languages []string `yaml:"languages"`
}

type IntakeConfig struct {
	MaxPages int `yaml:"max_pages"`
}

type ReportConfig struct {
	Title string `yaml:"title"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}
	if cfg.Store.MaxDocuments == 0 {
		cfg.Store.MaxDocuments = 100
	}
	if cfg.Providers.OpenAI.APIKey == "" {
		cfg.Providers.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Providers.Groq.APIKey == "" {
		cfg.Providers.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg.Providers.Groq.BaseURL == "" {
		cfg.Providers.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Providers.OpenAI.ClassifyModel == "" {
		cfg.Providers.OpenAI.ClassifyModel = "gpt-4o-mini"
	}
	if cfg.Providers.OpenAI.VisionModel == "" {
		cfg.Providers.OpenAI.VisionModel = "gpt-4o"
	}
	if cfg.Providers.OpenAI.SummaryModel == "" {
		cfg.Providers.OpenAI.SummaryModel = "gpt-4o"
	}
	if cfg.Providers.OpenAI.CategoryModel == "" {
		cfg.Providers.OpenAI.CategoryModel = "gpt-4o-mini"
	}
	if cfg.Providers.Groq.ClassifyModel == "" {
		cfg.Providers.Groq.ClassifyModel = "meta-llama/llama-4-scout-17b-16e-instruct"
	}
	if cfg.Providers.Groq.VisionModel == "" {
		cfg.Providers.Groq.VisionModel = "meta-llama/llama-4-scout-17b-16e-instruct"
	}
	if cfg.Providers.Groq.SummaryModel == "" {
		cfg.Providers.Groq.SummaryModel = "llama-3.3-70b-versatile"
	}
	if cfg.Providers.Groq.CategoryModel == "" {
		cfg.Providers.Groq.CategoryModel = "llama-3.1-8b-instant"
	}
	if len(cfg.OCR.Languages) == 0 {
		cfg.OCR.Languages = []string{"hin", "eng"}
	}
	if cfg.Intake.MaxPages == 0 {
		cfg.Intake.MaxPages = 50
	}
	if cfg.Report.Title == "" {
		cfg.Report.Title = "Uchiha AI - Intelligence Report"
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}
