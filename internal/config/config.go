package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the services need at startup. In the browser-hosted
// predecessor these lived in localStorage; here they come from the environment
// (optionally seeded from a .env file).
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// SpreadsheetID identifies the Google Sheets workbook backing all tables.
	SpreadsheetID string `envconfig:"SPREADSHEET_ID" required:"true"`

	// Provider selects the chat-completion backend: "gemini" or "openai".
	Provider     string `envconfig:"LLM_PROVIDER" default:"gemini"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIURL    string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`

	// BaseCurrency is the currency all transaction amounts are frozen into at
	// insert time.
	BaseCurrency string `envconfig:"BASE_CURRENCY" default:"PLN"`

	// SynonymOverridesPath optionally points at a YAML file with extra
	// synonym->subcategory mappings merged over the built-in tables.
	SynonymOverridesPath string `envconfig:"SYNONYM_OVERRIDES" default:""`
}

// Load reads configuration from the environment. A missing .env file is not an
// error; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("assetly", &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.Provider != "gemini" && cfg.Provider != "openai" {
		return nil, fmt.Errorf("config.Load: unknown LLM_PROVIDER %q", cfg.Provider)
	}
	return &cfg, nil
}
