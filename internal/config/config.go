package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all process configuration. The Gemini API key is not
// listed here: the GenAI client reads GEMINI_API_KEY / GOOGLE_API_KEY
// from the environment itself.
type Config struct {
	BotName     string
	BotUsername string
	BotToken    string

	SheetsCredentialsFile string
	SpreadsheetID         string

	GeminiModel string

	APIHost string
	APIPort int

	Debug bool
}

// Load reads configuration from environment variables. A .env file in
// the working directory is merged in first when present; variables
// already set in the environment win. BOT_TOKEN is the only hard
// requirement — the persistence settings are validated later, when the
// Sheets client starts.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env file is fine

	cfg := &Config{
		BotName:               envOr("BOT_NAME", "Dacarsoft Asistente Financiero Bot"),
		BotUsername:           envOr("BOT_USERNAME", "DacarsoftFinanceBot"),
		BotToken:              os.Getenv("BOT_TOKEN"),
		SheetsCredentialsFile: envOr("SHEETS_CREDENTIALS_FILE", "credentials.json"),
		SpreadsheetID:         os.Getenv("SPREADSHEET_ID"),
		GeminiModel:           os.Getenv("GEMINI_MODEL"),
		APIHost:               envOr("API_HOST", "0.0.0.0"),
		APIPort:               8000,
	}

	if v := os.Getenv("API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("Load: invalid API_PORT %q: %w", v, err)
		}
		cfg.APIPort = port
	}
	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("Load: invalid DEBUG %q: %w", v, err)
		}
		cfg.Debug = debug
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("Load: BOT_TOKEN is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
