package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ClientConfig configures the command-line client.
type ClientConfig struct {
	APIURL         string
	SessionFile    string
	RequestTimeout time.Duration

	// Currency formats amounts in listings (ISO 4217).
	Currency string
}

// LoadClient reads the client configuration from the environment and an
// optional .env file.
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	return &ClientConfig{
		APIURL:         strings.TrimRight(getEnv("PATRIMONIO_API_URL", "http://localhost:8080"), "/"),
		SessionFile:    getEnv("PATRIMONIO_SESSION_FILE", defaultSessionFile()),
		RequestTimeout: parseDuration("REQUEST_TIMEOUT", 15*time.Second),
		Currency:       strings.ToUpper(getEnv("CURRENCY", "BRL")),
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "patrimonio", "session.json")
}
