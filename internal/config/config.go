package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultConfigBaseURL is the fee configuration service used when
// COMMISSION_CONFIG_URL is not set.
const DefaultConfigBaseURL = "http://private-38e18c-uzduotis.apiary-mock.com"

// Settings holds process configuration read from the environment.
type Settings struct {
	// ConfigBaseURL is the root of the fee configuration service.
	ConfigBaseURL string

	// HTTPTimeout bounds a single configuration request.
	HTTPTimeout time.Duration

	// RunTimeout bounds a whole CLI run.
	RunTimeout time.Duration

	// GCSEndpoint overrides the storage API endpoint, e.g. for an emulator.
	GCSEndpoint string

	LogLevel string
}

// LoadEnv loads variables from a .env file if present. A missing file is
// not an error; the returned error is for a file that exists but cannot be
// parsed.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	existing := make([]string, 0, len(filenames))
	for _, name := range filenames {
		if _, err := os.Stat(name); err == nil {
			existing = append(existing, name)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	return godotenv.Load(existing...)
}

// Load reads Settings from the environment, applying defaults.
func Load() Settings {
	return Settings{
		ConfigBaseURL: strings.TrimRight(GetEnv("COMMISSION_CONFIG_URL", DefaultConfigBaseURL), "/"),
		HTTPTimeout:   GetDurationEnv("COMMISSION_HTTP_TIMEOUT", 10*time.Second),
		RunTimeout:    GetDurationEnv("COMMISSION_RUN_TIMEOUT", time.Minute),
		GCSEndpoint:   GetEnv("GCS_ENDPOINT", ""),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
// Unparsable and non-positive values fall back to the default.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(val)); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}
