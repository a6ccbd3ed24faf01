package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("COMMISSION_CONFIG_URL", "")
	t.Setenv("COMMISSION_HTTP_TIMEOUT", "")
	t.Setenv("COMMISSION_RUN_TIMEOUT", "")
	t.Setenv("GCS_ENDPOINT", "")
	t.Setenv("LOG_LEVEL", "")

	s := Load()

	assert.Equal(t, DefaultConfigBaseURL, s.ConfigBaseURL)
	assert.Equal(t, 10*time.Second, s.HTTPTimeout)
	assert.Equal(t, time.Minute, s.RunTimeout)
	assert.Empty(t, s.GCSEndpoint)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("COMMISSION_CONFIG_URL", "http://localhost:9000/")
	t.Setenv("COMMISSION_HTTP_TIMEOUT", "2s")
	t.Setenv("COMMISSION_RUN_TIMEOUT", "30s")
	t.Setenv("GCS_ENDPOINT", "http://localhost:4443/storage/v1/")
	t.Setenv("LOG_LEVEL", "debug")

	s := Load()

	assert.Equal(t, "http://localhost:9000", s.ConfigBaseURL)
	assert.Equal(t, 2*time.Second, s.HTTPTimeout)
	assert.Equal(t, 30*time.Second, s.RunTimeout)
	assert.Equal(t, "http://localhost:4443/storage/v1/", s.GCSEndpoint)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "valid", value: "1500ms", want: 1500 * time.Millisecond},
		{name: "garbage", value: "soon", want: 5 * time.Second},
		{name: "negative", value: "-1s", want: 5 * time.Second},
		{name: "zero", value: "0s", want: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, GetDurationEnv("TEST_DURATION", 5*time.Second))
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("COMMISSION_TEST_FROM_FILE=yes\n"), 0o600))

	t.Setenv("COMMISSION_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("COMMISSION_TEST_FROM_FILE"))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "yes", os.Getenv("COMMISSION_TEST_FROM_FILE"))
}

func TestLoadEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env")))
}
