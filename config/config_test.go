// ABOUTME: Tests for environment-driven configuration
// ABOUTME: Required fields, defaults, and overrides
package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("CRM_API_URL", "placeholder") // registers restore
	require.NoError(t, os.Unsetenv("CRM_API_URL"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("CRM_API_URL", "http://localhost:5000/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.Token)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("CRM_API_URL", "https://crm.example.test/api")
	t.Setenv("CRM_REQUEST_TIMEOUT", "3s")
	t.Setenv("CRM_TOKEN", "tok-123")
	t.Setenv("CRM_USERNAME", "admin")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "tok-123", cfg.Token)
	assert.Equal(t, "admin", cfg.Username)
}
