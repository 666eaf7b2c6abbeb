package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "absent.env")}

	t.Setenv(EnvAPIBaseURL, "http://env/api/v1")
	t.Setenv(EnvDatabasePath, ":memory:")
	t.Setenv(EnvRequestTimeout, "3s")
	t.Setenv(EnvMirrorCookie, "true")
	t.Setenv(EnvRowsPerPage, "20")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://env/api/v1", cfg.APIBaseURL)
	assert.Equal(t, ":memory:", cfg.DatabasePath)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.MirrorCookie)
	assert.Equal(t, 20, cfg.RowsPerPage)
	assert.Equal(t, "ru", cfg.Locale)
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "console.env")
	require.NoError(t, os.WriteFile(path, []byte("WMS_LOCALE=en\nWMS_LOG_LEVEL=debug\n"), 0o600))
	os.Args = []string{"testbin", "-env", path}

	// a variable set in the process wins over the file
	t.Setenv(EnvLogLevel, "warn")
	t.Cleanup(func() { _ = os.Unsetenv(EnvLocale) })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func Test_parseEnv_BadValuesPanic(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "absent.env")}

	tests := []struct {
		key, value string
	}{
		{EnvRequestTimeout, "soon"},
		{EnvMirrorCookie, "maybe"},
		{EnvRowsPerPage, "ten"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			require.Panics(t, func() { parseEnv(&Config{}) })
		})
	}
}
