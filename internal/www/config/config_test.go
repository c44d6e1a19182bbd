package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"PORT", "APP_ENV", "CONTENT_DIR", "FIGURE_BASE_URL_KEY", "SITE_IMAGE_URL", "SITE_CDN"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.True(t, cfg.IsDev())
	require.False(t, cfg.IsProd())
	require.Equal(t, "content", cfg.ContentDir)
	require.Equal(t, "image_url", cfg.FigureBaseURLKey)
	require.Equal(t, "", cfg.Site["image_url"])
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
port: "9000"
app_env: production
site:
  image_url: http://images.example.com/
  title: Example
`), 0o600))

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.True(t, cfg.IsProd())
	require.Equal(t, "http://images.example.com/", cfg.Site["image_url"])
	require.Equal(t, "Example", cfg.Site["title"])
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SITE_IMAGE_URL", "https://cdn.example.com")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com", cfg.Site["image_url"])
}

func TestLoadCustomBaseURLKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIGURE_BASE_URL_KEY", "cdn")
	t.Setenv("SITE_CDN", "https://cdn.example.com")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "cdn", cfg.FigureBaseURLKey)
	require.Equal(t, "https://cdn.example.com", cfg.Site["cdn"])
}
