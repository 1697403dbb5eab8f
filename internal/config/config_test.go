package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 428, cfg.Render.CardWidth)
	assert.Equal(t, 571, cfg.Render.CardHeight)
	assert.Equal(t, 512, cfg.Artwork.Width)
	assert.Equal(t, "bright_swiss", cfg.Generator.DefaultTemplate)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty content url", func(c *Config) { c.Content.APIURL = "" }},
		{"empty artwork url", func(c *Config) { c.Artwork.APIURL = "" }},
		{"zero artwork width", func(c *Config) { c.Artwork.Width = 0 }},
		{"zero card height", func(c *Config) { c.Render.CardHeight = 0 }},
		{"zero max cards", func(c *Config) { c.Generator.MaxCards = 0 }},
		{"default cards above max", func(c *Config) { c.Generator.DefaultCards = 99 }},
		{"empty default template", func(c *Config) { c.Generator.DefaultTemplate = "" }},
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"zero rate limit", func(c *Config) { c.Server.RateLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://text.pollinations.ai/openai", cfg.Content.APIURL)
	assert.Equal(t, "https://image.pollinations.ai/prompt", cfg.Artwork.APIURL)
	assert.Equal(t, "flux", cfg.Artwork.Model)
	assert.Equal(t, 60*time.Second, cfg.Content.Timeout)
	assert.Equal(t, 120*time.Second, cfg.Artwork.Timeout)
	assert.Equal(t, 5, cfg.Generator.DefaultCards)
	assert.Equal(t, 20, cfg.Generator.MaxCards)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cardforge.yaml")
	yaml := `
generator:
  outputDir: /tmp/games
  defaultCards: 3
render:
  cardWidth: 400
  cardHeight: 560
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/games", cfg.Generator.OutputDir)
	assert.Equal(t, 3, cfg.Generator.DefaultCards)
	assert.Equal(t, 400, cfg.Render.CardWidth)
	assert.Equal(t, 560, cfg.Render.CardHeight)
	// untouched settings keep their defaults
	assert.Equal(t, "flux", cfg.Artwork.Model)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("TEXT_API_URL", "http://localhost:1234/openai")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "http://localhost:1234/openai", cfg.Content.APIURL)
}
