package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration using Viper
// Priority order: Environment variables > Config file > Defaults
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file details
	v.SetConfigName("cardforge")
	v.SetConfigType("yaml")

	// Add config paths
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/cardforge")
	}

	// Enable environment variable binding
	v.SetEnvPrefix("CARDFORGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind the short env names used in deployment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.ratelimit", "RATE_LIMIT")
	v.BindEnv("server.ratelimitburst", "RATE_LIMIT_BURST")
	v.BindEnv("server.maxrequestsize", "MAX_REQUEST_SIZE")
	v.BindEnv("content.apiurl", "TEXT_API_URL")
	v.BindEnv("artwork.apiurl", "IMAGE_API_URL")

	// Defaults mirror DefaultConfig
	def := DefaultConfig()
	v.SetDefault("content.apiurl", def.Content.APIURL)
	v.SetDefault("content.model", def.Content.Model)
	v.SetDefault("content.timeout", "60s")
	v.SetDefault("content.ratelimit", def.Content.RateLimit)
	v.SetDefault("content.rateburst", def.Content.RateBurst)

	v.SetDefault("artwork.apiurl", def.Artwork.APIURL)
	v.SetDefault("artwork.model", def.Artwork.Model)
	v.SetDefault("artwork.width", def.Artwork.Width)
	v.SetDefault("artwork.height", def.Artwork.Height)
	v.SetDefault("artwork.timeout", "120s")
	v.SetDefault("artwork.ratelimit", def.Artwork.RateLimit)
	v.SetDefault("artwork.rateburst", def.Artwork.RateBurst)

	v.SetDefault("render.cardwidth", def.Render.CardWidth)
	v.SetDefault("render.cardheight", def.Render.CardHeight)
	v.SetDefault("render.timeout", "60s")

	v.SetDefault("generator.outputdir", def.Generator.OutputDir)
	v.SetDefault("generator.defaultcards", def.Generator.DefaultCards)
	v.SetDefault("generator.maxcards", def.Generator.MaxCards)
	v.SetDefault("generator.defaulttemplate", def.Generator.DefaultTemplate)

	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.readtimeout", "15s")
	v.SetDefault("server.writetimeout", "0s") // 0 for SSE support
	v.SetDefault("server.idletimeout", "0s")
	v.SetDefault("server.shutdowntimeout", "30s")
	v.SetDefault("server.ratelimit", def.Server.RateLimit)
	v.SetDefault("server.ratelimitburst", def.Server.RateLimitBurst)
	v.SetDefault("server.maxrequestsize", def.Server.MaxRequestSize)

	// Try to read config file (it's optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if strings.Contains(err.Error(), "no such file or directory") {
				// File doesn't exist, continue with defaults
			} else {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
		// Config file not found; continue with env vars and defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
