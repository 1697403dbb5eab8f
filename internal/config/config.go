package config

import (
	"fmt"
	"time"
)

// This file defines the configuration structures used by viper_config.go
// The actual loading is handled by viper in viper_config.go

// Config is the top-level cardforge configuration
type Config struct {
	Content   ContentSettings   `yaml:"content"`
	Artwork   ArtworkSettings   `yaml:"artwork"`
	Render    RenderSettings    `yaml:"render"`
	Generator GeneratorSettings `yaml:"generator"`
	Server    ServerSettings    `yaml:"server"`
}

// ContentSettings configures the text-generation client
type ContentSettings struct {
	APIURL    string        `yaml:"apiUrl"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rateLimit"` // outbound requests per second
	RateBurst int           `yaml:"rateBurst"`
}

// ArtworkSettings configures the image-generation client
type ArtworkSettings struct {
	APIURL    string        `yaml:"apiUrl"`
	Model     string        `yaml:"model"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	Timeout   time.Duration `yaml:"timeout"` // long: image generation is slow
	RateLimit float64       `yaml:"rateLimit"`
	RateBurst int           `yaml:"rateBurst"`
}

// RenderSettings configures the card rasterizer
type RenderSettings struct {
	CardWidth  int           `yaml:"cardWidth"`
	CardHeight int           `yaml:"cardHeight"`
	Timeout    time.Duration `yaml:"timeout"`
}

// GeneratorSettings configures pipeline defaults
type GeneratorSettings struct {
	OutputDir       string `yaml:"outputDir"`
	DefaultCards    int    `yaml:"defaultCards"`
	MaxCards        int    `yaml:"maxCards"`
	DefaultTemplate string `yaml:"defaultTemplate"`
}

// ServerSettings configures the HTTP service
type ServerSettings struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            string        `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"readTimeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idleTimeout" envconfig:"IDLE_TIMEOUT"` // 0 for SSE support
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" envconfig:"SHUTDOWN_TIMEOUT"`

	// Rate limiting (using golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit" envconfig:"RATE_LIMIT"`
	RateLimitBurst int     `yaml:"rateLimitBurst" envconfig:"RATE_LIMIT_BURST"`

	MaxRequestSize int64 `yaml:"maxRequestSize" envconfig:"MAX_REQUEST_SIZE"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Content: ContentSettings{
			APIURL:    "https://text.pollinations.ai/openai",
			Model:     "openai",
			Timeout:   60 * time.Second,
			RateLimit: 1,
			RateBurst: 1,
		},
		Artwork: ArtworkSettings{
			APIURL:    "https://image.pollinations.ai/prompt",
			Model:     "flux",
			Width:     512,
			Height:    512,
			Timeout:   120 * time.Second,
			RateLimit: 1,
			RateBurst: 1,
		},
		Render: RenderSettings{
			CardWidth:  428,
			CardHeight: 571,
			Timeout:    60 * time.Second,
		},
		Generator: GeneratorSettings{
			OutputDir:       "./output",
			DefaultCards:    5,
			MaxCards:        20,
			DefaultTemplate: "bright_swiss",
		},
		Server: ServerSettings{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // 0 for SSE support
			IdleTimeout:     0,
			ShutdownTimeout: 30 * time.Second,
			RateLimit:       10,
			RateLimitBurst:  20,
			MaxRequestSize:  1048576, // 1MB
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Content.APIURL == "" {
		return fmt.Errorf("content.apiUrl must be set")
	}
	if c.Artwork.APIURL == "" {
		return fmt.Errorf("artwork.apiUrl must be set")
	}
	if c.Artwork.Width < 1 || c.Artwork.Height < 1 {
		return fmt.Errorf("artwork dimensions must be positive")
	}
	if c.Render.CardWidth < 1 || c.Render.CardHeight < 1 {
		return fmt.Errorf("render card dimensions must be positive")
	}
	if c.Generator.MaxCards < 1 {
		return fmt.Errorf("generator.maxCards must be at least 1")
	}
	if c.Generator.DefaultCards < 1 || c.Generator.DefaultCards > c.Generator.MaxCards {
		return fmt.Errorf("generator.defaultCards must be between 1 and %d", c.Generator.MaxCards)
	}
	if c.Generator.DefaultTemplate == "" {
		return fmt.Errorf("generator.defaultTemplate must be set")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must be set")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rateLimit must be positive")
	}
	return nil
}
