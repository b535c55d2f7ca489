package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the media gateway.
type Config struct {
	// Service Configuration
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"media-actions"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"customgpt"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort         int           `env:"MEDIA_API_PORT" envDefault:"8000"`
	LogLevel         string        `env:"MEDIA_LOG_LEVEL" envDefault:"info"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS" envDefault:""`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Replicate Provider
	ReplicateAPIToken string        `env:"REPLICATE_API_TOKEN"`
	ReplicateBaseURL  string        `env:"REPLICATE_BASE_URL" envDefault:"https://api.replicate.com"`
	ProviderTimeout   time.Duration `env:"MEDIA_PROVIDER_TIMEOUT" envDefault:"120s"`
	PollInterval      time.Duration `env:"REPLICATE_POLL_INTERVAL" envDefault:"2s"`
	WaitSeconds       int           `env:"REPLICATE_WAIT_SECONDS" envDefault:"60"`

	// Generation defaults. These feed the handler as one immutable structure so
	// that per-deployment overrides never turn into scattered literals.
	DefaultImageModel       string `env:"MEDIA_DEFAULT_IMAGE_MODEL" envDefault:"flux-schnell"`
	DefaultThreeDModel      string `env:"MEDIA_DEFAULT_3D_MODEL" envDefault:"trellis"`
	DefaultVideoModel       string `env:"MEDIA_DEFAULT_VIDEO_MODEL" envDefault:"wan-i2v-480p"`
	DefaultAudioModel       string `env:"MEDIA_DEFAULT_AUDIO_MODEL" envDefault:"musicgen"`
	DefaultAspectRatio      string `env:"MEDIA_DEFAULT_ASPECT_RATIO" envDefault:"16:9"`
	DefaultSeed             int    `env:"MEDIA_DEFAULT_SEED" envDefault:"1234"`
	DefaultRemoveBackground bool   `env:"MEDIA_DEFAULT_REMOVE_BACKGROUND" envDefault:"true"`
	DefaultVideoDuration    int    `env:"MEDIA_DEFAULT_VIDEO_DURATION" envDefault:"5"`
	DefaultAudioDuration    int    `env:"MEDIA_DEFAULT_AUDIO_DURATION" envDefault:"8"`
}

// Defaults is the immutable set of generation defaults handed to the domain
// service at construction time.
type Defaults struct {
	ImageModel       string
	ThreeDModel      string
	VideoModel       string
	AudioModel       string
	AspectRatio      string
	Seed             int
	RemoveBackground bool
	VideoDuration    int
	AudioDuration    int
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.ReplicateAPIToken = strings.TrimSpace(cfg.ReplicateAPIToken)
	cfg.ReplicateBaseURL = strings.TrimRight(strings.TrimSpace(cfg.ReplicateBaseURL), "/")
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 120 * time.Second
	}
	return cfg, nil
}

// GenerationDefaults returns the immutable defaults structure.
func (c *Config) GenerationDefaults() Defaults {
	return Defaults{
		ImageModel:       c.DefaultImageModel,
		ThreeDModel:      c.DefaultThreeDModel,
		VideoModel:       c.DefaultVideoModel,
		AudioModel:       c.DefaultAudioModel,
		AspectRatio:      c.DefaultAspectRatio,
		Seed:             c.DefaultSeed,
		RemoveBackground: c.DefaultRemoveBackground,
		VideoDuration:    c.DefaultVideoDuration,
		AudioDuration:    c.DefaultAudioDuration,
	}
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// ReplicateConfigured reports whether a provider token is present.
func (c *Config) ReplicateConfigured() bool {
	return c.ReplicateAPIToken != ""
}
