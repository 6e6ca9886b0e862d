package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration, parsed from the environment.
type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	AWSRegion      string `env:"AWS_REGION"`
	S3Bucket       string `env:"S3_BUCKET_NAME"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	// Directions API
	GoogleMapsAPIKey string `env:"GOOGLE_MAPS_API_KEY"`

	// Matching policy
	NearbyRadiusKm     float64       `env:"NEARBY_RADIUS_KM" envDefault:"3"`
	NearbyPollInterval time.Duration `env:"NEARBY_POLL_INTERVAL" envDefault:"10s"`

	// Auto-completion policy: two parties within MeetThresholdKm are presumed
	// to have met; MeetDedupWindow suppresses duplicate completions from
	// repeated location pings.
	MeetThresholdKm float64       `env:"MEET_THRESHOLD_KM" envDefault:"0.005"`
	MeetDedupWindow time.Duration `env:"MEET_DEDUP_WINDOW" envDefault:"5m"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
