package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Band        BandConfig        `toml:"band"`
	Credentials CredentialsConfig `toml:"credentials"`
	Server      ServerConfig      `toml:"server"`
	Limits      LimitsConfig      `toml:"limits"`
}

// BandConfig identifies the group the site is built around.
type BandConfig struct {
	Name    string `toml:"name"`
	Channel string `toml:"channel"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Cosmic  CosmicConfig  `toml:"cosmic"`
	Spotify SpotifyConfig `toml:"spotify"`
	YouTube YouTubeConfig `toml:"youtube"`
}

// CosmicConfig contains headless CMS bucket credentials.
type CosmicConfig struct {
	BucketSlug string `toml:"bucket_slug"`
	ReadKey    string `toml:"read_key"`
	WriteKey   string `toml:"write_key"`
}

// SpotifyConfig contains Spotify API credentials for the client-credentials flow.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// YouTubeConfig contains the YouTube Data API key.
type YouTubeConfig struct {
	APIKey string `toml:"api_key"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LimitsConfig contains outbound request throttling and timeout settings.
type LimitsConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Environment variables override file values so deployments can supply secrets without editing config.toml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config, with environment overrides applied.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overrides config fields from well-known environment variables.
func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{"BAND_NAME", &c.Band.Name},
		{"BAND_CHANNEL", &c.Band.Channel},
		{"COSMIC_BUCKET_SLUG", &c.Credentials.Cosmic.BucketSlug},
		{"COSMIC_READ_KEY", &c.Credentials.Cosmic.ReadKey},
		{"COSMIC_WRITE_KEY", &c.Credentials.Cosmic.WriteKey},
		{"SPOTIFY_CLIENT_ID", &c.Credentials.Spotify.ClientID},
		{"SPOTIFY_CLIENT_SECRET", &c.Credentials.Spotify.ClientSecret},
		{"YOUTUBE_API_KEY", &c.Credentials.YouTube.APIKey},
		{"HOST", &c.Server.Host},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.target = v
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}
