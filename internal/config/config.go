// Package config loads the assistant configuration from defaults, an
// optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/koscakluka/aeris/core/actions/aircraft"
)

type Config struct {
	Deepgram  DeepgramConfig  `mapstructure:"deepgram"`
	Groq      GroqConfig      `mapstructure:"groq"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Wake      WakeConfig      `mapstructure:"wake"`
	Memory    MemoryConfig    `mapstructure:"memory"`
	Aircraft  AircraftConfig  `mapstructure:"aircraft"`
	Apps      AppsConfig      `mapstructure:"apps"`
	Messaging MessagingConfig `mapstructure:"messaging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type DeepgramConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	Language string `mapstructure:"language"`
	Voice    string `mapstructure:"voice"`
}

type GroqConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type AudioConfig struct {
	// Backend is "miniaudio" or "portaudio".
	Backend        string        `mapstructure:"backend"`
	BufferSize     int           `mapstructure:"buffer_size"`
	CaptureTimeout time.Duration `mapstructure:"capture_timeout"`
}

type WakeConfig struct {
	Aliases []string `mapstructure:"aliases"`
}

type MemoryConfig struct {
	FactsPath    string `mapstructure:"facts_path"`
	HistoryLines int    `mapstructure:"history_lines"`
	MaxHistory   int    `mapstructure:"max_history"`
}

type AircraftConfig struct {
	Position   aircraft.Position `mapstructure:"position"`
	RadiusKM   float64           `mapstructure:"radius_km"`
	OpenSkyURL string            `mapstructure:"opensky_url"`
}

type AppsConfig struct {
	// Launcher is the command apps are opened with; the app name is
	// appended as the last argument.
	Launcher []string `mapstructure:"launcher"`
}

type MessagingConfig struct {
	Contacts map[string]string `mapstructure:"contacts"`
	Telegram TokenConfig       `mapstructure:"telegram"`
	Discord  TokenConfig       `mapstructure:"discord"`
	Slack    TokenConfig       `mapstructure:"slack"`
}

type TokenConfig struct {
	Token string `mapstructure:"token"`
}

type MetricsConfig struct {
	// Addr serves /metrics when set, e.g. ":9464".
	Addr string `mapstructure:"addr"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Deepgram: DeepgramConfig{
			Model:    "nova-3",
			Language: "en-US",
			Voice:    "aura-2-orion-en",
		},
		Groq: GroqConfig{
			Model: "llama-3.3-70b-versatile",
		},
		Audio: AudioConfig{
			Backend:        "miniaudio",
			BufferSize:     512,
			CaptureTimeout: 8 * time.Second,
		},
		Memory: MemoryConfig{
			FactsPath:    filepath.Join(configDir(), "facts.db"),
			HistoryLines: 6,
			MaxHistory:   20,
		},
		Aircraft: AircraftConfig{
			Position:   aircraft.DefaultPosition,
			RadiusKM:   200,
			OpenSkyURL: "https://opensky-network.org/api",
		},
	}
}

// Load reads configPath, or config.yaml from the working directory and
// ~/.config/aeris when configPath is empty. Environment variables prefixed
// with AERIS_ override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AERIS")
	v.AutomaticEnv()
	_ = v.BindEnv("deepgram.api_key", "AERIS_DEEPGRAM_API_KEY", "DEEPGRAM_API_KEY")
	_ = v.BindEnv("groq.api_key", "AERIS_GROQ_API_KEY", "GROQ_API_KEY")
	_ = v.BindEnv("messaging.telegram.token", "AERIS_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("messaging.discord.token", "AERIS_DISCORD_TOKEN", "DISCORD_BOT_TOKEN")
	_ = v.BindEnv("messaging.slack.token", "AERIS_SLACK_TOKEN", "SLACK_BOT_TOKEN")
	_ = v.BindEnv("metrics.addr", "AERIS_METRICS_ADDR")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir())
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the assistant cannot start with.
func (c *Config) Validate() error {
	switch c.Audio.Backend {
	case "miniaudio", "portaudio":
	default:
		return fmt.Errorf("invalid audio backend: %s (must be miniaudio or portaudio)", c.Audio.Backend)
	}
	if c.Audio.BufferSize <= 0 {
		return fmt.Errorf("audio buffer size must be positive")
	}
	if c.Memory.HistoryLines < 0 {
		return fmt.Errorf("memory history lines must not be negative")
	}
	return nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "aeris")
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("deepgram.api_key", "")
	v.SetDefault("deepgram.model", defaults.Deepgram.Model)
	v.SetDefault("deepgram.language", defaults.Deepgram.Language)
	v.SetDefault("deepgram.voice", defaults.Deepgram.Voice)
	v.SetDefault("groq.api_key", "")
	v.SetDefault("groq.model", defaults.Groq.Model)
	v.SetDefault("audio.backend", defaults.Audio.Backend)
	v.SetDefault("audio.buffer_size", defaults.Audio.BufferSize)
	v.SetDefault("audio.capture_timeout", defaults.Audio.CaptureTimeout)
	v.SetDefault("wake.aliases", []string{})
	v.SetDefault("memory.facts_path", defaults.Memory.FactsPath)
	v.SetDefault("memory.history_lines", defaults.Memory.HistoryLines)
	v.SetDefault("memory.max_history", defaults.Memory.MaxHistory)
	v.SetDefault("aircraft.position.lat", defaults.Aircraft.Position.Lat)
	v.SetDefault("aircraft.position.lon", defaults.Aircraft.Position.Lon)
	v.SetDefault("aircraft.radius_km", defaults.Aircraft.RadiusKM)
	v.SetDefault("aircraft.opensky_url", defaults.Aircraft.OpenSkyURL)
	v.SetDefault("apps.launcher", []string{})
	v.SetDefault("messaging.telegram.token", "")
	v.SetDefault("messaging.discord.token", "")
	v.SetDefault("messaging.slack.token", "")
	v.SetDefault("metrics.addr", "")
}
