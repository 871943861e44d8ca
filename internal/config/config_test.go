package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected an error for an explicit missing config file, got %+v", cfg)
	}

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Audio.Backend != "miniaudio" {
		t.Fatalf("expected miniaudio backend, got %q", cfg.Audio.Backend)
	}
	if cfg.Audio.CaptureTimeout != 8*time.Second {
		t.Fatalf("expected 8s capture timeout, got %v", cfg.Audio.CaptureTimeout)
	}
	if cfg.Memory.HistoryLines != 6 {
		t.Fatalf("expected 6 history lines, got %d", cfg.Memory.HistoryLines)
	}
	if cfg.Aircraft.RadiusKM != 200 {
		t.Fatalf("expected 200km radius, got %v", cfg.Aircraft.RadiusKM)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aeris.yaml")
	content := `
deepgram:
  api_key: from-file
  voice: aura-asteria-en
audio:
  backend: portaudio
  capture_timeout: 5s
wake:
  aliases: [jarvis, jervis]
aircraft:
  position:
    lat: 45.8
    lon: 15.97
messaging:
  contacts:
    mom: "12345"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "from-env")
	t.Setenv("AERIS_METRICS_ADDR", ":9464")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Deepgram.APIKey != "from-file" {
		t.Fatalf("expected file api key, got %q", cfg.Deepgram.APIKey)
	}
	if cfg.Deepgram.Voice != "aura-asteria-en" {
		t.Fatalf("expected asteria voice, got %q", cfg.Deepgram.Voice)
	}
	if cfg.Deepgram.Model != "nova-3" {
		t.Fatalf("expected default model to survive, got %q", cfg.Deepgram.Model)
	}
	if cfg.Groq.APIKey != "from-env" {
		t.Fatalf("expected env api key, got %q", cfg.Groq.APIKey)
	}
	if cfg.Metrics.Addr != ":9464" {
		t.Fatalf("expected metrics addr from env, got %q", cfg.Metrics.Addr)
	}
	if cfg.Audio.Backend != "portaudio" || cfg.Audio.CaptureTimeout != 5*time.Second {
		t.Fatalf("unexpected audio config: %+v", cfg.Audio)
	}
	if len(cfg.Wake.Aliases) != 2 || cfg.Wake.Aliases[0] != "jarvis" {
		t.Fatalf("unexpected aliases: %v", cfg.Wake.Aliases)
	}
	if cfg.Aircraft.Position.Lat != 45.8 || cfg.Aircraft.Position.Lon != 15.97 {
		t.Fatalf("unexpected position: %+v", cfg.Aircraft.Position)
	}
	if cfg.Messaging.Contacts["mom"] != "12345" {
		t.Fatalf("unexpected contacts: %v", cfg.Messaging.Contacts)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audio.Backend = "alsa"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown backend to be rejected")
	}

	cfg = DefaultConfig()
	cfg.Audio.BufferSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected zero buffer size to be rejected")
	}
}
