package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig_Timers(t *testing.T) {
	cfg := DefaultConfig()
	settings := cfg.ExerciseSettings()
	if settings.TwoMinute != 2*time.Minute {
		t.Errorf("expected two_minute 2m, got %v", settings.TwoMinute)
	}
	if settings.UrgeBreath != 90*time.Second {
		t.Errorf("expected urge_breath 90s, got %v", settings.UrgeBreath)
	}
	if settings.ResponseDelay != 5*time.Minute {
		t.Errorf("expected response_delay 5m, got %v", settings.ResponseDelay)
	}
}

func TestDefaultConfig_Mood(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mood.WindowDays != 7 {
		t.Errorf("expected window_days 7, got %d", cfg.Mood.WindowDays)
	}
	if cfg.Mood.InsightMinEntries != 3 {
		t.Errorf("expected insight_min_entries 3, got %d", cfg.Mood.InsightMinEntries)
	}
}

func TestBreathingClamp(t *testing.T) {
	b := DefaultConfig().Breathing
	tests := []struct {
		in, want int
	}{
		{1, 3},
		{3, 3},
		{4, 4},
		{6, 6},
		{9, 6},
	}
	for _, tt := range tests {
		if got := b.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoadFile_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calm", "config.toml")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if cfg.Storage.Engine != "sqlite" {
		t.Errorf("expected engine sqlite, got %q", cfg.Storage.Engine)
	}
	if time.Duration(cfg.Timers.UrgeBreath) != 90*time.Second {
		t.Errorf("expected urge_breath 90s after round trip, got %v", cfg.Timers.UrgeBreath)
	}
	home, _ := os.UserHomeDir()
	if cfg.Storage.DataDir != filepath.Join(home, ".calm") {
		t.Errorf("expected ~ to expand, got %q", cfg.Storage.DataDir)
	}
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("CALM_STORAGE_ENGINE", "json")
	t.Setenv("CALM_TIMERS_TWO_MINUTE", "3m")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Storage.Engine != "json" {
		t.Errorf("expected env engine json, got %q", cfg.Storage.Engine)
	}
	if time.Duration(cfg.Timers.TwoMinute) != 3*time.Minute {
		t.Errorf("expected env two_minute 3m, got %v", cfg.Timers.TwoMinute)
	}
}

func TestLoadFile_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { os.Unsetenv("CALM_MOOD_WINDOW_DAYS") })
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CALM_MOOD_WINDOW_DAYS=14\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Mood.WindowDays != 14 {
		t.Errorf("expected window_days 14 from .env, got %d", cfg.Mood.WindowDays)
	}
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := Set(path, "breathing.phase_seconds", "5"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Breathing.PhaseSeconds != 5 {
		t.Errorf("expected phase_seconds 5, got %d", cfg.Breathing.PhaseSeconds)
	}

	if err := Set(path, "no.such_key", "1"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := Set(path, "storage.engine", "postgres"); err == nil {
		t.Error("expected error for invalid engine")
	}
}

func TestValidate_ClampsPhase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Breathing.PhaseSeconds = 12
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Breathing.PhaseSeconds != 6 {
		t.Errorf("expected phase clamped to 6, got %d", cfg.Breathing.PhaseSeconds)
	}
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("keys not sorted at %d: %q > %q", i, keys[i-1], keys[i])
		}
	}
}
