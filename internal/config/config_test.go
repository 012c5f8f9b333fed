package config

import (
	"testing"
	"time"
)

func TestLoadTuningDefaults(t *testing.T) {
	got := loadTuning()

	if got.ReliableSampleDays != 3 {
		t.Errorf("ReliableSampleDays = %d, want 3", got.ReliableSampleDays)
	}
	if got.DefaultPacePerDay != 25 {
		t.Errorf("DefaultPacePerDay = %v, want 25", got.DefaultPacePerDay)
	}
	if got.UrgentDays != 7 || got.ApproachingDays != 14 {
		t.Errorf("Urgency thresholds = %d/%d, want 7/14", got.UrgentDays, got.ApproachingDays)
	}
}

func TestLoadTuningEnvOverrides(t *testing.T) {
	t.Setenv("URGENT_DAYS", "3")
	t.Setenv("DEFAULT_PACE_PER_DAY", "40")
	t.Setenv("HEATMAP_WEEKS", "not-a-number") // ignored, keeps the default

	got := loadTuning()

	if got.UrgentDays != 3 {
		t.Errorf("UrgentDays = %d, want override 3", got.UrgentDays)
	}
	if got.DefaultPacePerDay != 40 {
		t.Errorf("DefaultPacePerDay = %v, want override 40", got.DefaultPacePerDay)
	}
	if got.HeatmapWeeks != 12 {
		t.Errorf("HeatmapWeeks = %d, want default 12 on a bad value", got.HeatmapWeeks)
	}
}

func TestLoadBackendConfig(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("BACKEND_URL", "https://example.test")
	t.Setenv("BACKEND_TOKEN", "tok")
	t.Setenv("BACKEND_REQUEST_DELAY_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Backend.BaseURL != "https://example.test" {
		t.Errorf("BaseURL = %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.RequestDelay != 5*time.Second {
		t.Errorf("RequestDelay = %v, want 5s", cfg.Backend.RequestDelay)
	}
}
