package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"shelfpace/internal/analytics"
	"shelfpace/internal/backend"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Backend  backend.Config
	Tuning   analytics.Tuning
	DataPath string
	LogDir   string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	delaySecs, _ := strconv.Atoi(getEnv("BACKEND_REQUEST_DELAY_SECONDS", "2"))

	cfg := &AppConfig{
		Backend: backend.Config{
			BaseURL:      getEnv("BACKEND_URL", ""),
			Token:        getEnv("BACKEND_TOKEN", ""),
			RequestDelay: time.Duration(delaySecs) * time.Second,
		},
		Tuning:   loadTuning(),
		DataPath: dataPath,
		LogDir:   logDir,
	}

	return cfg, nil
}

// loadTuning starts from the engine defaults and applies env overrides, so
// the analytics constants stay named and adjustable without code changes.
func loadTuning() analytics.Tuning {
	t := analytics.DefaultTuning()
	t.ReliableSampleDays = getEnvInt("RELIABLE_SAMPLE_DAYS", t.ReliableSampleDays)
	t.DefaultPacePerDay = float64(getEnvInt("DEFAULT_PACE_PER_DAY", int(t.DefaultPacePerDay)))
	t.PaceWindowDays = getEnvInt("PACE_WINDOW_DAYS", t.PaceWindowDays)
	t.UrgentDays = getEnvInt("URGENT_DAYS", t.UrgentDays)
	t.ApproachingDays = getEnvInt("APPROACHING_DAYS", t.ApproachingDays)
	t.HeatmapWeeks = getEnvInt("HEATMAP_WEEKS", t.HeatmapWeeks)
	t.HeatmapMinActiveDays = getEnvInt("HEATMAP_MIN_ACTIVE_DAYS", t.HeatmapMinActiveDays)
	t.StreakMinDates = getEnvInt("STREAK_MIN_DATES", t.StreakMinDates)
	return t
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
