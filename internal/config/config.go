package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	RiotAPIKey string

	// Account and match endpoints live on the regional routing host, league
	// endpoints on the platform host.
	RegionalURL string
	PlatformURL string

	DataDragonURL     string
	DataDragonVersion string
	DataDragonLocale  string

	DBPath           string
	ServerPort       string
	ReferenceDataTTL time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey:        getEnv("RIOT_API_KEY", ""),
		RegionalURL:       getEnv("RIOT_REGIONAL_URL", "https://asia.api.riotgames.com"),
		PlatformURL:       getEnv("RIOT_PLATFORM_URL", "https://kr.api.riotgames.com"),
		DataDragonURL:     getEnv("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com/cdn"),
		DataDragonVersion: getEnv("DDRAGON_VERSION", "15.17.1"),
		DataDragonLocale:  getEnv("DDRAGON_LOCALE", "en_US"),
		DBPath:            getEnv("DB_PATH", "tftrivals.db"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		ReferenceDataTTL:  24 * time.Hour,
	}

	if ttl := os.Getenv("REFERENCE_DATA_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid REFERENCE_DATA_TTL: %w", err)
		}
		cfg.ReferenceDataTTL = d
	}

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}

	logger.Info().
		Str("regional_url", cfg.RegionalURL).
		Str("platform_url", cfg.PlatformURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Dur("reference_data_ttl", cfg.ReferenceDataTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
