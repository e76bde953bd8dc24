package constants

import "time"

// Riot enforces both limits on every key; the guard mirrors them locally so
// a burst never reaches the provider.
const (
	RateShortWindow = 10 * time.Second
	RateShortLimit  = 20
	RateLongWindow  = 120 * time.Second
	RateLongLimit   = 100
)

const (
	RecentMatchesLimit     = 20
	MatchDetailConcurrency = 4
	BadgeWindowSize        = 20
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	ReferenceDataTTL   = 24 * time.Hour
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)
