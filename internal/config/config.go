// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Malformed-game policy values accepted by the rating engine. The policy is
// an explicit configuration choice: either a whole recompute fails on the
// first bad game, or bad games are skipped and logged.
const (
	PolicyStrict = "strict"
	PolicySkip   = "skip"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DBPath is the sqlite database file holding players, games and ratings.
	DBPath string `koanf:"db_path"`

	// MalformedGamePolicy selects strict or skip handling of bad game rows.
	MalformedGamePolicy string `koanf:"malformed_game_policy"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// RecomputeOnStart triggers a full rating recompute during startup.
	RecomputeOnStart bool `koanf:"recompute_on_start"`

	// ImportDedupeSize bounds the duplicate-row cache used by the importer.
	ImportDedupeSize int `koanf:"import_dedupe_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DBPath:              "riichirank.db",
		MalformedGamePolicy: PolicySkip,
		MaxLeaderboardLimit: 500,
		RecomputeOnStart:    true,
		ImportDedupeSize:    100_000,
	}
}
