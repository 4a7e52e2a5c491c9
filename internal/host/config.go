package host

import (
	"github.com/mkolar/ringout/internal/arena"
	"github.com/mkolar/ringout/internal/config"
)

// ConfigFromEnv builds the arena configuration from ARENA_* environment
// variables, falling back to the defaults. Malformed values fall back too;
// arena.Config normalization clamps whatever still comes through out of range.
func ConfigFromEnv() arena.Config {
	cfg := arena.DefaultConfig()
	cfg.SegmentCount = config.GetEnvInt("ARENA_SEGMENTS", cfg.SegmentCount)
	cfg.GapSize = config.GetEnvInt("ARENA_GAP", cfg.GapSize)
	cfg.RotationStep = config.GetEnvFloat("ARENA_ROTATION_STEP", cfg.RotationStep)
	cfg.Restitution = config.GetEnvFloat("ARENA_RESTITUTION", cfg.Restitution)
	cfg.TokenRadius = config.GetEnvFloat("ARENA_TOKEN_RADIUS", cfg.TokenRadius)
	cfg.RectTokens = config.GetEnvBool("ARENA_RECT_TOKENS", cfg.RectTokens)
	cfg.Theme = config.GetEnv("ARENA_THEME", cfg.Theme)
	cfg.TargetWinner = config.GetEnv("ARENA_TARGET_WINNER", cfg.TargetWinner)
	return cfg
}

// EntrantsFromEnv returns the configured entrant count.
func EntrantsFromEnv() int {
	return config.GetEnvInt("ARENA_ENTRANTS", arena.DefaultEntrants)
}
