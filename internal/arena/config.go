// Package arena implements the battle-royale simulation core: a rotating
// ring boundary with a gap, a countdown into play, per-tick elimination of
// tokens that leave the arena, live ranking, and exactly-once winner
// finalization. Rigid-body motion is delegated to a physics.World.
package arena

import (
	"math"
	"time"

	"github.com/mkolar/ringout/internal/physics"
)

// Defaults for match configuration.
const (
	DefaultSegmentCount = 100
	DefaultGapSize      = 12
	DefaultEntrants     = 32

	// Countdown cadence and the delay between winner detection and the
	// terminal game-ended event (grace for victory visuals).
	DefaultCountdownInterval = 1200 * time.Millisecond
	DefaultWinnerGrace       = 3800 * time.Millisecond

	// Ranking snapshots are emitted every this many ticks to bound UI churn.
	DefaultRankingInterval = 15
)

// Config holds the per-match arena parameters. Supplied externally and
// treated as fixed for a match, except the gap size and theme which may be
// changed live (both force a boundary regeneration).
type Config struct {
	Width  float64 // World width; arena center is (Width/2, Height/2)
	Height float64

	Radius           float64 // Ring radius
	SegmentCount     int     // Angular slots around the ring
	GapSize          int     // Contiguous slots omitted to form the gap
	GapStartFraction float64 // Gap start as a fraction of the ring, [0,1)
	RotationStep     float64 // Radians the ring advances per tick

	Restitution float64 // Token bounciness, clamped to [0.4, 1.6]
	Friction    float64
	AirFriction float64

	TokenRadius float64
	RectTokens  bool    // Rectangular tokens instead of circles
	RectAspect  float64 // Width/height ratio for rect tokens

	Gravity          float64 // Base downward acceleration, units/s²
	HoldGravityScale float64 // Near-weightless hold during countdown
	PlayGravityScale float64 // Soft-launch scale once playing

	// OutOfBoundsRadius is the elimination distance from center. Tokens that
	// instead slip past the ring plane are caught by the fall-through line
	// at Height + TokenRadius*4.
	OutOfBoundsRadius float64

	CountdownFrom     int
	CountdownInterval time.Duration
	RankingInterval   int
	WinnerGrace       time.Duration

	Theme        string // Cosmetic only; colors, never simulation math
	TargetWinner string // Entrant code protected from elimination; "" = off
}

// DefaultConfig returns a playable baseline configuration.
func DefaultConfig() Config {
	return Config{
		Width:             1000,
		Height:            1000,
		Radius:            420,
		SegmentCount:      DefaultSegmentCount,
		GapSize:           DefaultGapSize,
		GapStartFraction:  0.75,
		RotationStep:      0.008,
		Restitution:       1.0,
		Friction:          0.05,
		AirFriction:       0.08,
		TokenRadius:       11,
		RectAspect:        1.6,
		Gravity:           500,
		HoldGravityScale:  0.02,
		PlayGravityScale:  0.35,
		OutOfBoundsRadius: 540,
		CountdownFrom:     3,
		CountdownInterval: DefaultCountdownInterval,
		RankingInterval:   DefaultRankingInterval,
		WinnerGrace:       DefaultWinnerGrace,
		Theme:             "classic",
	}
}

// normalized clamps malformed values instead of rejecting them; the arena is
// fully regenerable on restart, so bad config degrades rather than fails.
func (c Config) normalized() Config {
	if c.Width <= 0 {
		c.Width = 1000
	}
	if c.Height <= 0 {
		c.Height = 1000
	}
	if c.Radius <= 0 {
		c.Radius = math.Min(c.Width, c.Height) * 0.42
	}
	if c.SegmentCount < 1 {
		c.SegmentCount = DefaultSegmentCount
	}
	if c.GapSize < 0 {
		c.GapSize = 0
	}
	c.GapStartFraction = c.GapStartFraction - math.Floor(c.GapStartFraction)

	if c.Restitution < 0.4 {
		c.Restitution = 0.4
	} else if c.Restitution > 1.6 {
		c.Restitution = 1.6
	}
	if c.Friction < 0 {
		c.Friction = 0
	}
	if c.AirFriction < 0 {
		c.AirFriction = 0
	}

	if c.TokenRadius <= 0 {
		c.TokenRadius = 11
	}
	if c.RectAspect <= 0 {
		c.RectAspect = 1.6
	}
	if c.Gravity <= 0 {
		c.Gravity = 500
	}
	if c.HoldGravityScale <= 0 {
		c.HoldGravityScale = 0.02
	}
	if c.PlayGravityScale <= 0 {
		c.PlayGravityScale = 0.35
	}
	if c.OutOfBoundsRadius <= c.Radius {
		c.OutOfBoundsRadius = c.Radius * 1.3
	}
	if c.CountdownFrom < 1 {
		c.CountdownFrom = 3
	}
	if c.CountdownInterval <= 0 {
		c.CountdownInterval = DefaultCountdownInterval
	}
	if c.RankingInterval < 1 {
		c.RankingInterval = DefaultRankingInterval
	}
	if c.WinnerGrace <= 0 {
		c.WinnerGrace = DefaultWinnerGrace
	}
	return c
}

// center returns the arena center point.
func (c Config) center() physics.Vec2 {
	return physics.Vec2{X: c.Width / 2, Y: c.Height / 2}
}

// fallThroughY is the vertical line past which tokens count as fallen out,
// covering bodies that tunnel through the ring plane.
func (c Config) fallThroughY() float64 {
	return c.Height + c.TokenRadius*4
}
