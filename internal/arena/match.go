package arena

import (
	"math"
	"math/rand"
	"time"

	"github.com/mkolar/ringout/internal/physics"
	"github.com/mkolar/ringout/internal/roster"
)

// Phase is the match lifecycle state.
type Phase int

const (
	PhaseStarting Phase = iota // Countdown running, arena on hold gravity
	PhasePlaying               // Ring rotating, eliminations live
	PhaseFinished              // Winner finalized (or no survivors)
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Token is the physical body standing in for one entrant.
type Token struct {
	Body    physics.BodyID
	Entrant roster.Entrant
}

// Match owns all simulation state for one battle royale round. There are no
// package-level globals; everything hangs off this struct and is mutated
// only inside Tick and the explicit control methods, all called from the
// host's single loop goroutine.
type Match struct {
	cfg   Config
	world physics.World
	now   func() time.Time
	theme roster.Theme

	entrants []roster.Entrant // Initial lineup, kept for restarts

	phase    Phase
	paused   bool
	pausedAt time.Time

	rotation float64
	segments []segment
	gapStart int

	tokens map[physics.BodyID]*Token
	order  []physics.BodyID // Creation order, for deterministic iteration

	targetWinner string

	// Countdown deadline state. countdownNextAt is zero when inactive;
	// overwriting it on restart is all the cancellation there is.
	countdownValue  int
	countdownNextAt time.Time

	// Winner finalization. hasEnded guards the one-shot transition; the
	// delayed game-ended emission is a deadline, not a timer callback.
	hasEnded         bool
	winner           *Token
	noWinner         bool
	victoryStartedAt time.Time
	gameEndAt        time.Time
	gameEndEmitted   bool

	tick        uint64
	events      []Event
	lastRanking []RankEntry
}

// Option configures a Match.
type Option func(*Match)

// WithClock substitutes the monotonic clock used for countdown and
// game-end deadlines. Tests drive this instead of sleeping.
func WithClock(now func() time.Time) Option {
	return func(m *Match) {
		m.now = now
	}
}

// New creates a match with the given entrants and starts its countdown.
func New(cfg Config, world physics.World, entrants []roster.Entrant, opts ...Option) *Match {
	m := &Match{
		cfg:          cfg.normalized(),
		world:        world,
		now:          time.Now,
		entrants:     entrants,
		targetWinner: cfg.TargetWinner,
	}
	m.theme = roster.ThemeByName(m.cfg.Theme)
	for _, opt := range opts {
		opt(m)
	}
	m.start()
	return m
}

// start (re)initializes the world: tokens, boundary, countdown. Any bodies
// from a previous round are destroyed first.
func (m *Match) start() {
	for id := range m.tokens {
		m.world.RemoveBody(id)
	}
	for _, s := range m.segments {
		m.world.RemoveBody(s.body)
	}
	m.segments = m.segments[:0]

	m.phase = PhaseStarting
	m.paused = false
	m.rotation = 0
	m.tokens = make(map[physics.BodyID]*Token, len(m.entrants))
	m.order = m.order[:0]
	m.hasEnded = false
	m.winner = nil
	m.noWinner = false
	m.victoryStartedAt = time.Time{}
	m.gameEndAt = time.Time{}
	m.gameEndEmitted = false
	m.tick = 0
	m.events = nil
	m.lastRanking = nil

	m.world.SetGravityScale(m.cfg.HoldGravityScale)
	m.spawnTokens()
	m.generateBoundary()

	// Emit the first countdown value immediately, not after the first delay.
	m.countdownValue = m.cfg.CountdownFrom
	m.countdownNextAt = m.now().Add(m.cfg.CountdownInterval)
	m.emit(Event{Kind: EventCountdownTick, Countdown: m.countdownValue})
}

// spawnTokens creates one body per entrant, scattered around the center with
// a gentle random drift so the pile loosens up during the countdown.
func (m *Match) spawnTokens() {
	center := m.cfg.center()
	mat := physics.Material{
		Restitution: m.cfg.Restitution,
		Friction:    m.cfg.Friction,
		AirFriction: m.cfg.AirFriction,
	}

	var shape physics.Shape
	if m.cfg.RectTokens {
		h := m.cfg.TokenRadius * 2
		shape = physics.Rect(h*m.cfg.RectAspect, h)
	} else {
		shape = physics.Circle(m.cfg.TokenRadius)
	}

	spread := m.cfg.Radius * 0.55
	for _, entrant := range m.entrants {
		ang := rand.Float64() * 2 * math.Pi
		dist := math.Sqrt(rand.Float64()) * spread
		pos := center.Add(physics.Vec2{X: math.Cos(ang) * dist, Y: math.Sin(ang) * dist})

		id := m.world.CreateBody(shape, pos, mat, false)
		m.world.SetVelocity(id, physics.Vec2{
			X: (rand.Float64() - 0.5) * 30,
			Y: (rand.Float64() - 0.5) * 30,
		})

		m.tokens[id] = &Token{Body: id, Entrant: entrant}
		m.order = append(m.order, id)
	}
}

// Tick advances the match one simulation step. The whole tick is skipped
// while paused, including physics stepping, so bodies do not drift.
func (m *Match) Tick() {
	if m.paused {
		return
	}
	now := m.now()

	m.advanceCountdown(now)

	if m.phase == PhaseFinished {
		return
	}

	m.world.Step()

	if m.phase != PhasePlaying {
		return
	}
	m.tick++

	if !m.hasEnded {
		m.advanceRotation()
		m.runEliminations()
		if m.tick%uint64(m.cfg.RankingInterval) == 0 {
			m.emitRanking()
		}
	}

	m.checkWinner(now)
}

// SetPaused suspends or resumes the match. Deadlines are shifted by the
// pause duration rather than reset, so a paused countdown resumes from the
// same value.
func (m *Match) SetPaused(paused bool) {
	if paused == m.paused {
		return
	}
	now := m.now()
	if paused {
		m.paused = true
		m.pausedAt = now
		return
	}

	held := now.Sub(m.pausedAt)
	if !m.countdownNextAt.IsZero() {
		m.countdownNextAt = m.countdownNextAt.Add(held)
	}
	if !m.gameEndAt.IsZero() && !m.gameEndEmitted {
		m.gameEndAt = m.gameEndAt.Add(held)
	}
	if !m.victoryStartedAt.IsZero() {
		m.victoryStartedAt = m.victoryStartedAt.Add(held)
	}
	m.paused = false
}

// Paused reports whether the match is currently suspended.
func (m *Match) Paused() bool {
	return m.paused
}

// Restart tears the round down and begins a fresh one with the same lineup.
// Pending countdown and game-end deadlines are overwritten, which is all the
// cancellation the deadline model needs.
func (m *Match) Restart() {
	m.start()
}

// SetTargetWinner sets (or clears, with "") the rigged entrant. The token is
// rescued instead of eliminated while at least one other token survives.
func (m *Match) SetTargetWinner(code string) {
	m.targetWinner = code
}

// TargetWinner returns the rigged entrant code, or "".
func (m *Match) TargetWinner() string {
	return m.targetWinner
}

// SetGapSize changes the ring gap and regenerates the boundary. Values below
// zero clamp to zero; values at or above the segment count legally produce a
// fully open ring.
func (m *Match) SetGapSize(gap int) {
	if gap < 0 {
		gap = 0
	}
	if gap == m.cfg.GapSize {
		return
	}
	m.cfg.GapSize = gap
	m.generateBoundary()
}

// GapSize returns the current ring gap in slots.
func (m *Match) GapSize() int {
	return m.cfg.GapSize
}

// SetTheme switches the cosmetic theme. The boundary is regenerated per the
// shape/theme-change rule even though the physics math is unchanged.
func (m *Match) SetTheme(name string) {
	t := roster.ThemeByName(name)
	if t.Name == m.theme.Name {
		return
	}
	m.theme = t
	m.generateBoundary()
}

// Theme returns the active theme.
func (m *Match) Theme() roster.Theme {
	return m.theme
}

// Phase returns the current lifecycle phase.
func (m *Match) Phase() Phase {
	return m.phase
}

// AliveCount returns the number of live tokens.
func (m *Match) AliveCount() int {
	return len(m.tokens)
}

// AliveEntrants returns the entrants still in the arena, in creation order.
func (m *Match) AliveEntrants() []roster.Entrant {
	out := make([]roster.Entrant, 0, len(m.tokens))
	for _, id := range m.order {
		if tok, ok := m.tokens[id]; ok {
			out = append(out, tok.Entrant)
		}
	}
	return out
}

// checkWinner runs the winner/no-winner detection. The hasEnded flag makes
// finalization idempotent even though the one-token condition is observed on
// a tick cadence.
func (m *Match) checkWinner(now time.Time) {
	if !m.hasEnded {
		switch len(m.tokens) {
		case 1:
			var tok *Token
			for _, t := range m.tokens {
				tok = t
			}
			m.hasEnded = true
			m.winner = tok
			m.world.SetStatic(tok.Body, true)
			m.victoryStartedAt = now
			m.gameEndAt = now.Add(m.cfg.WinnerGrace)
			m.emit(Event{Kind: EventWinnerDetected, Entrant: tok.Entrant})
		case 0:
			// Simultaneous mutual elimination: the match resolves with no
			// winner and no winner/ended events.
			m.hasEnded = true
			m.noWinner = true
			m.phase = PhaseFinished
		}
	}

	if m.hasEnded && m.winner != nil && !m.gameEndEmitted && !now.Before(m.gameEndAt) {
		m.gameEndEmitted = true
		m.phase = PhaseFinished
		m.emit(Event{Kind: EventGameEnded, Entrant: m.winner.Entrant})
	}
}

// victoryProgress returns the 0..1 growth of the victory animation.
func (m *Match) victoryProgress(now time.Time) float64 {
	if m.winner == nil {
		return 0
	}
	p := float64(now.Sub(m.victoryStartedAt)) / float64(m.cfg.WinnerGrace)
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return p
}
