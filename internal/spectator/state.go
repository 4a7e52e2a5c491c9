package spectator

import "time"

// Mode is the spectator's screen mode.
type Mode int

const (
	ModeWatching Mode = iota // Live arena view
	ModeSummary              // Post-match standings
	ModeShutdown             // Server is going away
)

// Rendering limits and cadence.
const (
	TargetFPS       = 30
	TargetFrameTime = time.Second / TargetFPS

	// Max render resolution; larger terminals get a centered canvas.
	MaxTermWidth  = 190
	MaxTermHeight = 100

	// Seconds the shutdown notice stays up before auto-disconnect.
	ShutdownDisplaySeconds = 8.0

	// Seconds an announcement banner stays on screen.
	announceSeconds = 3.0
)

// State holds per-spectator view state.
type State struct {
	Mode          Mode
	Running       bool
	Announce      string  // Transient banner (winner, rig notices)
	AnnounceTTL   float64 // Seconds remaining for the banner
	prevMode      Mode
	delta         time.Duration
	shutdownTimer float64
}

// NewState creates an initialized spectator state.
func NewState() *State {
	return &State{
		Mode:     ModeWatching,
		prevMode: -1, // Force a full clear on the first frame
		Running:  true,
	}
}
