package host

import (
	"github.com/mkolar/ringout/internal/arena"
	"github.com/mkolar/ringout/internal/roster"
)

// CommandKind identifies a spectator control command.
type CommandKind int

const (
	CmdTogglePause CommandKind = iota
	CmdRestart
	CmdGapDelta
	CmdCycleTheme
	CmdRigRandom
	CmdClearRig
)

// Command is a control request queued into the loop goroutine.
type Command struct {
	Kind  CommandKind
	Delta int // For CmdGapDelta
}

// Elimination is one entry of the recent-eliminations ticker.
type Elimination struct {
	Entrant roster.Entrant `json:"entrant"`
	Tick    uint64         `json:"tick"`
}

// Placement is one row of the final (or provisional) standings.
// Rank 1 is the winner or, before a winner exists, the longest survivor.
type Placement struct {
	Rank       int            `json:"rank"`
	Entrant    roster.Entrant `json:"entrant"`
	Eliminated bool           `json:"eliminated"`
}

// Snapshot is the host-level view handed to spectators and feeds.
type Snapshot struct {
	MatchID    string         `json:"matchId"`
	Match      arena.Snapshot `json:"match"`
	Standings  []Placement    `json:"standings"`
	Recent     []Elimination  `json:"recent,omitempty"`
	Spectators int            `json:"spectators"`
}

// buildStandings orders entrants by how long they lasted: survivors first
// (winner on top when latched), then the eliminated in reverse order.
func (s *Server) buildStandings() []Placement {
	alive := s.match.AliveEntrants()

	standings := make([]Placement, 0, len(alive)+len(s.eliminated))
	rank := 1
	for _, e := range alive {
		standings = append(standings, Placement{Rank: rank, Entrant: e})
		rank++
	}
	for i := len(s.eliminated) - 1; i >= 0; i-- {
		standings = append(standings, Placement{Rank: rank, Entrant: s.eliminated[i], Eliminated: true})
		rank++
	}
	return standings
}
