package arena

import (
	"fmt"

	"github.com/mkolar/ringout/internal/physics"
	"github.com/mkolar/ringout/internal/roster"
)

// EventKind identifies the type of a match event.
type EventKind int

const (
	EventCountdownTick EventKind = iota
	EventActiveRanking
	EventEliminated
	EventWinnerDetected
	EventGameEnded
)

var eventKindNames = [...]string{
	EventCountdownTick:  "countdown",
	EventActiveRanking:  "ranking",
	EventEliminated:     "eliminated",
	EventWinnerDetected: "winner",
	EventGameEnded:      "ended",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// MarshalJSON emits the kind as its string name for feed consumers.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// RankEntry is one row of a ranking snapshot. Rank 1 is closest to center.
type RankEntry struct {
	Entrant  roster.Entrant `json:"entrant"`
	Distance float64        `json:"distance"`
}

// Event is the tagged variant pushed onto the match's output queue. Only the
// fields relevant to Kind are populated:
//
//	countdown:  Countdown (3..0)
//	ranking:    Ranking
//	eliminated: Entrant, Position (last known), ColorHint
//	winner:     Entrant
//	ended:      Entrant
type Event struct {
	Kind      EventKind      `json:"kind"`
	Tick      uint64         `json:"tick"`
	Countdown int            `json:"countdown,omitempty"`
	Ranking   []RankEntry    `json:"ranking,omitempty"`
	Entrant   roster.Entrant `json:"entrant,omitempty"`
	Position  physics.Vec2   `json:"position,omitempty"`
	ColorHint string         `json:"colorHint,omitempty"`
}

// emit appends an event to the output queue.
func (m *Match) emit(ev Event) {
	ev.Tick = m.tick
	m.events = append(m.events, ev)
}

// DrainEvents returns all queued events and clears the queue. The external
// layer calls this once per frame; nothing in the core blocks on consumers.
func (m *Match) DrainEvents() []Event {
	evs := m.events
	m.events = nil
	return evs
}
