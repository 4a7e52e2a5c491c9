package arena

import (
	"math"

	"github.com/mkolar/ringout/internal/physics"
	"github.com/mkolar/ringout/internal/roster"
)

// TokenView is a render-ready view of one live token.
type TokenView struct {
	Entrant roster.Entrant `json:"entrant"`
	Pos     physics.Vec2   `json:"pos"`
	Angle   float64        `json:"angle"`
	Radius  float64        `json:"radius"`
	Rect    bool           `json:"rect,omitempty"`
	W       float64        `json:"w,omitempty"`
	H       float64        `json:"h,omitempty"`
	Winner  bool           `json:"winner,omitempty"`
}

// SegmentView is a render-ready view of one boundary segment.
type SegmentView struct {
	Pos    physics.Vec2 `json:"pos"`
	Angle  float64      `json:"angle"`
	Length float64      `json:"length"`
}

// Snapshot is an immutable view of the match for rendering and feeds.
type Snapshot struct {
	Phase           Phase         `json:"-"`
	PhaseName       string        `json:"phase"`
	Paused          bool          `json:"paused"`
	Tick            uint64        `json:"tick"`
	Countdown       int           `json:"countdown"` // -1 when not counting
	Rotation        float64       `json:"rotation"`
	Center          physics.Vec2  `json:"center"`
	Radius          float64       `json:"radius"`
	GapSize         int           `json:"gapSize"`
	Theme           roster.Theme  `json:"theme"`
	TargetWinner    string        `json:"targetWinner,omitempty"`
	AliveCount      int           `json:"aliveCount"`
	Tokens          []TokenView   `json:"tokens"`
	Segments        []SegmentView `json:"segments"`
	Ranking         []RankEntry   `json:"ranking,omitempty"`
	Winner          string        `json:"winner,omitempty"` // Entrant code
	WinnerName      string        `json:"winnerName,omitempty"`
	NoWinner        bool          `json:"noWinner,omitempty"`
	VictoryProgress float64       `json:"victoryProgress,omitempty"`
}

// Snapshot builds a view of the current match state. Safe to hand to other
// goroutines; nothing in it aliases live simulation state.
func (m *Match) Snapshot() Snapshot {
	now := m.now()

	snap := Snapshot{
		Phase:           m.phase,
		PhaseName:       m.phase.String(),
		Paused:          m.paused,
		Tick:            m.tick,
		Countdown:       m.CountdownValue(),
		Rotation:        m.rotation,
		Center:          m.cfg.center(),
		Radius:          m.cfg.Radius,
		GapSize:         m.cfg.GapSize,
		Theme:           m.theme,
		TargetWinner:    m.targetWinner,
		AliveCount:      len(m.tokens),
		NoWinner:        m.noWinner,
		VictoryProgress: m.victoryProgress(now),
	}
	if m.winner != nil {
		snap.Winner = m.winner.Entrant.Code
		snap.WinnerName = m.winner.Entrant.Name
	}

	snap.Tokens = make([]TokenView, 0, len(m.order))
	for _, id := range m.order {
		tok, ok := m.tokens[id]
		if !ok {
			continue
		}
		bs, ok := m.world.Body(id)
		if !ok {
			continue
		}
		tv := TokenView{
			Entrant: tok.Entrant,
			Pos:     bs.Pos,
			Angle:   bs.Angle,
			Radius:  m.cfg.TokenRadius,
			Winner:  m.winner == tok,
		}
		if bs.Shape.Kind == physics.ShapeRect {
			tv.Rect = true
			tv.W = bs.Shape.W
			tv.H = bs.Shape.H
			tv.Radius = math.Hypot(bs.Shape.W, bs.Shape.H) / 2
		}
		snap.Tokens = append(snap.Tokens, tv)
	}

	segLen := 2 * math.Pi * m.cfg.Radius / float64(m.cfg.SegmentCount) * segmentOverlap
	snap.Segments = make([]SegmentView, 0, len(m.segments))
	for _, s := range m.segments {
		bs, ok := m.world.Body(s.body)
		if !ok {
			continue
		}
		snap.Segments = append(snap.Segments, SegmentView{
			Pos:    bs.Pos,
			Angle:  bs.Angle,
			Length: segLen,
		})
	}

	if len(m.lastRanking) > 0 {
		snap.Ranking = append([]RankEntry(nil), m.lastRanking...)
	}

	return snap
}
