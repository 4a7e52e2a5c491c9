package arena

import "github.com/mkolar/ringout/internal/physics"

// runEliminations scans all live tokens against a single snapshot of body
// positions taken before any removals, so eliminating one token never
// perturbs the threshold test of another within the same tick.
func (m *Match) runEliminations() {
	snapshot := m.world.Bodies()
	center := m.cfg.center()
	fallY := m.cfg.fallThroughY()
	aliveAtScan := len(m.tokens)

	for _, bs := range snapshot {
		tok, ok := m.tokens[bs.ID]
		if !ok {
			continue // Boundary segments, or an id we no longer track
		}

		d := physics.Distance(bs.Pos, center)
		if d <= m.cfg.OutOfBoundsRadius && bs.Pos.Y <= fallY {
			continue
		}

		// Rigged entrant: rescue instead of remove, as long as somebody
		// else was still in when the scan began. The count is taken before
		// any removals so a simultaneous wipeout cannot strip the
		// protection mid-scan. Once it is the last token the clause
		// expires and it can fall out like anyone.
		if m.targetWinner != "" && tok.Entrant.Code == m.targetWinner && aliveAtScan > 1 {
			m.world.SetPosition(bs.ID, center)
			m.world.SetVelocity(bs.ID, physics.Vec2{})
			continue
		}

		m.world.RemoveBody(bs.ID)
		delete(m.tokens, bs.ID)
		m.dropFromOrder(bs.ID)
		m.emit(Event{
			Kind:      EventEliminated,
			Entrant:   tok.Entrant,
			Position:  bs.Pos,
			ColorHint: m.theme.EliminateHint,
		})
	}
}

// dropFromOrder removes an id from the creation-order slice.
func (m *Match) dropFromOrder(id physics.BodyID) {
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
