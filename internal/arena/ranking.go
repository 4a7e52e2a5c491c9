package arena

import (
	"sort"

	"github.com/mkolar/ringout/internal/physics"
)

// emitRanking produces a full ordering of live tokens by ascending
// distance-to-center and pushes it as a leaderboard snapshot. Ties break on
// entrant code so equal-distance orderings stay stable across ticks.
func (m *Match) emitRanking() {
	center := m.cfg.center()

	entries := make([]RankEntry, 0, len(m.order))
	for _, id := range m.order {
		tok, ok := m.tokens[id]
		if !ok {
			continue
		}
		bs, ok := m.world.Body(id)
		if !ok {
			continue
		}
		entries = append(entries, RankEntry{
			Entrant:  tok.Entrant,
			Distance: physics.Distance(bs.Pos, center),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Distance != entries[j].Distance {
			return entries[i].Distance < entries[j].Distance
		}
		return entries[i].Entrant.Code < entries[j].Entrant.Code
	})

	m.lastRanking = entries
	m.emit(Event{Kind: EventActiveRanking, Ranking: entries})
}

// LastRanking returns the most recently emitted leaderboard snapshot.
func (m *Match) LastRanking() []RankEntry {
	return m.lastRanking
}
