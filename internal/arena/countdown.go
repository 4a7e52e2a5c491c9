package arena

import "time"

// advanceCountdown drives the 3..0 sequence against the deadline field.
// Emitting 0 is the "go": the match transitions to Playing and gravity
// relaxes from the near-weightless hold to the soft-launch scale. The loop
// catches up if the host stalled past more than one interval.
func (m *Match) advanceCountdown(now time.Time) {
	if m.countdownNextAt.IsZero() {
		return
	}

	for !now.Before(m.countdownNextAt) {
		m.countdownValue--
		m.emit(Event{Kind: EventCountdownTick, Countdown: m.countdownValue})

		if m.countdownValue <= 0 {
			m.phase = PhasePlaying
			m.world.SetGravityScale(m.cfg.PlayGravityScale)
			m.countdownNextAt = time.Time{}
			m.countdownValue = -1
			return
		}
		m.countdownNextAt = m.countdownNextAt.Add(m.cfg.CountdownInterval)
	}
}

// CountdownValue returns the current countdown digit, or -1 when the
// countdown is not running.
func (m *Match) CountdownValue() int {
	if m.countdownNextAt.IsZero() {
		return -1
	}
	return m.countdownValue
}
