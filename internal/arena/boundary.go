package arena

import (
	"math"

	"github.com/mkolar/ringout/internal/physics"
)

// segmentOverlap stretches each segment slightly past its arc slot so
// neighbouring segments leave no hairline cracks for tokens to slip through.
const segmentOverlap = 1.15

// segmentThickness is the radial thickness of boundary segments.
const segmentThickness = 6.0

// segment is one static arc piece of the ring. index is the compact index
// among retained segments; the logical slot (gap included) is derived in
// segmentPose.
type segment struct {
	body  physics.BodyID
	index int
}

// generateBoundary destroys any existing segments and rebuilds the ring for
// the current gap size, theme and rotation. Called on start and on gap/theme
// changes only; steady-state ticks reposition segments in place instead,
// which preserves the physics contact state.
func (m *Match) generateBoundary() {
	for _, s := range m.segments {
		m.world.RemoveBody(s.body)
	}
	m.segments = m.segments[:0]

	count := m.cfg.SegmentCount
	gap := m.cfg.GapSize
	if gap >= count {
		// Fully open ring: legal, yields an immediate free-fall arena.
		m.gapStart = 0
		return
	}
	m.gapStart = int(math.Floor(float64(count) * m.cfg.GapStartFraction))

	segLen := 2 * math.Pi * m.cfg.Radius / float64(count) * segmentOverlap
	mat := physics.Material{Restitution: m.cfg.Restitution, Friction: m.cfg.Friction}

	retained := count - gap
	for i := 0; i < retained; i++ {
		pos, angle := m.segmentPose(i)
		id := m.world.CreateBody(physics.Rect(segLen, segmentThickness), pos, mat, true)
		m.world.SetAngle(id, angle)
		m.segments = append(m.segments, segment{body: id, index: i})
	}
}

// segmentPose computes the world position and orientation for the retained
// segment at the given compact index. Indices at or past the gap start are
// offset by the gap size so the gap is a true angular span. The segment lies
// tangent to the circle.
func (m *Match) segmentPose(index int) (physics.Vec2, float64) {
	slot := index
	if slot >= m.gapStart {
		slot += m.cfg.GapSize
	}

	theta := m.rotation + 2*math.Pi*float64(slot)/float64(m.cfg.SegmentCount)
	center := m.cfg.center()
	pos := center.Add(physics.Vec2{
		X: math.Cos(theta) * m.cfg.Radius,
		Y: math.Sin(theta) * m.cfg.Radius,
	})
	return pos, theta + math.Pi/2
}

// SegmentCount returns the number of physical segments currently in the ring.
func (m *Match) SegmentCount() int {
	return len(m.segments)
}
