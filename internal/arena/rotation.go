package arena

// advanceRotation steps the ring's rotation angle and writes the new pose of
// every segment back into the physics world. Bodies are moved, never
// recreated; trig wrapping keeps the monotonically growing angle harmless.
// Only called while Playing with no winner latched.
func (m *Match) advanceRotation() {
	m.rotation += m.cfg.RotationStep
	for _, s := range m.segments {
		pos, angle := m.segmentPose(s.index)
		m.world.SetPosition(s.body, pos)
		m.world.SetAngle(s.body, angle)
	}
}

// Rotation returns the ring's current rotation angle in radians.
func (m *Match) Rotation() float64 {
	return m.rotation
}
