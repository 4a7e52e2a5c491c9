package physics

import "math"

// StepDT is the fixed timestep in seconds. Ticks are assumed uniform; the
// arena never integrates real elapsed time.
const StepDT = 1.0 / 60.0

// body is the engine's internal mutable body record.
type body struct {
	id     BodyID
	shape  Shape
	pos    Vec2
	vel    Vec2
	angle  float64
	static bool
	mat    Material

	radius  float64 // Collision radius (bounding circle for rects)
	halfLen float64 // Static rects: half of the long dimension (segment length)
	thick   float64 // Static rects: half of the short dimension
}

// Engine is a fixed-timestep rigid-body world. Dynamic bodies collide with
// each other as circles (rect tokens use their bounding circle) and with
// static rects treated as thick line segments.
type Engine struct {
	width, height float64
	gravity       float64 // Base downward acceleration, units/s²
	gravityScale  float64

	bodies []*body
	index  map[BodyID]*body
	nextID BodyID

	grid   *SpatialGrid
	dynBuf []*body // Reused each step for broad-phase candidates

	// Double-buffered snapshot slices so Bodies() does not allocate per tick.
	snapBufs [2][]BodyState
	snapIdx  int
}

// Compile-time check that Engine implements World.
var _ World = (*Engine)(nil)

// NewEngine creates an engine covering width x height world units.
// cellSize bounds the broad-phase grid and must be >= twice the largest
// dynamic body radius.
func NewEngine(width, height, gravity, cellSize float64) *Engine {
	return &Engine{
		width:        width,
		height:       height,
		gravity:      gravity,
		gravityScale: 1,
		index:        make(map[BodyID]*body),
		nextID:       1,
		grid:         NewSpatialGrid(width, height, cellSize),
	}
}

// CreateBody adds a body and returns its id.
func (e *Engine) CreateBody(shape Shape, pos Vec2, mat Material, static bool) BodyID {
	b := &body{
		id:     e.nextID,
		shape:  shape,
		pos:    pos,
		static: static,
		mat:    mat,
	}
	e.nextID++

	switch shape.Kind {
	case ShapeCircle:
		b.radius = shape.Radius
	case ShapeRect:
		b.radius = math.Hypot(shape.W, shape.H) / 2
		b.halfLen = math.Max(shape.W, shape.H) / 2
		b.thick = math.Min(shape.W, shape.H) / 2
	}

	e.bodies = append(e.bodies, b)
	e.index[b.id] = b
	return b.id
}

// RemoveBody deletes a body. Unknown ids are ignored.
func (e *Engine) RemoveBody(id BodyID) {
	b, ok := e.index[id]
	if !ok {
		return
	}
	delete(e.index, id)

	kept := e.bodies[:0]
	for _, other := range e.bodies {
		if other != b {
			kept = append(kept, other)
		}
	}
	e.bodies = kept
}

// SetPosition moves a body without affecting its velocity.
func (e *Engine) SetPosition(id BodyID, pos Vec2) {
	if b, ok := e.index[id]; ok {
		b.pos = pos
	}
}

// SetVelocity overwrites a body's velocity.
func (e *Engine) SetVelocity(id BodyID, vel Vec2) {
	if b, ok := e.index[id]; ok {
		b.vel = vel
	}
}

// SetAngle overwrites a body's orientation.
func (e *Engine) SetAngle(id BodyID, angle float64) {
	if b, ok := e.index[id]; ok {
		b.angle = angle
	}
}

// SetStatic freezes or unfreezes a body. Freezing zeroes its velocity.
func (e *Engine) SetStatic(id BodyID, static bool) {
	if b, ok := e.index[id]; ok {
		b.static = static
		if static {
			b.vel = Vec2{}
		}
	}
}

// SetGravityScale scales the world's base gravity (1 = full).
func (e *Engine) SetGravityScale(scale float64) {
	e.gravityScale = scale
}

// Step advances the simulation one fixed tick: integrate, then resolve
// dynamic-dynamic and dynamic-static contacts.
func (e *Engine) Step() {
	dt := StepDT
	g := e.gravity * e.gravityScale

	e.dynBuf = e.dynBuf[:0]
	for _, b := range e.bodies {
		if b.static {
			continue
		}

		b.vel.Y += g * dt
		if b.mat.AirFriction > 0 {
			damp := 1.0 / (1.0 + b.mat.AirFriction*dt)
			b.vel = b.vel.Scale(damp)
		}
		b.pos = b.pos.Add(b.vel.Scale(dt))

		e.dynBuf = append(e.dynBuf, b)
	}

	e.resolveDynamicContacts()
	e.resolveStaticContacts()
}

// resolveDynamicContacts handles collisions between dynamic bodies using the
// spatial grid for broad phase.
func (e *Engine) resolveDynamicContacts() {
	e.grid.Clear()
	for i, b := range e.dynBuf {
		e.grid.Insert(b.pos.X, b.pos.Y, i)
	}

	for i, b1 := range e.dynBuf {
		e.grid.QueryAround(b1.pos.X, b1.pos.Y, func(j int) bool {
			if j <= i {
				return false // Skip self and already-checked pairs
			}
			b2 := e.dynBuf[j]
			dist := Distance(b1.pos, b2.pos)
			minDist := b1.radius + b2.radius
			if dist < minDist && dist > 0 {
				bounceBodies(b1, b2, dist)
			}
			return false
		})
	}
}

// bounceBodies resolves a contact between two overlapping dynamic bodies with
// an impulse scaled by the pair's restitution. Mass is area-based (radius²).
func bounceBodies(b1, b2 *body, dist float64) {
	// Collision normal (from b1 to b2)
	nx := (b2.pos.X - b1.pos.X) / dist
	ny := (b2.pos.Y - b1.pos.Y) / dist

	// Relative velocity along the normal
	dvx := b1.vel.X - b2.vel.X
	dvy := b1.vel.Y - b2.vel.Y
	dvn := dvx*nx + dvy*ny

	// Don't resolve if velocities are separating
	if dvn < 0 {
		return
	}

	m1 := b1.radius * b1.radius
	m2 := b2.radius * b2.radius
	totalMass := m1 + m2

	rest := (b1.mat.Restitution + b2.mat.Restitution) / 2
	impulse := (1 + rest) * dvn / totalMass

	b1.vel.X -= impulse * m2 * nx
	b1.vel.Y -= impulse * m2 * ny
	b2.vel.X += impulse * m1 * nx
	b2.vel.Y += impulse * m1 * ny

	// Separate bodies to prevent overlap, proportional to mass ratio
	overlap := (b1.radius + b2.radius) - dist
	if overlap > 0 {
		sep1 := overlap * m2 / totalMass
		sep2 := overlap * m1 / totalMass
		b1.pos.X -= nx * sep1
		b1.pos.Y -= ny * sep1
		b2.pos.X += nx * sep2
		b2.pos.Y += ny * sep2
	}
}

// resolveStaticContacts handles collisions between dynamic bodies and static
// segment rects. Segment counts stay low enough (<= ~100) that a direct scan
// beats maintaining a second grid.
func (e *Engine) resolveStaticContacts() {
	for _, s := range e.bodies {
		if !s.static || s.shape.Kind != ShapeRect {
			continue
		}
		for _, b := range e.dynBuf {
			resolveSegmentContact(b, s)
		}
	}
}

// resolveSegmentContact pushes a dynamic body out of a static segment and
// reflects its normal velocity with restitution; the tangential component
// loses a friction fraction.
func resolveSegmentContact(b, s *body) {
	closest := ClosestPointOnSegment(b.pos, s.pos, s.angle, s.halfLen)
	delta := b.pos.Sub(closest)
	dist := delta.Len()
	reach := b.radius + s.thick
	if dist >= reach {
		return
	}

	var n Vec2
	if dist > 1e-9 {
		n = delta.Scale(1 / dist)
	} else {
		// Body center sits exactly on the segment line; use the segment
		// normal opposing the body's motion.
		n = Vec2{-math.Sin(s.angle), math.Cos(s.angle)}
		if b.vel.Dot(n) > 0 {
			n = n.Scale(-1)
		}
	}

	b.pos = closest.Add(n.Scale(reach))

	vn := b.vel.Dot(n)
	if vn >= 0 {
		return // Already moving away
	}

	rest := (b.mat.Restitution + s.mat.Restitution) / 2
	fric := (b.mat.Friction + s.mat.Friction) / 2
	if fric > 1 {
		fric = 1
	}

	tangential := b.vel.Sub(n.Scale(vn)).Scale(1 - fric)
	b.vel = tangential.Add(n.Scale(-vn * rest))
}

// Bodies returns a snapshot of all bodies in creation order. The returned
// slice is valid until the call after next (double-buffered).
func (e *Engine) Bodies() []BodyState {
	idx := e.snapIdx
	e.snapIdx = 1 - e.snapIdx

	buf := e.snapBufs[idx]
	if cap(buf) < len(e.bodies) {
		buf = make([]BodyState, len(e.bodies))
		e.snapBufs[idx] = buf
	}
	buf = buf[:len(e.bodies)]

	for i, b := range e.bodies {
		buf[i] = BodyState{
			ID:     b.id,
			Shape:  b.shape,
			Pos:    b.pos,
			Vel:    b.vel,
			Angle:  b.angle,
			Static: b.static,
		}
	}
	return buf
}

// Body returns the state of a single body.
func (e *Engine) Body(id BodyID) (BodyState, bool) {
	b, ok := e.index[id]
	if !ok {
		return BodyState{}, false
	}
	return BodyState{
		ID:     b.id,
		Shape:  b.shape,
		Pos:    b.pos,
		Vel:    b.vel,
		Angle:  b.angle,
		Static: b.static,
	}, true
}
