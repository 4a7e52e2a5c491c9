package physics

// ShapeKind identifies the collision shape of a body.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// Shape describes a body's collision geometry.
type Shape struct {
	Kind   ShapeKind
	Radius float64 // Circle radius
	W, H   float64 // Rect dimensions
}

// Circle returns a circular shape with the given radius.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Rect returns a rectangular shape with the given width and height.
func Rect(w, h float64) Shape {
	return Shape{Kind: ShapeRect, W: w, H: h}
}

// Material holds the surface/motion properties of a body.
type Material struct {
	Restitution float64 // Bounciness on contact, 0..~1.6
	Friction    float64 // Tangential velocity loss on contact, 0..1
	AirFriction float64 // Velocity damping per second while in flight
}

// BodyID identifies a body within a World. IDs are never reused within a world.
type BodyID int

// BodyState is a read snapshot of one body.
type BodyState struct {
	ID     BodyID
	Shape  Shape
	Pos    Vec2
	Vel    Vec2
	Angle  float64
	Static bool
}

// World is the port the arena simulation talks to. The concrete Engine below
// implements it; tests may substitute their own.
//
// All mutations happen between Step calls from a single goroutine; World
// implementations are not required to be safe for concurrent use.
type World interface {
	// CreateBody adds a body and returns its id.
	CreateBody(shape Shape, pos Vec2, mat Material, static bool) BodyID

	// RemoveBody deletes a body. Unknown ids are ignored.
	RemoveBody(id BodyID)

	SetPosition(id BodyID, pos Vec2)
	SetVelocity(id BodyID, vel Vec2)
	SetAngle(id BodyID, angle float64)
	SetStatic(id BodyID, static bool)

	// SetGravityScale scales the world's base gravity (1 = full).
	SetGravityScale(scale float64)

	// Step advances the simulation one fixed tick.
	Step()

	// Bodies returns a snapshot of all bodies in creation order.
	Bodies() []BodyState

	// Body returns the state of a single body.
	Body(id BodyID) (BodyState, bool)
}
