package physics

import (
	"math"
	"testing"
)

func newTestEngine(gravity float64) *Engine {
	return NewEngine(1000, 1000, gravity, 40)
}

func TestStepAppliesGravity(t *testing.T) {
	e := newTestEngine(500)
	id := e.CreateBody(Circle(10), Vec2{X: 500, Y: 500}, Material{}, false)

	e.Step()

	bs, _ := e.Body(id)
	if bs.Vel.Y <= 0 {
		t.Fatalf("velocity after one step = %+v, want downward", bs.Vel)
	}
	if bs.Pos.Y <= 500 {
		t.Fatalf("position after one step = %+v, want below start", bs.Pos)
	}
}

func TestGravityScale(t *testing.T) {
	e := newTestEngine(600)
	e.SetGravityScale(0.5)
	id := e.CreateBody(Circle(10), Vec2{X: 500, Y: 500}, Material{}, false)

	e.Step()

	bs, _ := e.Body(id)
	want := 600 * 0.5 * StepDT
	if math.Abs(bs.Vel.Y-want) > 1e-9 {
		t.Fatalf("vel.Y = %f, want %f", bs.Vel.Y, want)
	}
}

func TestAirFrictionDampsVelocity(t *testing.T) {
	e := newTestEngine(0)
	id := e.CreateBody(Circle(10), Vec2{X: 500, Y: 500}, Material{AirFriction: 2}, false)
	e.SetVelocity(id, Vec2{X: 100})

	e.Step()

	bs, _ := e.Body(id)
	if bs.Vel.X >= 100 || bs.Vel.X <= 0 {
		t.Fatalf("vel.X = %f, want damped but positive", bs.Vel.X)
	}
}

func TestStaticBodyDoesNotMove(t *testing.T) {
	e := newTestEngine(500)
	id := e.CreateBody(Rect(100, 6), Vec2{X: 500, Y: 500}, Material{}, true)

	e.Step()

	bs, _ := e.Body(id)
	if bs.Pos != (Vec2{X: 500, Y: 500}) {
		t.Fatalf("static body moved to %+v", bs.Pos)
	}
}

func TestSetStaticZeroesVelocity(t *testing.T) {
	e := newTestEngine(0)
	id := e.CreateBody(Circle(10), Vec2{X: 500, Y: 500}, Material{}, false)
	e.SetVelocity(id, Vec2{X: 50, Y: -20})

	e.SetStatic(id, true)

	bs, _ := e.Body(id)
	if bs.Vel != (Vec2{}) {
		t.Fatalf("velocity after freeze = %+v, want zero", bs.Vel)
	}
	if !bs.Static {
		t.Fatal("body not static after SetStatic")
	}
}

func TestHeadOnCollisionReversesVelocities(t *testing.T) {
	e := newTestEngine(0)
	mat := Material{Restitution: 1}
	a := e.CreateBody(Circle(10), Vec2{X: 490, Y: 500}, Material{Restitution: 1}, false)
	b := e.CreateBody(Circle(10), Vec2{X: 510, Y: 500}, mat, false)
	e.SetVelocity(a, Vec2{X: 60})
	e.SetVelocity(b, Vec2{X: -60})

	e.Step()

	sa, _ := e.Body(a)
	sb, _ := e.Body(b)
	if sa.Vel.X >= 0 {
		t.Fatalf("left body vel.X = %f, want reversed", sa.Vel.X)
	}
	if sb.Vel.X <= 0 {
		t.Fatalf("right body vel.X = %f, want reversed", sb.Vel.X)
	}
	// Equal masses and full restitution swap the speeds.
	if math.Abs(sa.Vel.X+60) > 1e-6 || math.Abs(sb.Vel.X-60) > 1e-6 {
		t.Fatalf("velocities after elastic swap: %f, %f", sa.Vel.X, sb.Vel.X)
	}
}

func TestCollisionSeparatesOverlap(t *testing.T) {
	e := newTestEngine(0)
	a := e.CreateBody(Circle(10), Vec2{X: 495, Y: 500}, Material{Restitution: 1}, false)
	b := e.CreateBody(Circle(10), Vec2{X: 505, Y: 500}, Material{Restitution: 1}, false)
	e.SetVelocity(a, Vec2{X: 10})
	e.SetVelocity(b, Vec2{X: -10})

	e.Step()

	sa, _ := e.Body(a)
	sb, _ := e.Body(b)
	if Distance(sa.Pos, sb.Pos) < 20-1e-6 {
		t.Fatalf("bodies still overlapping: %f apart", Distance(sa.Pos, sb.Pos))
	}
}

func TestHeavierBodyDeflectsLess(t *testing.T) {
	e := newTestEngine(0)
	small := e.CreateBody(Circle(5), Vec2{X: 486, Y: 500}, Material{Restitution: 1}, false)
	big := e.CreateBody(Circle(10), Vec2{X: 500, Y: 500}, Material{Restitution: 1}, false)
	e.SetVelocity(small, Vec2{X: 60})

	e.Step()

	ss, _ := e.Body(small)
	sb, _ := e.Body(big)
	if ss.Vel.X >= 0 {
		t.Fatalf("small body vel.X = %f, want bounced back", ss.Vel.X)
	}
	if sb.Vel.X <= 0 {
		t.Fatalf("big body vel.X = %f, want pushed forward", sb.Vel.X)
	}
	if math.Abs(sb.Vel.X) >= math.Abs(ss.Vel.X) {
		t.Fatalf("big body deflected more than small: %f vs %f", sb.Vel.X, ss.Vel.X)
	}
}

func TestSeparatingBodiesNotResolved(t *testing.T) {
	e := newTestEngine(0)
	a := e.CreateBody(Circle(10), Vec2{X: 495, Y: 500}, Material{Restitution: 1}, false)
	b := e.CreateBody(Circle(10), Vec2{X: 505, Y: 500}, Material{Restitution: 1}, false)
	e.SetVelocity(a, Vec2{X: -30})
	e.SetVelocity(b, Vec2{X: 30})

	e.Step()

	sa, _ := e.Body(a)
	sb, _ := e.Body(b)
	if sa.Vel.X != -30 || sb.Vel.X != 30 {
		t.Fatalf("separating velocities changed: %f, %f", sa.Vel.X, sb.Vel.X)
	}
}

func TestSegmentContactReflects(t *testing.T) {
	e := newTestEngine(0)
	// Horizontal segment below a body falling straight down.
	e.CreateBody(Rect(100, 6), Vec2{X: 500, Y: 520}, Material{Restitution: 1}, true)
	id := e.CreateBody(Circle(10), Vec2{X: 500, Y: 508}, Material{Restitution: 1}, false)
	e.SetVelocity(id, Vec2{Y: 60})

	e.Step()

	bs, _ := e.Body(id)
	if bs.Vel.Y >= 0 {
		t.Fatalf("vel.Y after bounce = %f, want upward", bs.Vel.Y)
	}
	// Full restitution preserves the speed.
	if math.Abs(bs.Vel.Y+60) > 1e-6 {
		t.Fatalf("vel.Y = %f, want -60", bs.Vel.Y)
	}
	// Pushed out to the contact reach above the segment.
	if bs.Pos.Y > 520-13+1e-6 {
		t.Fatalf("body not pushed clear of segment, at y=%f", bs.Pos.Y)
	}
}

func TestSegmentContactRestitutionScalesBounce(t *testing.T) {
	e := newTestEngine(0)
	e.CreateBody(Rect(100, 6), Vec2{X: 500, Y: 520}, Material{Restitution: 0.5}, true)
	id := e.CreateBody(Circle(10), Vec2{X: 500, Y: 508}, Material{Restitution: 0.5}, false)
	e.SetVelocity(id, Vec2{Y: 60})

	e.Step()

	bs, _ := e.Body(id)
	if math.Abs(bs.Vel.Y+30) > 1e-6 {
		t.Fatalf("vel.Y = %f, want -30 at restitution 0.5", bs.Vel.Y)
	}
}

func TestSegmentEndsDoNotBlock(t *testing.T) {
	e := newTestEngine(0)
	e.CreateBody(Rect(100, 6), Vec2{X: 500, Y: 520}, Material{Restitution: 1}, true)
	// Falling well past the segment's end.
	id := e.CreateBody(Circle(10), Vec2{X: 600, Y: 508}, Material{Restitution: 1}, false)
	e.SetVelocity(id, Vec2{Y: 60})

	e.Step()

	bs, _ := e.Body(id)
	if bs.Vel.Y != 60 {
		t.Fatalf("vel.Y = %f, want unchanged fall past segment end", bs.Vel.Y)
	}
}

func TestRemoveBody(t *testing.T) {
	e := newTestEngine(0)
	a := e.CreateBody(Circle(10), Vec2{X: 100, Y: 100}, Material{}, false)
	b := e.CreateBody(Circle(10), Vec2{X: 200, Y: 200}, Material{}, false)

	e.RemoveBody(a)

	if _, ok := e.Body(a); ok {
		t.Fatal("removed body still addressable")
	}
	bodies := e.Bodies()
	if len(bodies) != 1 || bodies[0].ID != b {
		t.Fatalf("bodies after removal = %v", bodies)
	}

	// Removing twice is harmless, and ids are never reused.
	e.RemoveBody(a)
	c := e.CreateBody(Circle(10), Vec2{}, Material{}, false)
	if c <= b {
		t.Fatalf("id %d reused after removal (last was %d)", c, b)
	}
}

func TestRectBodyUsesBoundingCircle(t *testing.T) {
	e := newTestEngine(0)
	id := e.CreateBody(Rect(16, 12), Vec2{X: 500, Y: 500}, Material{}, false)

	b := e.index[id]
	want := math.Hypot(16, 12) / 2
	if math.Abs(b.radius-want) > 1e-9 {
		t.Fatalf("rect collision radius = %f, want %f", b.radius, want)
	}
}

func TestBodiesSnapshotDoubleBuffered(t *testing.T) {
	e := newTestEngine(0)
	id := e.CreateBody(Circle(10), Vec2{X: 100, Y: 100}, Material{}, false)

	first := e.Bodies()
	e.SetPosition(id, Vec2{X: 900, Y: 900})
	second := e.Bodies()

	// The first snapshot must not see the later mutation.
	if first[0].Pos != (Vec2{X: 100, Y: 100}) {
		t.Fatalf("first snapshot mutated: %+v", first[0].Pos)
	}
	if second[0].Pos != (Vec2{X: 900, Y: 900}) {
		t.Fatalf("second snapshot stale: %+v", second[0].Pos)
	}
}
