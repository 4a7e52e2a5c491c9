package draw

import (
	"strings"
	"testing"
)

func TestLogicalToTerminalScales(t *testing.T) {
	c := NewScaledCanvas(100, 50, 1000, 1000)

	col, row := c.LogicalToTerminal(500, 500)
	if col != 51 || row != 26 {
		t.Fatalf("center maps to (%d,%d), want (51,26)", col, row)
	}

	col, row = c.LogicalToTerminal(0, 0)
	if col != 1 || row != 1 {
		t.Fatalf("origin maps to (%d,%d), want (1,1)", col, row)
	}
}

func TestRenderEmitsHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(10, 10, 10, 10)
	c.SetFloat(5, 5)

	var sb strings.Builder
	c.Render(&sb)

	out := sb.String()
	if !strings.ContainsRune(out, BlockUpperHalf) && !strings.ContainsRune(out, BlockLowerHalf) &&
		!strings.ContainsRune(out, BlockFull) {
		t.Fatalf("render output has no block characters: %q", out)
	}
}

func TestDifferentialRenderOnlyEmitsChanges(t *testing.T) {
	c := NewScaledCanvas(20, 20, 20, 20)
	c.SetFloat(5, 5)

	var first strings.Builder
	c.Render(&first)

	// Identical frame: nothing changed, nothing written.
	c.Clear()
	c.SetFloat(5, 5)
	var second strings.Builder
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame emitted %d bytes", second.Len())
	}

	// Moving the pixel clears the old cell and draws the new one.
	c.Clear()
	c.SetFloat(10, 10)
	var third strings.Builder
	c.Render(&third)
	out := third.String()
	if !strings.Contains(out, " ") {
		t.Fatalf("moved pixel did not clear its old cell: %q", out)
	}
}

func TestForceRedrawRepaintsEverything(t *testing.T) {
	c := NewScaledCanvas(20, 20, 20, 20)
	c.SetFloat(5, 5)

	var first strings.Builder
	c.Render(&first)

	c.Clear()
	c.SetFloat(5, 5)
	c.ForceRedraw()
	var second strings.Builder
	c.Render(&second)
	if second.Len() == 0 {
		t.Fatal("forced redraw emitted nothing")
	}
}

func TestDrawLineSetsEndpoints(t *testing.T) {
	c := NewScaledCanvas(40, 40, 40, 40)
	c.DrawLine(Point{X: 5, Y: 5}, Point{X: 30, Y: 5})

	var sb strings.Builder
	c.Render(&sb)
	if sb.Len() == 0 {
		t.Fatal("line rendered nothing")
	}
}

func TestDrawCircleFilledCoversCenter(t *testing.T) {
	c := NewScaledCanvas(40, 40, 40, 40)
	c.DrawCircle(Point{X: 20, Y: 20}, 8, true)

	// The filled interior must include the center pixel.
	cx := int(20 * c.scaleX)
	cy := int(20 * c.scaleY)
	if !c.pixels[cy*c.termWidth+cx] {
		t.Fatal("filled circle does not cover its center")
	}
}

func TestResizeForcesRedraw(t *testing.T) {
	c := NewScaledCanvas(20, 20, 20, 20)
	c.SetFloat(5, 5)
	var sb strings.Builder
	c.Render(&sb)

	c.Resize(30, 20)
	if !c.forceAll {
		t.Fatal("resize did not force a redraw")
	}
	if c.termWidth != 30 {
		t.Fatalf("width after resize = %d, want 30", c.termWidth)
	}
}

func TestChunkWriterAppliesOffset(t *testing.T) {
	var sb strings.Builder
	cw := NewChunkWriter(&sb, 10, 5)
	cw.WriteAt(1, 1, "X")
	if err := cw.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	if got := sb.String(); got != "\033[6;11HX" {
		t.Fatalf("output = %q, want offset cursor move", got)
	}
}
