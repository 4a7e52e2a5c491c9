// Package spectator renders a running match to a terminal and feeds
// spectator key presses back to the host as control commands.
package spectator

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/mkolar/ringout/internal/arena"
	"github.com/mkolar/ringout/internal/draw"
	"github.com/mkolar/ringout/internal/host"
	"github.com/mkolar/ringout/internal/input"
)

// logical view edge; matches the arena's world units so no camera math is
// needed, the whole arena is always in view.
const viewSize = 1000

// Client handles rendering and input for a single spectator connection.
type Client struct {
	host         host.MatchHost
	handle       *host.SpectatorHandle
	state        *State
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
}

// Options configures a spectator client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Name         string
}

// NewClient creates a spectator attached to the given host.
func NewClient(h host.MatchHost, r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, viewSize, viewSize)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		host:         h,
		handle:       h.RegisterSpectator(opts.Name),
		state:        NewState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the spectator loop. Blocks until the spectator quits, the
// connection drops, or the server shuts down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processEvents()
		c.checkShutdown()
		c.updateScreen()
		c.updateMode()

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}

	c.host.UnregisterSpectator(c.handle.ID)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads key presses and forwards them as host commands.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)

	if in.Quit {
		c.state.Running = false
		return
	}
	if c.state.Mode == ModeShutdown {
		return // No controls while the shutdown notice is up
	}

	switch {
	case in.TogglePause:
		c.host.Send(host.Command{Kind: host.CmdTogglePause})
	case in.Restart:
		c.host.Send(host.Command{Kind: host.CmdRestart})
	case in.GapShrink:
		c.host.Send(host.Command{Kind: host.CmdGapDelta, Delta: -1})
	case in.GapGrow:
		c.host.Send(host.Command{Kind: host.CmdGapDelta, Delta: 1})
	case in.CycleTheme:
		c.host.Send(host.Command{Kind: host.CmdCycleTheme})
	case in.RigRandom:
		c.host.Send(host.Command{Kind: host.CmdRigRandom})
	case in.ClearRig:
		c.host.Send(host.Command{Kind: host.CmdClearRig})
	}
}

// processEvents drains match events into transient banners. The ranking and
// elimination ticker render from the snapshot instead, so those are skipped.
func (c *Client) processEvents() {
	for {
		select {
		case ev, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch ev.Kind {
			case arena.EventCountdownTick:
				if ev.Countdown == 0 {
					c.announce("GO!")
				}
			case arena.EventWinnerDetected:
				c.announce(fmt.Sprintf("%s TAKES IT!", ev.Entrant.Name))
			}
		default:
			return
		}
	}
}

// announce shows a transient banner.
func (c *Client) announce(text string) {
	c.state.Announce = text
	c.state.AnnounceTTL = announceSeconds
}

// checkShutdown switches to the shutdown notice when the server signals it.
func (c *Client) checkShutdown() {
	if c.state.Mode == ModeShutdown {
		c.state.shutdownTimer -= c.state.delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
		return
	}

	select {
	case <-c.handle.Shutdown:
		c.state.Mode = ModeShutdown
		c.state.shutdownTimer = ShutdownDisplaySeconds
	default:
	}
}

// updateMode follows the match phase: the summary screen comes up once the
// match is finished and drops back on restart.
func (c *Client) updateMode() {
	if c.state.Mode == ModeShutdown {
		return
	}

	snap := c.host.GetSnapshot()
	if snap == nil {
		return
	}
	if snap.Match.Phase == arena.PhaseFinished {
		c.state.Mode = ModeSummary
	} else {
		c.state.Mode = ModeWatching
	}

	if c.state.AnnounceTTL > 0 {
		c.state.AnnounceTTL -= c.state.delta.Seconds()
		if c.state.AnnounceTTL <= 0 {
			c.state.Announce = ""
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual content.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > MaxTermWidth {
		renderWidth = MaxTermWidth
	}
	if renderHeight > MaxTermHeight {
		renderHeight = MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
