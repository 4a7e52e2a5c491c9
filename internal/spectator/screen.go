package spectator

import (
	"fmt"
	"math"

	"github.com/mkolar/ringout/internal/arena"
	"github.com/mkolar/ringout/internal/draw"
	"github.com/mkolar/ringout/internal/host"
)

// drawFrame renders the current frame for the active mode.
func (c *Client) drawFrame() error {
	// Full clear on mode transitions so leftover UI doesn't persist.
	if c.state.Mode != c.state.prevMode {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevMode = c.state.Mode
	}

	snap := c.host.GetSnapshot()
	if snap == nil {
		return c.chunkWriter.Flush()
	}

	switch c.state.Mode {
	case ModeWatching:
		c.drawArena(snap)
		c.drawHUD(snap)
	case ModeSummary:
		c.drawArena(snap)
		c.drawSummary(snap)
	case ModeShutdown:
		c.drawShutdown()
	}

	return c.chunkWriter.Flush()
}

// drawArena renders the ring and tokens onto the canvas.
func (c *Client) drawArena(snap *host.Snapshot) {
	c.canvas.Clear()

	for _, seg := range snap.Match.Segments {
		dx := math.Cos(seg.Angle) * seg.Length / 2
		dy := math.Sin(seg.Angle) * seg.Length / 2
		c.canvas.DrawLine(
			draw.Point{X: seg.Pos.X - dx, Y: seg.Pos.Y - dy},
			draw.Point{X: seg.Pos.X + dx, Y: seg.Pos.Y + dy},
		)
	}

	for _, tok := range snap.Match.Tokens {
		radius := tok.Radius
		if tok.Winner {
			// Victory growth animation
			radius *= 1 + snap.Match.VictoryProgress*2
		}

		if tok.Rect && !tok.Winner {
			c.drawRectToken(tok)
			continue
		}
		c.canvas.DrawCircle(draw.Point{X: tok.Pos.X, Y: tok.Pos.Y}, radius, true)
	}

	c.canvas.Render(c.chunkWriter)
	c.drawTokenLabels(snap)
}

// drawRectToken renders a rectangular token as a rotated quad.
func (c *Client) drawRectToken(tok arena.TokenView) {
	cosA := math.Cos(tok.Angle)
	sinA := math.Sin(tok.Angle)
	hw := tok.W / 2
	hh := tok.H / 2

	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var points [4]draw.Point
	for i, corner := range corners {
		points[i] = draw.Point{
			X: tok.Pos.X + corner[0]*cosA - corner[1]*sinA,
			Y: tok.Pos.Y + corner[0]*sinA + corner[1]*cosA,
		}
	}
	c.canvas.DrawPolygon(points[:], true)
}

// drawTokenLabels writes entrant codes next to the leaders and the rigged
// entrant so the crowd can follow who is who.
func (c *Client) drawTokenLabels(snap *host.Snapshot) {
	labeled := make(map[string]bool, 4)
	for i, entry := range snap.Match.Ranking {
		if i >= 3 {
			break
		}
		labeled[entry.Entrant.Code] = true
	}
	if snap.Match.TargetWinner != "" {
		labeled[snap.Match.TargetWinner] = true
	}

	for _, tok := range snap.Match.Tokens {
		if !labeled[tok.Entrant.Code] && !tok.Winner {
			continue
		}
		col, row := c.canvas.LogicalToTerminal(tok.Pos.X, tok.Pos.Y-tok.Radius*2)
		c.chunkWriter.WriteAt(col-len(tok.Entrant.Code)/2, row, tok.Entrant.Code)
	}
}

// countdownArt holds 5-row banner art for the countdown overlay.
var countdownArt = map[int][]string{
	3: {
		` ____ `,
		`|__ / `,
		` |_ \ `,
		`___) |`,
		`|____/`,
	},
	2: {
		` ___  `,
		`|_  ) `,
		` / /  `,
		`/ /__ `,
		`|____|`,
	},
	1: {
		` _ `,
		`/ |`,
		`| |`,
		`| |`,
		`|_|`,
	},
}

// drawHUD renders the live overlay: status line, countdown, leaderboard,
// elimination ticker, announcements and the controls hint.
func (c *Client) drawHUD(snap *host.Snapshot) {
	cw := c.chunkWriter
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	// Status line
	status := fmt.Sprintf(" ALIVE %d  GAP %d  THEME %s ",
		snap.Match.AliveCount, snap.Match.GapSize, snap.Match.Theme.Name)
	if snap.Match.TargetWinner != "" {
		status += fmt.Sprintf(" RIG %s ", snap.Match.TargetWinner)
	}
	if snap.Match.Paused {
		status += " [PAUSED] "
	}
	cw.WriteAt(2, 1, status)

	// Countdown overlay
	if n := snap.Match.Countdown; n >= 0 {
		if art, ok := countdownArt[n]; ok {
			for i, line := range art {
				cw.WriteAt(centerX-len(line)/2, centerY-2+i, line)
			}
		}
	}

	// Announcement banner
	if c.state.Announce != "" {
		cw.WriteAt(centerX-len(c.state.Announce)/2, centerY-6, c.state.Announce)
	}

	c.drawLeaderboard(snap, termWidth)
	c.drawTicker(snap, termHeight)

	hint := " space pause | r restart | [ ] gap | t theme | w/W rig | q quit "
	cw.WriteAt(2, termHeight, hint)
}

// drawLeaderboard renders the latest ranking snapshot down the right edge.
func (c *Client) drawLeaderboard(snap *host.Snapshot, termWidth int) {
	cw := c.chunkWriter
	col := termWidth - 22

	cw.WriteAt(col, 2, "RANK  WHO       DIST")
	shown := len(snap.Match.Ranking)
	if shown > 10 {
		shown = 10
	}
	for i := 0; i < shown; i++ {
		entry := snap.Match.Ranking[i]
		line := fmt.Sprintf("%3d.  %-8s %5.0f", i+1, entry.Entrant.Code, entry.Distance)
		cw.WriteAt(col, 3+i, line)
	}
}

// drawTicker renders the recent eliminations feed bottom-left.
func (c *Client) drawTicker(snap *host.Snapshot, termHeight int) {
	cw := c.chunkWriter
	row := termHeight - 1 - len(snap.Recent)
	for i, elim := range snap.Recent {
		cw.WriteAt(2, row+i, fmt.Sprintf("OUT  %s %s", elim.Entrant.Code, elim.Entrant.Name))
	}
}

// drawSummary renders the post-match standings over the frozen arena.
func (c *Client) drawSummary(snap *host.Snapshot) {
	cw := c.chunkWriter
	termWidth := c.canvas.TerminalWidth()
	centerX := termWidth / 2

	var title string
	if snap.Match.NoWinner {
		title = "NO SURVIVORS"
	} else {
		title = fmt.Sprintf("WINNER: %s", snap.Match.WinnerName)
	}
	cw.WriteAt(centerX-len(title)/2, 2, title)

	shown := len(snap.Standings)
	if shown > 12 {
		shown = 12
	}
	for i := 0; i < shown; i++ {
		p := snap.Standings[i]
		marker := " "
		if !p.Eliminated {
			marker = "*"
		}
		line := fmt.Sprintf("%3d. %s %-4s %s", p.Rank, marker, p.Entrant.Code, p.Entrant.Name)
		cw.WriteAt(centerX-14, 4+i, line)
	}

	hint := "[r] new match   [q] quit"
	cw.WriteAt(centerX-len(hint)/2, 5+shown, hint)
}

// drawShutdown renders the server-shutdown notice.
func (c *Client) drawShutdown() {
	cw := c.chunkWriter
	centerX := c.canvas.TerminalWidth() / 2
	centerY := c.canvas.TerminalHeight() / 2

	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-1, title)
	msg := fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1)
	cw.WriteAt(centerX-len(msg)/2, centerY+1, msg)
}
