// Package host runs a match on a fixed tick loop and fans its snapshots and
// events out to spectators. All simulation state is owned by the loop
// goroutine; spectators and feeds only ever see immutable snapshots and
// buffered event copies.
package host

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mkolar/ringout/internal/arena"
	"github.com/mkolar/ringout/internal/physics"
	"github.com/mkolar/ringout/internal/roster"
)

// Tick rate of the match loop.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// recentKeep is how many eliminations the snapshot's ticker feed retains.
const recentKeep = 6

// MatchHost is the interface spectators use to talk to the running match.
// Decouples the spectator client from the concrete Server, enabling testing.
type MatchHost interface {
	RegisterSpectator(name string) *SpectatorHandle
	UnregisterSpectator(id int)
	Send(cmd Command)
	GetSnapshot() *Snapshot
}

// Server owns the physics engine and the match, and processes commands from
// all spectators.
type Server struct {
	match  *arena.Match
	logger *log.Logger

	matchID  atomic.Value // string; regenerated on restart
	snapshot atomic.Pointer[Snapshot]

	spectators map[int]*SpectatorHandle
	nextSpecID int
	mu         sync.RWMutex

	commandCh    chan Command
	registerCh   chan *SpectatorHandle
	unregisterCh chan int
	shutdownCh   chan struct{}
	shutdownOnce sync.Once

	// Placement bookkeeping built from elimination events.
	eliminated []roster.Entrant // In elimination order
	recent     []Elimination
}

// Compile-time check that Server implements MatchHost.
var _ MatchHost = (*Server)(nil)

// SpectatorHandle represents a spectator's connection to the server.
type SpectatorHandle struct {
	ID       int
	Name     string
	EventsCh chan arena.Event // Match events; dropped on overflow
	Shutdown <-chan struct{}  // Closed when the server shuts down
}

// NewServer builds the physics world, the match, and the server around them.
func NewServer(cfg arena.Config, entrants []roster.Entrant, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	// Broad-phase cells must cover the largest token pair contact distance.
	cellSize := cfg.TokenRadius * 3
	if cellSize < 24 {
		cellSize = 24
	}
	engine := physics.NewEngine(cfg.Width, cfg.Height, cfg.Gravity, cellSize)

	s := &Server{
		match:        arena.New(cfg, engine, entrants),
		logger:       logger,
		spectators:   make(map[int]*SpectatorHandle),
		nextSpecID:   1,
		commandCh:    make(chan Command, 64),
		registerCh:   make(chan *SpectatorHandle, 16),
		unregisterCh: make(chan int, 16),
		shutdownCh:   make(chan struct{}),
	}
	s.matchID.Store(uuid.NewString())
	s.publishSnapshot()
	return s
}

// Run starts the tick loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.logger.Info("match loop started", "match", s.matchID.Load(), "entrants", s.match.AliveCount())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()

		s.processRegistrations()
		s.processCommands()

		s.match.Tick()

		if events := s.match.DrainEvents(); len(events) > 0 {
			s.applyEvents(events)
			s.fanOut(events)
		}

		s.publishSnapshot()

		elapsed := time.Since(frameStart)
		if elapsed < TickTime {
			time.Sleep(TickTime - elapsed)
		}
	}
}

// Shutdown notifies all spectators and waits for them to disconnect, up to
// the given timeout. The caller cancels the Run context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.shutdownOnce.Do(func() { close(s.shutdownCh) })

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.spectators)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterSpectator attaches a new spectator and returns its handle.
func (s *Server) RegisterSpectator(name string) *SpectatorHandle {
	s.mu.Lock()
	id := s.nextSpecID
	s.nextSpecID++
	s.mu.Unlock()

	handle := &SpectatorHandle{
		ID:       id,
		Name:     name,
		EventsCh: make(chan arena.Event, 64),
		Shutdown: s.shutdownCh,
	}
	s.registerCh <- handle
	return handle
}

// UnregisterSpectator detaches a spectator.
func (s *Server) UnregisterSpectator(id int) {
	s.unregisterCh <- id
}

// Send queues a control command for the loop goroutine. Full queue drops the
// command; controls are best-effort.
func (s *Server) Send(cmd Command) {
	select {
	case s.commandCh <- cmd:
	default:
	}
}

// GetSnapshot returns the latest published snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending spectator attach/detach requests.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.spectators[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("spectator joined", "id", handle.ID, "name", handle.Name)
		case id := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.spectators[id]; ok {
				close(handle.EventsCh)
				delete(s.spectators, id)
			}
			s.mu.Unlock()
			s.logger.Info("spectator left", "id", id)
		default:
			return
		}
	}
}

// processCommands drains and applies all pending control commands.
func (s *Server) processCommands() {
	for {
		select {
		case cmd := <-s.commandCh:
			s.applyCommand(cmd)
		default:
			return
		}
	}
}

func (s *Server) applyCommand(cmd Command) {
	switch cmd.Kind {
	case CmdTogglePause:
		s.match.SetPaused(!s.match.Paused())
		s.logger.Info("pause toggled", "paused", s.match.Paused())
	case CmdRestart:
		s.match.Restart()
		s.eliminated = s.eliminated[:0]
		s.recent = s.recent[:0]
		s.matchID.Store(uuid.NewString())
		s.logger.Info("match restarted", "match", s.matchID.Load())
	case CmdGapDelta:
		s.match.SetGapSize(s.match.GapSize() + cmd.Delta)
		s.logger.Info("gap changed", "gap", s.match.GapSize())
	case CmdCycleTheme:
		next := roster.NextTheme(s.match.Theme().Name)
		s.match.SetTheme(next.Name)
		s.logger.Info("theme changed", "theme", next.Name)
	case CmdRigRandom:
		alive := s.match.AliveEntrants()
		if len(alive) > 0 {
			pick := alive[rand.Intn(len(alive))]
			s.match.SetTargetWinner(pick.Code)
			s.logger.Info("rig set", "entrant", pick.Code)
		}
	case CmdClearRig:
		s.match.SetTargetWinner("")
		s.logger.Info("rig cleared")
	}
}

// applyEvents folds match events into the server's placement bookkeeping.
func (s *Server) applyEvents(events []arena.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case arena.EventEliminated:
			s.eliminated = append(s.eliminated, ev.Entrant)
			s.recent = append(s.recent, Elimination{Entrant: ev.Entrant, Tick: ev.Tick})
			if len(s.recent) > recentKeep {
				s.recent = s.recent[len(s.recent)-recentKeep:]
			}
		case arena.EventWinnerDetected:
			s.logger.Info("winner detected", "entrant", ev.Entrant.Code)
		case arena.EventGameEnded:
			s.logger.Info("game ended", "entrant", ev.Entrant.Code)
		}
	}
}

// fanOut copies events to every spectator, dropping on full buffers so a
// stalled spectator can never stall the loop.
func (s *Server) fanOut(events []arena.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, handle := range s.spectators {
		for _, ev := range events {
			select {
			case handle.EventsCh <- ev:
			default:
			}
		}
	}
}

// publishSnapshot builds and stores the frame's immutable snapshot.
func (s *Server) publishSnapshot() {
	s.mu.RLock()
	specs := len(s.spectators)
	s.mu.RUnlock()

	snap := &Snapshot{
		MatchID:    s.matchID.Load().(string),
		Match:      s.match.Snapshot(),
		Spectators: specs,
		Standings:  s.buildStandings(),
		Recent:     append([]Elimination(nil), s.recent...),
	}
	s.snapshot.Store(snap)
}
