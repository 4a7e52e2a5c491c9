package feed

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/mkolar/ringout/internal/arena"
	"github.com/mkolar/ringout/internal/host"
)

// fakeHost is a MatchHost with canned state for handler tests.
type fakeHost struct {
	mu       sync.Mutex
	snapshot *host.Snapshot
	commands []host.Command
	handle   *host.SpectatorHandle
	shutdown chan struct{}
}

func newFakeHost() *fakeHost {
	shutdown := make(chan struct{})
	return &fakeHost{
		snapshot: &host.Snapshot{
			MatchID: "test-match",
			Match:   arena.Snapshot{PhaseName: "starting", Countdown: 3, AliveCount: 2},
		},
		shutdown: shutdown,
	}
}

func (f *fakeHost) RegisterSpectator(name string) *host.SpectatorHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handle = &host.SpectatorHandle{
		ID:       1,
		Name:     name,
		EventsCh: make(chan arena.Event, 16),
		Shutdown: f.shutdown,
	}
	return f.handle
}

func (f *fakeHost) UnregisterSpectator(id int) {}

func (f *fakeHost) Send(cmd host.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
}

func (f *fakeHost) GetSnapshot() *host.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

func (f *fakeHost) sentCommands() []host.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]host.Command(nil), f.commands...)
}

var _ host.MatchHost = (*fakeHost)(nil)

func dialTestFeed(t *testing.T, fh *fakeHost) *websocket.Conn {
	t.Helper()
	handler := NewHandler(fh, log.New(io.Discard))
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?name=tester"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) serverMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	var msg serverMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("malformed message %q: %v", payload, err)
	}
	return msg
}

func TestFeedSendsInitialSnapshot(t *testing.T) {
	fh := newFakeHost()
	conn := dialTestFeed(t, fh)

	msg := readMessage(t, conn)
	if msg.Type != "snapshot" {
		t.Fatalf("first message type = %q, want snapshot", msg.Type)
	}
	if msg.Snapshot == nil || msg.Snapshot.MatchID != "test-match" {
		t.Fatalf("snapshot payload = %+v", msg.Snapshot)
	}
	if msg.Snapshot.Match.Countdown != 3 {
		t.Fatalf("snapshot countdown = %d, want 3", msg.Snapshot.Match.Countdown)
	}
}

func TestFeedForwardsEvents(t *testing.T) {
	fh := newFakeHost()
	conn := dialTestFeed(t, fh)
	readMessage(t, conn) // Initial snapshot

	fh.handle.EventsCh <- arena.Event{Kind: arena.EventCountdownTick, Countdown: 2, Tick: 0}

	for {
		msg := readMessage(t, conn)
		if msg.Type == "snapshot" {
			continue // Periodic snapshot raced ahead of the event
		}
		if msg.Type != "event" {
			t.Fatalf("message type = %q, want event", msg.Type)
		}
		if msg.Event.Countdown != 2 {
			t.Fatalf("event countdown = %d, want 2", msg.Event.Countdown)
		}
		return
	}
}

func TestFeedAcceptsControlCommands(t *testing.T) {
	fh := newFakeHost()
	conn := dialTestFeed(t, fh)
	readMessage(t, conn)

	sends := []string{
		`{"type":"pause"}`,
		`{"type":"gap","delta":-1}`,
		`{"type":"rig"}`,
	}
	for _, s := range sends {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(s)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(fh.sentCommands()) == len(sends) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	cmds := fh.sentCommands()
	if len(cmds) != 3 {
		t.Fatalf("host received %d commands, want 3: %+v", len(cmds), cmds)
	}
	if cmds[0].Kind != host.CmdTogglePause {
		t.Fatalf("first command = %+v, want pause", cmds[0])
	}
	if cmds[1].Kind != host.CmdGapDelta || cmds[1].Delta != -1 {
		t.Fatalf("second command = %+v, want gap -1", cmds[1])
	}
	if cmds[2].Kind != host.CmdRigRandom {
		t.Fatalf("third command = %+v, want rig", cmds[2])
	}
}

func TestFeedIgnoresMalformedMessages(t *testing.T) {
	fh := newFakeHost()
	conn := dialTestFeed(t, fh)
	readMessage(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"pause"}`)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(fh.sentCommands()) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("commands after malformed input = %+v, want single pause", fh.sentCommands())
}

func TestFeedClosesOnShutdown(t *testing.T) {
	fh := newFakeHost()
	conn := dialTestFeed(t, fh)
	readMessage(t, conn)

	close(fh.shutdown)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
				t.Fatalf("connection ended with %v, want going-away close", err)
			}
			return
		}
	}
}
