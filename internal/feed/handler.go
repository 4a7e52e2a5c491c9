// Package feed streams match snapshots and events to browser spectators over
// websockets and accepts the same control commands the terminal UI sends.
package feed

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/mkolar/ringout/internal/arena"
	"github.com/mkolar/ringout/internal/host"
)

// snapshotInterval is the cadence for full snapshot frames. Events go out as
// they happen; full state goes out at a lower rate than the tick loop.
const snapshotInterval = 100 * time.Millisecond

// Handler upgrades HTTP requests to websocket spectator sessions.
type Handler struct {
	host     host.MatchHost
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket feed handler attached to the given host.
func NewHandler(h host.MatchHost, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		host:   h,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// serverMessage is one frame on the wire, either a snapshot or an event.
type serverMessage struct {
	Type     string         `json:"type"` // "snapshot" or "event"
	Snapshot *host.Snapshot `json:"snapshot,omitempty"`
	Event    *arena.Event   `json:"event,omitempty"`
}

// clientMessage is a control request from the browser.
type clientMessage struct {
	Type  string `json:"type"`
	Delta int    `json:"delta,omitempty"` // For "gap"
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "web"
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	handle := h.host.RegisterSpectator(name)
	defer h.host.UnregisterSpectator(handle.ID)
	defer conn.Close()

	h.logger.Info("web spectator connected", "id", handle.ID, "remote", r.RemoteAddr)

	// Initial full state before any events.
	if snap := h.host.GetSnapshot(); snap != nil {
		if err := writeMessage(conn, serverMessage{Type: "snapshot", Snapshot: snap}); err != nil {
			return
		}
	}

	done := make(chan struct{})
	go h.readLoop(conn, done)

	ticker := time.NewTicker(snapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			h.logger.Info("web spectator disconnected", "id", handle.ID)
			return
		case <-handle.Shutdown:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			conn.WriteMessage(websocket.CloseMessage, msg)
			return
		case ev, ok := <-handle.EventsCh:
			if !ok {
				return
			}
			if err := writeMessage(conn, serverMessage{Type: "event", Event: &ev}); err != nil {
				return
			}
		case <-ticker.C:
			snap := h.host.GetSnapshot()
			if snap == nil {
				continue
			}
			if err := writeMessage(conn, serverMessage{Type: "snapshot", Snapshot: snap}); err != nil {
				return
			}
		}
	}
}

// readLoop consumes control messages until the connection drops, then closes
// done so the write loop exits.
func (h *Handler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Warn("discarding malformed feed message", "err", err)
			continue
		}

		switch msg.Type {
		case "pause":
			h.host.Send(host.Command{Kind: host.CmdTogglePause})
		case "restart":
			h.host.Send(host.Command{Kind: host.CmdRestart})
		case "gap":
			if msg.Delta != 0 {
				h.host.Send(host.Command{Kind: host.CmdGapDelta, Delta: msg.Delta})
			}
		case "theme":
			h.host.Send(host.Command{Kind: host.CmdCycleTheme})
		case "rig":
			h.host.Send(host.Command{Kind: host.CmdRigRandom})
		case "unrig":
			h.host.Send(host.Command{Kind: host.CmdClearRig})
		default:
			h.logger.Warn("unknown feed message type", "type", msg.Type)
		}
	}
}

func writeMessage(conn *websocket.Conn, msg serverMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
