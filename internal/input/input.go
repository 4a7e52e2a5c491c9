// Package input reads spectator key presses from a raw-mode terminal stream.
package input

import "bufio"

// Input represents the control keys pressed since the last frame. Spectator
// controls are taps, not held movement keys, so presses are edge-triggered:
// each byte produces its action exactly once.
type Input struct {
	Quit        bool // q
	TogglePause bool // space or p
	Restart     bool // r
	GapShrink   bool // [
	GapGrow     bool // ]
	CycleTheme  bool // t
	RigRandom   bool // w
	ClearRig    bool // W
	Pressed     []byte
}

// Any reports whether any key at all was pressed.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// Stream delivers input bytes from a reader via a channel so the frame loop
// can drain them without blocking.
type Stream struct {
	ch chan byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The channel closes when the reader fails (disconnect).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// maps them to control actions. A closed stream reads as Quit.
func ReadInput(s *Stream) Input {
	var in Input

	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				in.Quit = true
				return in
			}
			in.Pressed = append(in.Pressed, b)
			applyByte(&in, b)
		default:
			return in
		}
	}
}

// applyByte maps a single byte to its control action.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl-C arrives as 0x03 in raw mode
		in.Quit = true
	case ' ', 'p', 'P':
		in.TogglePause = true
	case 'r', 'R':
		in.Restart = true
	case '[':
		in.GapShrink = true
	case ']':
		in.GapGrow = true
	case 't', 'T':
		in.CycleTheme = true
	case 'w':
		in.RigRandom = true
	case 'W':
		in.ClearRig = true
	}
}
