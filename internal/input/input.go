package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a direction is considered "held" after its last
// byte. Terminals only report key repeats, so a held arrow arrives as a burst
// of bytes with gaps between them.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit  bool
	Left  bool
	Right bool
	Up    bool
	Down  bool
	// Fire counts space presses drained this frame; every press is one laser.
	Fire    int
	Pause   bool
	Enter   bool
	Pressed []byte
}

// Any reports whether anything was typed this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// maxPending bounds an unfinished escape sequence carried between frames.
const maxPending = 16

// keyState tracks the last time each direction was pressed, plus the start of
// an escape sequence whose remaining bytes have not arrived yet.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time

	pending []byte
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
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

// ResetKeyInput forgets held directions, e.g. when a new game starts.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	input := parse(&s.state, buf, now)
	// A closed stream means the connection is gone.
	if closed {
		input.Quit = true
	}
	return input
}

// parse updates held-key timestamps from buf and returns the frame's input.
// An escape sequence cut off at the end of buf is kept in state and completed
// by the next call.
func parse(state *keyState, buf []byte, now time.Time) Input {
	input := Input{Pressed: buf}

	data := buf
	if len(state.pending) > 0 {
		data = append(state.pending, buf...)
		state.pending = nil
	}

	for i := 0; i < len(data); i++ {
		b := data[i]

		if b == '\x1b' {
			end, ok := csiEnd(data, i)
			if !ok {
				if len(data)-i <= maxPending {
					state.pending = append([]byte(nil), data[i:]...)
				}
				break
			}
			if end > i {
				// CSI sequence: ESC [ <params> <final>
				switch data[end] {
				case 'A':
					state.up = now
				case 'B':
					state.down = now
				case 'C':
					state.right = now
				case 'D':
					state.left = now
				}
				i = end
			}
			// A lone ESC (Escape key or Alt prefix) is dropped.
			continue
		}

		switch b {
		case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
			input.Quit = true
		case 'a', 'A':
			state.left = now
		case 'd', 'D':
			state.right = now
		case 'w', 'W':
			state.up = now
		case 's', 'S':
			state.down = now
		case ' ':
			input.Fire++
		case 'p', 'P':
			input.Pause = true
		case '\n', '\r':
			input.Enter = true
		}
	}

	input.Left = now.Sub(state.left) < keyHoldDuration
	input.Right = now.Sub(state.right) < keyHoldDuration
	input.Up = now.Sub(state.up) < keyHoldDuration
	input.Down = now.Sub(state.down) < keyHoldDuration
	return input
}

// csiEnd looks for a CSI sequence starting at the ESC at data[i]. It returns
// the index of the final byte, or i when the ESC does not start one. ok is
// false when data ends before the sequence is complete.
func csiEnd(data []byte, i int) (end int, ok bool) {
	if i+1 >= len(data) {
		return 0, false
	}
	if data[i+1] != '[' {
		return i, true
	}
	j := i + 2
	for j < len(data) && data[j] >= 0x30 && data[j] <= 0x3f {
		j++ // Parameter bytes, e.g. "1;2" in a modified arrow key
	}
	if j >= len(data) {
		return 0, false
	}
	return j, true
}
