// Package input turns a raw terminal byte stream into key and mouse events.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"
)

// Key identifies a logical key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEnter
	KeyEscape
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeySpace:
		return "space"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// Directional reports whether k is one of the four movement keys.
func (k Key) Directional() bool {
	return k == KeyLeft || k == KeyRight || k == KeyUp || k == KeyDown
}

// EventType classifies an Event.
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventClick       // Primary mouse button pressed at X, Y
	EventPointerMove // Pointer moved to X, Y
)

// Event is a single input occurrence. X and Y are 1-based terminal cells for
// mouse events.
type Event struct {
	Type EventType
	Key  Key
	X, Y int
}

func (e Event) String() string {
	switch e.Type {
	case EventKeyDown:
		return "down:" + e.Key.String()
	case EventKeyUp:
		return "up:" + e.Key.String()
	case EventClick:
		return fmt.Sprintf("click:%d,%d", e.X, e.Y)
	default:
		return fmt.Sprintf("move:%d,%d", e.X, e.Y)
	}
}

// Stream delivers input bytes via a channel and synthesises key releases.
//
// Terminals only report presses. A directional key counts as held while its
// auto-repeat keeps arriving within the hold duration; once it lapses a
// KeyUp is emitted. Action keys (space, enter, quit) emit a KeyDown for
// every press, repeats included.
type Stream struct {
	ch      chan byte
	stop    chan struct{}
	once    sync.Once
	hold    time.Duration
	held    map[Key]time.Time // Last press of each held directional key
	pending []byte            // Incomplete escape sequence from the last poll
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader, hold time.Duration) *Stream {
	s := newStream(hold)
	br := bufio.NewReader(r)
	go func() {
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.stop:
				return
			}
		}
	}()
	return s
}

func newStream(hold time.Duration) *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		stop: make(chan struct{}),
		hold: hold,
		held: make(map[Key]time.Time),
	}
}

// Stop ends the reader goroutine at its next byte, even when the buffer is
// full and nobody polls any more. The stream then reports Closed.
func (s *Stream) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes (non-blocking) and returns the events they
// produce, followed by releases of keys whose hold lapsed.
func (s *Stream) Poll(now time.Time) []Event {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.process(buf, now)
}

// Reset releases every held key without emitting events.
func (s *Stream) Reset() {
	clear(s.held)
}

func (s *Stream) process(fresh []byte, now time.Time) []Event {
	buf := append(s.pending, fresh...)
	s.pending = nil

	// A lone ESC that stayed unanswered for a whole poll is the Escape key.
	if len(fresh) == 0 && len(buf) == 1 && buf[0] == '\x1b' {
		return append([]Event{{Type: EventKeyDown, Key: KeyEscape}}, s.expire(now)...)
	}

	tokens, rest := parse(buf)
	s.pending = rest

	var events []Event
	for _, tok := range tokens {
		switch {
		case tok.mouse != nil:
			events = append(events, tok.mouse.event()...)
		case tok.key.Directional():
			if _, ok := s.held[tok.key]; !ok {
				events = append(events, Event{Type: EventKeyDown, Key: tok.key})
			}
			s.held[tok.key] = now
		case tok.key != KeyNone:
			events = append(events, Event{Type: EventKeyDown, Key: tok.key})
		}
	}
	return append(events, s.expire(now)...)
}

// expire emits KeyUp for held keys not seen within the hold duration.
// Keys are checked in a fixed order so the event sequence is deterministic.
func (s *Stream) expire(now time.Time) []Event {
	var events []Event
	for _, k := range []Key{KeyLeft, KeyRight, KeyUp, KeyDown} {
		last, ok := s.held[k]
		if ok && now.Sub(last) >= s.hold {
			delete(s.held, k)
			events = append(events, Event{Type: EventKeyUp, Key: k})
		}
	}
	return events
}

// token is one parsed key press or mouse report.
type token struct {
	key   Key
	mouse *mouseReport
}

// mouseReport is an SGR (mode 1006) mouse report: ESC [ < b ; x ; y M|m.
type mouseReport struct {
	button  int
	x, y    int
	release bool
}

func (m *mouseReport) event() []Event {
	const motionBit = 32
	switch {
	case m.button >= 64: // wheel
		return nil
	case m.button&motionBit != 0:
		return []Event{{Type: EventPointerMove, X: m.x, Y: m.y}}
	case !m.release && m.button&3 == 0:
		return []Event{
			{Type: EventPointerMove, X: m.x, Y: m.y},
			{Type: EventClick, X: m.x, Y: m.y},
		}
	}
	return nil
}

// parse splits buf into tokens. A trailing incomplete escape sequence is
// returned as rest so it can be completed by the next read.
func parse(buf []byte) (tokens []token, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			if k := byteKey(b); k != KeyNone {
				tokens = append(tokens, token{key: k})
			}
			continue
		}

		// ESC at the very end may be the start of a sequence.
		if i+1 >= len(buf) {
			return tokens, buf[i:]
		}

		switch buf[i+1] {
		case '[', 'O':
			if i+2 >= len(buf) {
				return tokens, buf[i:]
			}
			if buf[i+1] == '[' && buf[i+2] == '<' {
				m, n, complete := parseSGRMouse(buf[i+3:])
				if !complete {
					return tokens, buf[i:]
				}
				if m != nil {
					tokens = append(tokens, token{mouse: m})
				}
				i += 2 + n
				continue
			}
			if buf[i+1] == 'O' {
				if k := arrowKey(buf[i+2]); k != KeyNone {
					tokens = append(tokens, token{key: k})
				}
				i += 2
				continue
			}
			final, n, complete := parseCSI(buf[i+2:])
			if !complete {
				return tokens, buf[i:]
			}
			// Modified arrows (ESC [ 1 ; 5 D) share the plain arrow's final byte.
			if k := arrowKey(final); k != KeyNone {
				tokens = append(tokens, token{key: k})
			}
			i += 1 + n
		default:
			tokens = append(tokens, token{key: KeyEscape})
		}
	}
	return tokens, nil
}

// parseCSI skips the parameter and intermediate bytes of a control sequence
// and returns its final byte. n counts the bytes consumed, final included.
func parseCSI(buf []byte) (final byte, n int, complete bool) {
	for i, c := range buf {
		switch {
		case c >= 0x20 && c <= 0x3f:
		case c >= 0x40 && c <= 0x7e:
			return c, i + 1, true
		default:
			// Not a valid sequence: stop before the offending byte.
			return 0, i, true
		}
	}
	return 0, 0, false
}

// parseSGRMouse parses "b;x;yM" (or m). n is the number of bytes consumed.
// complete is false when buf ends before the final byte.
func parseSGRMouse(buf []byte) (m *mouseReport, n int, complete bool) {
	var fields [3]int
	field := 0
	start := 0
	for i, c := range buf {
		switch {
		case c >= '0' && c <= '9':
		case c == ';':
			if field < 2 {
				fields[field], _ = strconv.Atoi(string(buf[start:i]))
			}
			field++
			start = i + 1
		case c == 'M' || c == 'm':
			if field != 2 {
				return nil, i + 1, true
			}
			fields[2], _ = strconv.Atoi(string(buf[start:i]))
			return &mouseReport{
				button:  fields[0],
				x:       fields[1],
				y:       fields[2],
				release: c == 'm',
			}, i + 1, true
		default:
			// Malformed report: consume up to here.
			return nil, i + 1, true
		}
	}
	return nil, 0, false
}

func arrowKey(b byte) Key {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return KeyNone
}

func byteKey(b byte) Key {
	switch b {
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case 'w', 'W':
		return KeyUp
	case 's', 'S':
		return KeyDown
	case ' ':
		return KeySpace
	case '\r', '\n':
		return KeyEnter
	case 'q', 'Q', '\x03':
		return KeyQuit
	}
	return KeyNone
}

// EnableMouse turns on any-motion mouse tracking with SGR encoding.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1003h\033[?1006h")
}

// DisableMouse undoes EnableMouse.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1003l\033[?1006l")
}
