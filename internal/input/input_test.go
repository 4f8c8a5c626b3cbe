package input

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hold = 100 * time.Millisecond

func types(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}

func TestParseKeys(t *testing.T) {
	tokens, rest := parse([]byte("aDwS \r\x1b[A\x1b[B\x1b[C\x1b[D\x1bOAq"))
	require.Nil(t, rest)

	var keys []Key
	for _, tok := range tokens {
		keys = append(keys, tok.key)
	}
	assert.Equal(t, []Key{
		KeyLeft, KeyRight, KeyUp, KeyDown, KeySpace, KeyEnter,
		KeyUp, KeyDown, KeyRight, KeyLeft, KeyUp, KeyQuit,
	}, keys)
}

func TestParseCarriesPartialSequences(t *testing.T) {
	for _, partial := range []string{"\x1b", "\x1b[", "\x1b[<0;12", "\x1b[<0;12;5"} {
		tokens, rest := parse([]byte("a" + partial))
		assert.Len(t, tokens, 1, partial)
		assert.Equal(t, partial, string(rest))
	}
}

func TestModifiedArrows(t *testing.T) {
	s := newStream(hold)
	now := time.Now()
	assert.Equal(t, []string{"down:left"}, types(s.process([]byte("\x1b[1;5D"), now)), "ctrl+left")
	assert.Equal(t, []string{"down:up"}, types(s.process([]byte("\x1b[1;2A"), now)), "shift+up")
}

func TestParseSkipsUnknownSequences(t *testing.T) {
	tokens, rest := parse([]byte("\x1b[3~\x1b[200~\x1b[?1;2cw"))
	require.Nil(t, rest)
	require.Len(t, tokens, 1)
	assert.Equal(t, KeyUp, tokens[0].key)

	tokens, rest = parse([]byte("a\x1b[1;5"))
	assert.Len(t, tokens, 1)
	assert.Equal(t, "\x1b[1;5", string(rest), "an unfinished sequence waits for its final byte")
}

func TestParseSGRMouse(t *testing.T) {
	tokens, rest := parse([]byte("\x1b[<0;12;5M\x1b[<0;12;5m\x1b[<35;40;9M\x1b[<64;1;1M"))
	require.Nil(t, rest)
	require.Len(t, tokens, 4)

	assert.Equal(t, &mouseReport{button: 0, x: 12, y: 5}, tokens[0].mouse)
	assert.True(t, tokens[1].mouse.release)
	assert.Equal(t, 35, tokens[2].mouse.button)
	assert.Equal(t, 64, tokens[3].mouse.button)
}

func TestMouseEvents(t *testing.T) {
	s := newStream(hold)
	events := s.process([]byte("\x1b[<0;12;5M\x1b[<0;12;5m\x1b[<35;40;9M\x1b[<64;1;1M"), time.Now())

	assert.Equal(t, []string{"move:12,5", "click:12,5", "move:40,9"}, types(events))
}

func TestHeldKeyEmitsSingleDownThenUp(t *testing.T) {
	s := newStream(hold)
	t0 := time.Now()

	assert.Equal(t, []string{"down:left"}, types(s.process([]byte("a"), t0)))
	// Auto-repeat keeps the key held without new events.
	assert.Empty(t, s.process([]byte("a"), t0.Add(50*time.Millisecond)))
	assert.Empty(t, s.process(nil, t0.Add(120*time.Millisecond)))
	// Lapsed hold releases it.
	assert.Equal(t, []string{"up:left"}, types(s.process(nil, t0.Add(160*time.Millisecond))))
	assert.Empty(t, s.process(nil, t0.Add(500*time.Millisecond)))
}

func TestActionKeysRepeat(t *testing.T) {
	s := newStream(hold)
	events := s.process([]byte("   "), time.Now())
	assert.Equal(t, []string{"down:space", "down:space", "down:space"}, types(events))
}

func TestSplitArrowAcrossPolls(t *testing.T) {
	s := newStream(hold)
	now := time.Now()

	assert.Empty(t, s.process([]byte("\x1b"), now))
	assert.Equal(t, []string{"down:up"}, types(s.process([]byte("[A"), now)))
}

func TestLoneEscape(t *testing.T) {
	s := newStream(hold)
	now := time.Now()

	assert.Empty(t, s.process([]byte("\x1b"), now))
	assert.Equal(t, []string{"down:escape"}, types(s.process(nil, now)))
}

func TestReset(t *testing.T) {
	s := newStream(hold)
	now := time.Now()
	s.process([]byte("ad"), now)
	s.Reset()
	assert.Empty(t, s.process(nil, now.Add(time.Second)), "reset keys are not released again")
}

func TestStartStreamCloses(t *testing.T) {
	s := StartStream(strings.NewReader("q"), hold)

	var events []Event
	require.Eventually(t, func() bool {
		events = append(events, s.Poll(time.Now())...)
		return s.Closed()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"down:quit"}, types(events))
}

// endless never runs out of bytes that map to no key.
type endless struct{}

func (endless) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	return len(p), nil
}

func TestStopReleasesBlockedReader(t *testing.T) {
	s := StartStream(endless{}, hold)
	require.Eventually(t, func() bool { return len(s.ch) == cap(s.ch) }, time.Second, time.Millisecond)

	s.Stop()
	s.Stop()
	require.Eventually(t, func() bool {
		assert.Empty(t, s.Poll(time.Now()))
		return s.Closed()
	}, time.Second, time.Millisecond, "the reader exits instead of waiting on a full buffer")
}

func TestMouseModes(t *testing.T) {
	var buf bytes.Buffer
	EnableMouse(&buf)
	DisableMouse(&buf)
	assert.Equal(t, "\x1b[?1003h\x1b[?1006h\x1b[?1003l\x1b[?1006l", buf.String())
}
