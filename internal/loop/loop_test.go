package loop

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/eggcatch/internal/config"
	"github.com/tomz197/eggcatch/internal/draw"
	"github.com/tomz197/eggcatch/internal/input"
	"github.com/tomz197/eggcatch/internal/session"
)

// syncBuffer is a bytes.Buffer safe to read while Run writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testOptions() Options {
	return Options{
		Tuning:       config.Default(),
		TermSizeFunc: draw.FixedTermSize(80, 24),
	}
}

func runAsync(t *testing.T, ctx context.Context, r io.Reader, w io.Writer, opts Options) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- Run(ctx, r, w, opts) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestFrameClock(t *testing.T) {
	var c FrameClock
	start := time.Now()

	assert.Equal(t, float64(0), c.Tick(start))
	assert.InDelta(t, 0.25, c.Tick(start.Add(250*time.Millisecond)), 1e-9)
	assert.Equal(t, float64(0), c.Tick(start), "clock going backwards")
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(80, 24)
	assert.Equal(t, []int{80, 24, 0, 0}, []int{w, h, col, row})

	w, h, col, row = clampTermSize(MaxTermWidth+20, MaxTermHeight+10)
	assert.Equal(t, []int{MaxTermWidth, MaxTermHeight, 10, 5}, []int{w, h, col, row})
}

func TestRunQuit(t *testing.T) {
	out := &syncBuffer{}
	done := runAsync(t, context.Background(), strings.NewReader("q"), out, testOptions())
	waitDone(t, done)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\033[?25l"), "cursor hidden first")
	assert.Contains(t, s, "\033[?1003h\033[?1006h")
	assert.Contains(t, s, "\033[?1003l\033[?1006l")
	assert.True(t, strings.HasSuffix(s, "\033[?25h"), "cursor restored last")
}

func TestRunStartAndPlay(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	out := &syncBuffer{}
	done := runAsync(t, context.Background(), pr, out, testOptions())

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Press SPACE")
	}, 3*time.Second, 10*time.Millisecond)

	_, err := pw.Write([]byte(" "))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Score: 0")
	}, 3*time.Second, 10*time.Millisecond)

	_, err = pw.Write([]byte(" "))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Eggs: 1")
	}, 3*time.Second, 10*time.Millisecond)

	_, err = pw.Write([]byte("q"))
	require.NoError(t, err)
	waitDone(t, done)
}

func TestRunContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(t, ctx, pr, io.Discard, testOptions())

	cancel()
	waitDone(t, done)
}

func TestRunShutdownNotice(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	notices := make(chan session.Notice, 1)
	notices <- session.NoticeShutdown

	opts := testOptions()
	opts.Notices = notices
	opts.ShutdownDisplay = 150 * time.Millisecond
	out := &syncBuffer{}

	start := time.Now()
	waitDone(t, runAsync(t, context.Background(), pr, out, opts))
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	assert.Contains(t, out.String(), "SERVER SHUTTING DOWN")
}

func TestRunClosedNoticesDisconnects(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	notices := make(chan session.Notice)
	close(notices)

	opts := testOptions()
	opts.Notices = notices
	waitDone(t, runAsync(t, context.Background(), pr, io.Discard, opts))
}

func TestHandleEventStateMachine(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	rn := newRunner(pr, io.Discard, testOptions())
	require.Equal(t, ScreenStart, rn.screen)

	rn.handleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyLeft})
	assert.Equal(t, ScreenStart, rn.screen)
	assert.False(t, rn.game.Controls.Left, "start screen swallows movement")

	rn.handleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeySpace})
	assert.Equal(t, ScreenPlaying, rn.screen)
	assert.Empty(t, rn.game.Eggs, "the start key does not drop an egg")

	rn.handleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeySpace})
	rn.handleEvent(input.Event{Type: input.EventClick, X: 10, Y: 5})
	assert.Len(t, rn.game.Eggs, 2)

	rn.handleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyRight})
	assert.True(t, rn.game.Controls.Right)

	rn.handleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyEscape})
	assert.Equal(t, ScreenStart, rn.screen)

	rn.handleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyEnter})
	assert.Equal(t, ScreenPlaying, rn.screen)
	assert.Empty(t, rn.game.Eggs, "a new round starts empty")
	assert.False(t, rn.game.Controls.Right)

	rn.handleEvent(input.Event{Type: input.EventKeyDown, Key: input.KeyQuit})
	assert.False(t, rn.running)
}

func TestPointerOffsetByCentring(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	opts := testOptions()
	opts.TermSizeFunc = draw.FixedTermSize(MaxTermWidth+40, 30)
	rn := newRunner(pr, io.Discard, opts)
	rn.startGame()

	// Column 21 is the first canvas column when 20 columns are skipped.
	rn.handleEvent(input.Event{Type: input.EventPointerMove, X: 21, Y: 3})
	assert.InDelta(t, -1, rn.game.Controls.PointerX, 1e-9)

	rn.handleEvent(input.Event{Type: input.EventPointerMove, X: 21 + MaxTermWidth/2, Y: 3})
	assert.InDelta(t, 0, rn.game.Controls.PointerX, 1e-9)
}

func TestInactivity(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	opts := testOptions()
	opts.Inactivity = true
	rn := newRunner(pr, io.Discard, opts)

	now := rn.lastInput.Add(InactivityWarn + time.Second)
	rn.processInput(now)
	assert.True(t, rn.inactive)
	assert.True(t, rn.running)

	rn.processInput(rn.lastInput.Add(InactivityDisconnect + time.Second))
	assert.False(t, rn.running)
}

func TestScreenString(t *testing.T) {
	assert.Equal(t, "start", ScreenStart.String())
	assert.Equal(t, "playing", ScreenPlaying.String())
	assert.Equal(t, "shutdown", ScreenShutdown.String())
}
