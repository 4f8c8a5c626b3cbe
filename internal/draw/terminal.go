package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// TextWriter collects one frame of terminal output (canvas cells plus text
// overlays) and sends it to the underlying writer in network-sized chunks.
// Text placed with WriteAt is reported back to the canvas so the cells it
// covered are repainted once the overlay goes away.
type TextWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	canvas *Canvas
	numBuf [20]byte // Scratch buffer for allocation-free integer formatting
}

var _ io.Writer = (*TextWriter)(nil)

// NewTextWriter creates a TextWriter that writes to w and positions text
// relative to canvas.
func NewTextWriter(w io.Writer, canvas *Canvas) *TextWriter {
	return &TextWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		canvas: canvas,
	}
}

// Write implements io.Writer so Canvas.Render can target the frame buffer.
func (tw *TextWriter) Write(p []byte) (int, error) {
	return tw.buf.Write(p)
}

// WriteString appends raw output.
func (tw *TextWriter) WriteString(s string) {
	tw.buf.WriteString(s)
}

// WriteAt writes s at 1-based canvas coordinates. The canvas offset is
// applied automatically and the covered cells are invalidated.
func (tw *TextWriter) WriteAt(col, row int, s string) {
	tw.WriteStyledAt(col, row, "", s)
}

// WriteStyledAt is WriteAt with an SGR parameter string such as "1;33"
// applied to the text only.
func (tw *TextWriter) WriteStyledAt(col, row int, sgr, s string) {
	if tw.canvas != nil {
		tw.canvas.Invalidate(col, row, utf8.RuneCountInString(s))
		col += tw.canvas.OffsetCol()
		row += tw.canvas.OffsetRow()
	}
	tw.buf.WriteString("\033[")
	tw.buf.Write(strconv.AppendInt(tw.numBuf[:0], int64(row), 10))
	tw.buf.WriteByte(';')
	tw.buf.Write(strconv.AppendInt(tw.numBuf[:0], int64(col), 10))
	tw.buf.WriteByte('H')
	if sgr != "" {
		tw.buf.WriteString("\033[" + sgr + "m")
	}
	tw.buf.WriteString(s)
	tw.buf.WriteString("\033[0m")
}

// Len returns the number of buffered bytes.
func (tw *TextWriter) Len() int {
	return tw.buf.Len()
}

// Flush writes the buffered frame in chunks and resets the buffer.
func (tw *TextWriter) Flush() error {
	data := tw.buf.String()
	tw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := tw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return tw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedTermSize returns a TermSizeFunc that always reports width x height.
func FixedTermSize(width, height int) TermSizeFunc {
	return func() (int, int, error) {
		return width, height, nil
	}
}
