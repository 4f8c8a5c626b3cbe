// Package draw renders the scene graph: a perspective camera, a flat-shaded
// software renderer, and surfaces to draw on (the terminal canvas here,
// other backends elsewhere).
package draw

import (
	"fmt"
	"io"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Surface is a 2D pixel target the renderer fills.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)
	// Fill paints every pixel.
	Fill(c colorful.Color)
	// FillPolygon paints a convex polygon given in pixel coordinates.
	FillPolygon(points []Point, c colorful.Color)
	// FillEllipse paints an axis-aligned ellipse.
	FillEllipse(center Point, rx, ry float64, c colorful.Color)
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// ResetStyle restores the default terminal colours.
func ResetStyle(w io.Writer) {
	fmt.Fprint(w, "\033[0m")
}
