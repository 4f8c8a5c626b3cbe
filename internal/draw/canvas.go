package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// cell is what one terminal character shows: the upper and lower half-block
// colours packed as 0xRRGGBB.
type cell struct {
	top, bottom uint32
}

// unknownCell never matches a rendered cell, forcing a rewrite.
var unknownCell = cell{top: 1 << 31}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. It implements Surface in terminal sub-pixels.
//
// Render only writes cells that changed since the previous Render, which
// keeps SSH traffic proportional to what moves on screen.
type Canvas struct {
	termWidth      int      // Terminal columns
	termHeight     int      // Terminal rows
	subPixelHeight int      // termHeight * 2
	pixels         []uint32 // Flat slice: [y * termWidth + x] packed RGB
	prev           []cell   // What the terminal currently shows, per cell

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	intersectionBuf []float64
}

var _ Surface = (*Canvas)(nil)

// NewCanvas creates a canvas for the given terminal dimensions.
func NewCanvas(termWidth, termHeight int) *Canvas {
	c := &Canvas{}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions. A change of size
// forces the next Render to redraw everything.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth == c.termWidth && termHeight == c.termHeight {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]uint32, c.subPixelHeight*termWidth)
	c.prev = make([]cell, termWidth*termHeight)
	c.ForceRedraw()
}

// ForceRedraw makes the next Render rewrite every cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = unknownCell
	}
}

// Invalidate marks n cells starting at the 1-based canvas position (col, row)
// as overwritten by something else (text overlays), so the next Render
// repaints them.
func (c *Canvas) Invalidate(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.prev[r*c.termWidth+x] = unknownCell
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Size returns the canvas size in sub-pixels.
func (c *Canvas) Size() (int, int) {
	return c.termWidth, c.subPixelHeight
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col colorful.Color) {
	rgb := pack(col)
	for i := range c.pixels {
		c.pixels[i] = rgb
	}
}

// At returns the packed colour of a sub-pixel, or 0 outside the canvas.
func (c *Canvas) At(x, y int) uint32 {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) setPixel(x, y int, rgb uint32) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = rgb
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col colorful.Color) {
	c.drawLine(p1, p2, pack(col))
}

func (c *Canvas) drawLine(p1, p2 Point, rgb uint32) {
	p1, p2, ok := c.clipLine(p1, p2)
	if !ok {
		return
	}
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x2, y2 := int(math.Round(p2.X)), int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, rgb)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillPolygon fills a polygon using a scanline pass, then traces its outline
// so slivers thinner than a sub-pixel still show.
func (c *Canvas) FillPolygon(points []Point, col colorful.Color) {
	if len(points) < 2 {
		return
	}
	rgb := pack(col)

	if len(points) >= 3 {
		c.fillPolygon(points, rgb)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.drawLine(points[i], points[(i+1)%n], rgb)
	}
}

func (c *Canvas) fillPolygon(points []Point, rgb uint32) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := max(int(math.Ceil(intersections[i]-0.5)), 0)
			xEnd := min(int(math.Floor(intersections[i+1]-0.5)), c.termWidth-1)
			for x := xStart; x <= xEnd; x++ {
				c.pixels[y*c.termWidth+x] = rgb
			}
		}
	}
}

// clipLine trims a segment to the pixel grid plus a one pixel margin
// (Liang-Barsky), so near-clipped faces with huge coordinates stay cheap.
func (c *Canvas) clipLine(p1, p2 Point) (Point, Point, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	edges := [4][2]float64{
		{-dx, p1.X + 1},
		{dx, float64(c.termWidth) - p1.X},
		{-dy, p1.Y + 1},
		{dy, float64(c.subPixelHeight) - p1.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p1, p2, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return p1, p2, false
		}
	}
	return Point{p1.X + t0*dx, p1.Y + t0*dy}, Point{p1.X + t1*dx, p1.Y + t1*dy}, true
}

// FillEllipse fills an axis-aligned ellipse. Ellipses smaller than a
// sub-pixel still set the pixel under their centre.
func (c *Canvas) FillEllipse(center Point, rx, ry float64, col colorful.Color) {
	rgb := pack(col)
	if rx < 0.5 || ry < 0.5 {
		c.setPixel(int(math.Floor(center.X)), int(math.Floor(center.Y)), rgb)
		return
	}

	yStart := max(int(math.Floor(center.Y-ry)), 0)
	yEnd := min(int(math.Ceil(center.Y+ry)), c.subPixelHeight-1)
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - center.Y) / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		xStart := max(int(math.Ceil(center.X-half-0.5)), 0)
		xEnd := min(int(math.Floor(center.X+half-0.5)), c.termWidth-1)
		for x := xStart; x <= xEnd; x++ {
			c.pixels[y*c.termWidth+x] = rgb
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes changed cells to w as upper-half blocks with 24-bit
// foreground (top pixel) and background (bottom pixel) colours.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	lastFg, lastBg := unknownCell.top, unknownCell.top
	cursorCol, cursorRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			idx := row*c.termWidth + col
			if c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur

			if row != cursorRow || col != cursorCol {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if cur.top != lastFg {
				c.writeColor("38", cur.top)
				lastFg = cur.top
			}
			if cur.bottom != lastBg {
				c.writeColor("48", cur.bottom)
				lastBg = cur.bottom
			}
			c.renderBuf.WriteRune(BlockUpperHalf)
			cursorCol, cursorRow = col+1, row
		}
	}
	if c.renderBuf.Len() == 0 {
		return
	}
	c.renderBuf.WriteString("\033[0m")

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) writeColor(layer string, rgb uint32) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.WriteString(layer)
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], uint64(rgb>>16&0xff), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], uint64(rgb>>8&0xff), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], uint64(rgb&0xff), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.WriteString("\033[0m")

	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + line + "┐")
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + line + "┘")
		} else {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + line)
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			r := strconv.Itoa(row)
			buf.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│\033[" + r + ";" + strconv.Itoa(right) + "H│")
		}
	}

	io.WriteString(w, buf.String())
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func pack(col colorful.Color) uint32 {
	r, g, b := col.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
