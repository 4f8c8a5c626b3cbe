package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/eggcatch/internal/draw"
)

// ellipseSegments is the polygon resolution used for non-circular ellipses.
const ellipseSegments = 32

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// surface adapts an ebiten image to draw.Surface. Polygons are drawn as
// triangle fans, which is exact for the convex faces the renderer emits.
type surface struct {
	img     *ebiten.Image
	vs      []ebiten.Vertex
	is      []uint16
	ellipse []draw.Point
}

var _ draw.Surface = (*surface)(nil)

func (s *surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *surface) Fill(c colorful.Color) {
	s.img.Fill(c.Clamped())
}

func (s *surface) FillPolygon(points []draw.Point, c colorful.Color) {
	if len(points) < 3 {
		return
	}
	c = c.Clamped()
	r, g, b := float32(c.R), float32(c.G), float32(c.B)

	s.vs = s.vs[:0]
	s.is = s.is[:0]
	for _, p := range points {
		s.vs = append(s.vs, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: 1,
		})
	}
	for i := 1; i+1 < len(points); i++ {
		s.is = append(s.is, 0, uint16(i), uint16(i+1))
	}
	s.img.DrawTriangles(s.vs, s.is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *surface) FillEllipse(center draw.Point, rx, ry float64, c colorful.Color) {
	if math.Abs(rx-ry) < 0.5 {
		vector.DrawFilledCircle(s.img, float32(center.X), float32(center.Y), float32(rx), c.Clamped(), true)
		return
	}
	s.ellipse = s.ellipse[:0]
	for i := 0; i < ellipseSegments; i++ {
		a := float64(i) / ellipseSegments * 2 * math.Pi
		s.ellipse = append(s.ellipse, draw.Point{
			X: center.X + rx*math.Cos(a),
			Y: center.Y + ry*math.Sin(a),
		})
	}
	s.FillPolygon(s.ellipse, c)
}
