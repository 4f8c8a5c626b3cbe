package draw

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/eggcatch/internal/scene"
)

// drawItem is one projected primitive waiting for the depth sort.
type drawItem struct {
	depth   float64
	color   colorful.Color
	points  []Point // Polygon; nil for ellipses
	center  Point
	rx, ry  float64
	ellipse bool
}

// Renderer projects a scene through a camera onto a Surface. It draws far
// primitives first (painter's algorithm) and keeps its buffers between
// frames. A Renderer is not safe for concurrent use.
type Renderer struct {
	items     []drawItem
	pointPool []Point
	clipIn    []mgl64.Vec4
	clipOut   []mgl64.Vec4
	faces     map[*scene.Mesh][]scene.Face
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{faces: make(map[*scene.Mesh][]scene.Face)}
}

// Render clears s to the scene background and draws every visible mesh.
func (r *Renderer) Render(s Surface, cam *Camera, sc *scene.Scene) {
	if w, h := s.Size(); w != cam.width || h != cam.height {
		cam.Resize(w, h)
	}

	r.items = r.items[:0]
	r.pointPool = r.pointPool[:0]

	sc.Walk(func(o *scene.Object, world mgl64.Mat4) {
		if o.Mesh == nil {
			return
		}
		switch g := o.Mesh.Geometry.(type) {
		case scene.Sphere:
			r.addSphere(cam, sc, o.Mesh.Material, g, world)
		default:
			r.addFaces(cam, sc, o.Mesh, world)
		}
	})

	sort.SliceStable(r.items, func(i, j int) bool {
		return r.items[i].depth > r.items[j].depth
	})

	s.Fill(sc.Background)
	for _, it := range r.items {
		if it.ellipse {
			s.FillEllipse(it.center, it.rx, it.ry, it.color)
		} else {
			s.FillPolygon(it.points, it.color)
		}
	}
}

func (r *Renderer) addSphere(cam *Camera, sc *scene.Scene, mat scene.Material, g scene.Sphere, world mgl64.Mat4) {
	center := world.Col(3).Vec3()
	pt, depth, ok := cam.Project(center)
	if !ok {
		return
	}
	sx := world.Col(0).Vec3().Len()
	sy := world.Col(1).Vec3().Len()
	scale := cam.Focal() / depth

	r.items = append(r.items, drawItem{
		depth:   depth,
		color:   Shade(mat.Color, cam.Eye.Sub(center).Normalize(), sc),
		center:  pt,
		rx:      g.Radius * sx * scale,
		ry:      g.Radius * sy * scale,
		ellipse: true,
	})
}

func (r *Renderer) addFaces(cam *Camera, sc *scene.Scene, mesh *scene.Mesh, world mgl64.Mat4) {
	faces, ok := r.faces[mesh]
	if !ok {
		faces = mesh.Geometry.Faces()
		r.faces[mesh] = faces
	}
	rot := world.Mat3()

	for _, f := range faces {
		normal := rot.Mul3x1(f.Normal).Normalize()

		var centroid mgl64.Vec3
		r.clipIn = r.clipIn[:0]
		for _, p := range f.Points {
			wp := world.Mul4x1(p.Vec4(1)).Vec3()
			centroid = centroid.Add(wp)
			r.clipIn = append(r.clipIn, cam.Clip(wp))
		}
		centroid = centroid.Mul(1 / float64(len(f.Points)))

		if normal.Dot(cam.Eye.Sub(centroid)) <= 0 {
			if !mesh.Material.DoubleSided {
				continue
			}
			normal = normal.Mul(-1)
		}

		// Faces crossing the camera (the ground) are cut at the near plane
		// rather than dropped.
		r.clipOut = cam.ClipNear(r.clipOut[:0], r.clipIn)
		if len(r.clipOut) < 3 {
			continue
		}

		// Faces sort on their farthest vertex.
		start := len(r.pointPool)
		depth := 0.0
		for _, cp := range r.clipOut {
			depth = math.Max(depth, cp.W())
			r.pointPool = append(r.pointPool, cam.Screen(cp))
		}

		r.items = append(r.items, drawItem{
			depth:  depth,
			color:  Shade(mesh.Material.Color, normal, sc),
			points: r.pointPool[start:len(r.pointPool):len(r.pointPool)],
		})
	}
}

// Shade lights a surface colour for a world-space normal: hemisphere light
// interpolated by the normal's y plus a Lambertian directional term.
func Shade(base colorful.Color, normal mgl64.Vec3, sc *scene.Scene) colorful.Color {
	hemi := sc.Hemisphere.Ground.BlendRgb(sc.Hemisphere.Sky, (normal.Y()+1)/2)
	diffuse := math.Max(0, normal.Dot(sc.Directional.Direction)) * sc.Directional.Intensity
	dir := sc.Directional.Color

	light := func(b, h, d float64) float64 {
		return b * (h*sc.Hemisphere.Intensity + d*diffuse)
	}
	return colorful.Color{
		R: light(base.R, hemi.R, dir.R),
		G: light(base.G, hemi.G, dir.G),
		B: light(base.B, hemi.B, dir.B),
	}.Clamped()
}
