package viz

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/roomflow/internal/particles"
	"github.com/san-kum/roomflow/internal/scene"
)

// maxOvershoot bounds how far outside the canvas a projected endpoint may
// land before its edge is dropped, in canvas widths.
const maxOvershoot = 4

// Projector maps world points onto a canvas through a scene camera.
type Projector struct {
	mvp  mgl64.Mat4
	w, h int
}

// NewProjector captures the camera's current view and projection for a
// canvas. Build a new one after the camera or canvas changes.
func NewProjector(cam *scene.Camera, c *Canvas) *Projector {
	w, h := c.Dots()
	return &Projector{mvp: cam.Projection().Mul4(cam.View()), w: w, h: h}
}

// Project returns the dot coordinates of p and its NDC depth. ok is false
// for points behind the camera, outside the depth range, or off the canvas.
func (p *Projector) Project(v mgl64.Vec3) (x, y int, depth float64, ok bool) {
	x, y, depth, front := p.project(v)
	return x, y, depth, front && x >= 0 && x < p.w && y >= 0 && y < p.h
}

func (p *Projector) project(v mgl64.Vec3) (x, y int, depth float64, front bool) {
	clip := p.mvp.Mul4x1(v.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, 0, false
	}
	x = int((ndc.X() + 1) / 2 * float64(p.w))
	y = int((1 - ndc.Y()) / 2 * float64(p.h))
	return x, y, ndc.Z(), true
}

func (p *Projector) near(x, y int) bool {
	lim := maxOvershoot * max(p.w, p.h)
	return x > -lim && x < p.w+lim && y > -lim && y < p.h+lim
}

type Edge struct {
	Start, End mgl64.Vec3
	Pen        Pen
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                        { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3, pen Pen) { w.Edges = append(w.Edges, Edge{s, e, pen}) }
func (w *Wireframe) Clear()                           { w.Edges = w.Edges[:0] }

// boxEdges indexes Box.Corners: bit 0 selects max X, bit 1 max Y, bit 2 max Z.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// AddBox adds the twelve edges of b.
func (w *Wireframe) AddBox(b scene.Box, pen Pen) {
	if b.IsEmpty() {
		return
	}
	c := b.Corners()
	for _, e := range boxEdges {
		w.AddEdge(c[e[0]], c[e[1]], pen)
	}
}

// SceneWireframe outlines every mesh of s by its world bounds. The room
// shell and the emitter anchors get their own pens.
func SceneWireframe(s *scene.Scene) *Wireframe {
	w := NewWireframe()
	for _, n := range s.Meshes() {
		pen := PenMesh
		switch scene.Role(n.Name) {
		case "room":
			pen = PenRoom
		case "ac":
			pen = PenAC
		case "window":
			pen = PenWindow
		}
		w.AddBox(n.WorldBounds(), pen)
	}
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	pen            Pen
}

// Render3D draws the wireframe far to near so nearer edges own shared cells.
func Render3D(c *Canvas, w *Wireframe, p *Projector) {
	if c == nil || w == nil || p == nil {
		return
	}
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, f1 := p.project(e.Start)
		x2, y2, d2, f2 := p.project(e.End)
		if !f1 || !f2 || !p.near(x1, y1) || !p.near(x2, y2) {
			continue
		}
		proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Pen})
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		c.Pen = e.pen
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// PlotParticles sets one dot per visible particle of sys. It returns the
// number drawn.
func PlotParticles(c *Canvas, sys *particles.System, p *Projector, pen Pen) int {
	if c == nil || sys == nil || p == nil {
		return 0
	}
	c.Pen = pen
	drawn := 0
	for i := 0; i < sys.Count; i++ {
		pos := sys.Position(i)
		x, y, _, ok := p.Project(mgl64.Vec3{float64(pos[0]), float64(pos[1]), float64(pos[2])})
		if ok {
			c.Set(x, y)
			drawn++
		}
	}
	return drawn
}
