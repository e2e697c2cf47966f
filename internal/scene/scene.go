// Package scene holds the decoded room asset: a node tree with per-mesh
// bounds and materials, the fixed lighting rig, and the camera. Bootstrap
// finds the two emitter anchors and styles the room shell.
package scene

import "github.com/go-gl/mathgl/mgl64"

// Light is a simple colored light. Directional lights use Position as the
// direction source.
type Light struct {
	Color       uint32
	Intensity   float64
	Position    mgl64.Vec3
	Directional bool
	CastShadow  bool
}

// Scene is a decoded asset plus the viewer's rig.
type Scene struct {
	Roots      []*Node
	Background uint32
	Lights     []Light
	Camera     *Camera
}

// New returns an empty scene with the default rig.
func New() *Scene {
	return &Scene{
		Background: 0x808080,
		Lights: []Light{
			{Color: 0xffffff, Intensity: 0.5},
			{Color: 0xffffff, Intensity: 1, Position: mgl64.Vec3{5, 5, 5}, Directional: true, CastShadow: true},
		},
		Camera: NewCamera(1280, 720),
	}
}

// Walk visits every node of every root, parents first.
func (s *Scene) Walk(fn func(*Node)) {
	for _, r := range s.Roots {
		r.Walk(fn)
	}
}

// Meshes returns every node carrying a mesh, in walk order.
func (s *Scene) Meshes() []*Node {
	var out []*Node
	s.Walk(func(n *Node) {
		if n.Mesh != nil {
			out = append(out, n)
		}
	})
	return out
}

// Bounds encloses every mesh in the scene.
func (s *Scene) Bounds() Box {
	out := EmptyBox()
	for _, r := range s.Roots {
		out = out.Union(r.WorldBounds())
	}
	return out
}
