package scene

import "github.com/go-gl/mathgl/mgl64"

// Material is the subset of surface state the viewers honour.
type Material struct {
	Name        string
	Color       [4]float64
	DoubleSided bool
	Transparent bool
	Opacity     float64
	DepthWrite  bool
}

// DefaultMaterial is opaque light gray.
func DefaultMaterial() *Material {
	return &Material{
		Color:      [4]float64{0.8, 0.8, 0.8, 1},
		Opacity:    1,
		DepthWrite: true,
	}
}

// Mesh is the renderable part of a node. Bounds are in the node's local
// space.
type Mesh struct {
	Bounds     Box
	Material   *Material
	Compressed bool
}

// Node is one element of the scene graph.
type Node struct {
	Name     string
	Local    mgl64.Mat4
	Mesh     *Mesh
	Parent   *Node
	Children []*Node
}

// NewNode returns a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Local: mgl64.Ident4()}
}

// AddChild attaches c under n.
func (n *Node) AddChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// WorldMatrix composes the local transforms from the root down to n.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.Local
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Local.Mul4(m)
	}
	return m
}

// WorldBounds returns the world-space box enclosing n's mesh and every
// descendant mesh. It is recomputed on every call.
func (n *Node) WorldBounds() Box {
	return n.boundsUnder(n.Parent.worldOrIdentity())
}

func (n *Node) boundsUnder(parent mgl64.Mat4) Box {
	world := parent.Mul4(n.Local)
	out := EmptyBox()
	if n.Mesh != nil {
		out = out.Union(n.Mesh.Bounds.Transform(world))
	}
	for _, c := range n.Children {
		out = out.Union(c.boundsUnder(world))
	}
	return out
}

func (n *Node) worldOrIdentity() mgl64.Mat4 {
	if n == nil {
		return mgl64.Ident4()
	}
	return n.WorldMatrix()
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
