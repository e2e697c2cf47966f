package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box. A box with Min > Max on any axis is
// empty.
type Box struct {
	Min, Max mgl64.Vec3
}

// EmptyBox returns a box that contains nothing; Union with it is identity.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// NewBox orders the corners so Min <= Max.
func NewBox(a, b mgl64.Vec3) Box {
	return Box{
		Min: mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		Max: mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

func (b Box) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Center returns the midpoint; zero for an empty box.
func (b Box) Center() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent per axis; zero for an empty box.
func (b Box) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// ExpandByPoint grows b to include p.
func (b Box) ExpandByPoint(p mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return b.ExpandByPoint(o.Min).ExpandByPoint(o.Max)
}

// Contains reports whether p lies inside or on b.
func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Transform returns the axis-aligned box enclosing b's eight corners after
// applying m.
func (b Box) Transform(m mgl64.Mat4) Box {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for _, c := range b.Corners() {
		out = out.ExpandByPoint(m.Mul4x1(c.Vec4(1)).Vec3())
	}
	return out
}

// Corners returns the eight corners in bit order (x, y, z toggled by bits
// 0, 1, 2).
func (b Box) Corners() [8]mgl64.Vec3 {
	var cs [8]mgl64.Vec3
	for i := range cs {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		cs[i] = c
	}
	return cs
}

// Bounded is anything that can report world-space bounds. Emitter anchors
// are consumed through it.
type Bounded interface {
	WorldBounds() Box
}

// StaticBounds is a Bounded with fixed bounds.
type StaticBounds Box

func (s StaticBounds) WorldBounds() Box { return Box(s) }
