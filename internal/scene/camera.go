package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera orbiting a target point.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FOV      float64 // vertical, degrees
	Near     float64
	Far      float64
	Aspect   float64
	Width    int
	Height   int
}

// NewCamera returns the viewer's default camera for a w×h viewport.
func NewCamera(w, h int) *Camera {
	c := &Camera{
		Position: mgl64.Vec3{5, 3, 5},
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      75,
		Near:     0.1,
		Far:      1000,
	}
	c.Resize(w, h)
	return c
}

// Resize records the new viewport and recomputes the aspect ratio. It has
// no other effect.
func (c *Camera) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Width, c.Height = w, h
	c.Aspect = float64(w) / float64(h)
}

// Orbit rotates the camera around the target's vertical axis by angle
// radians, keeping distance and height.
func (c *Camera) Orbit(angle float64) {
	off := c.Position.Sub(c.Target)
	s, co := math.Sin(angle), math.Cos(angle)
	c.Position = c.Target.Add(mgl64.Vec3{off[0]*co - off[2]*s, off[1], off[0]*s + off[2]*co})
}

// Dolly scales the distance to the target by factor, clamped so the camera
// never crosses the target or the far plane.
func (c *Camera) Dolly(factor float64) {
	off := c.Position.Sub(c.Target)
	d := off.Len() * factor
	if d < c.Near*10 || d > c.Far/2 {
		return
	}
	c.Position = c.Target.Add(off.Normalize().Mul(d))
}

// View returns the look-at matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}
