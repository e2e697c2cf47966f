// Package sim advances the room animation one rendered frame at a time:
// it steps the dataset cursor on a fixed wall-clock cadence and integrates
// both particle clouds according to the current row.
package sim

import (
	"time"

	"github.com/san-kum/roomflow/internal/particles"
	"github.com/san-kum/roomflow/internal/scene"
)

// Step runs one frame at instant now.
func Step(c *Context, now time.Time) Frame {
	var f Frame
	if c.Cursor.Due(now, c.Interval) {
		c.Cursor.Index = c.Sequence.Next(c.Cursor.Index)
		c.Cursor.LastAdvance = now
		if c.Readout != nil {
			c.Readout.Render(c.Row())
		}
		f.Advanced = true
	}
	f.Index = c.Cursor.Index

	if !c.HasParticles() {
		return f
	}

	acBox := c.ACAnchor.WorldBounds()
	windowBox := c.WindowAnchor.WorldBounds()
	row := c.Row()

	if row.ACOn() {
		f.ACResets = stepAC(c, acBox)
		f.ACMoved = true
	}
	if row.WindowOpen() {
		factor := c.WindowEmitter.FlowScale * row.Airflow()
		f.WindowResets = stepWindow(c, windowBox, factor)
		f.WindowMoved = true
	}

	c.AC.MarkDirty()
	c.Window.MarkDirty()
	return f
}

func stepAC(c *Context, box scene.Box) int {
	sys, e := c.AC, c.ACEmitter
	resets := 0
	for i := 0; i < sys.Count; i++ {
		j := 3 * i
		sys.Positions[j] += sys.Velocities[j]
		sys.Positions[j+1] += sys.Velocities[j+1]
		sys.Positions[j+2] += sys.Velocities[j+2]

		e.Perturb(sys, i, c.Rng)

		if e.Escaped(sys.Position(i), box) {
			e.Reseed(sys, i, box, c.Rng, particles.PhaseReset)
			resets++
		}
	}
	return resets
}

func stepWindow(c *Context, box scene.Box, factor float64) int {
	sys, e := c.Window, c.WindowEmitter
	k := float32(factor)
	resets := 0
	for i := 0; i < sys.Count; i++ {
		j := 3 * i
		sys.Positions[j] += sys.Velocities[j] * k
		sys.Positions[j+1] += sys.Velocities[j+1] * k
		sys.Positions[j+2] += sys.Velocities[j+2] * k

		e.Perturb(sys, i, c.Rng)

		if e.Escaped(sys.Position(i), box) {
			e.Reseed(sys, i, box, c.Rng, particles.PhaseReset)
			resets++
		}
	}
	return resets
}
