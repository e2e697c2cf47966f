package sim

import (
	"math/rand"
	"time"

	"github.com/san-kum/roomflow/internal/dataset"
	"github.com/san-kum/roomflow/internal/particles"
	"github.com/san-kum/roomflow/internal/scene"
)

// Context is everything the frame updater reads and writes. The render
// loop owns it; nothing else mutates the cursor or the particle buffers.
type Context struct {
	Sequence *dataset.Sequence
	Cursor   Cursor
	Interval time.Duration
	Readout  Readout
	Rng      *rand.Rand

	AC           *particles.System
	Window       *particles.System
	ACAnchor     scene.Bounded
	WindowAnchor scene.Bounded

	ACEmitter     particles.Emitter
	WindowEmitter particles.Emitter
}

// NewContext starts playback at row 0 at instant start. A non-positive
// interval selects DefaultInterval.
func NewContext(seq *dataset.Sequence, readout Readout, interval time.Duration, rng *rand.Rand, start time.Time) *Context {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Context{
		Sequence:      seq,
		Cursor:        Cursor{LastAdvance: start},
		Interval:      interval,
		Readout:       readout,
		Rng:           rng,
		ACEmitter:     particles.ACEmitter,
		WindowEmitter: particles.WindowEmitter,
	}
}

// Attach registers the particle systems and their anchors.
func (c *Context) Attach(ac, window *particles.System, acAnchor, windowAnchor scene.Bounded) {
	c.AC, c.Window = ac, window
	c.ACAnchor, c.WindowAnchor = acAnchor, windowAnchor
}

// HasParticles reports whether both systems and anchors are attached.
func (c *Context) HasParticles() bool {
	return c.AC != nil && c.Window != nil && c.ACAnchor != nil && c.WindowAnchor != nil
}

// Row returns the row at the cursor.
func (c *Context) Row() dataset.Row {
	return c.Sequence.At(c.Cursor.Index)
}
