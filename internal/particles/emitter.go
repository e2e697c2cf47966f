// Package particles allocates the two particle clouds and seeds them from
// their anchors' bounding boxes. The same seeding rules reseed a single
// particle when it leaves its travel envelope.
package particles

import (
	"math"
	"math/rand"

	"github.com/san-kum/roomflow/internal/scene"
)

// Kind selects the seeding geometry of an emitter.
type Kind int

const (
	// KindAC emits from the underside of a box, falling.
	KindAC Kind = iota
	// KindWindow emits through a plane normal to X, half in and half out.
	KindWindow
)

// Phase distinguishes initial seeding from a per-frame reset.
type Phase int

const (
	PhaseSeed Phase = iota
	PhaseReset
)

// Default particle counts.
const (
	DefaultACCount     = 2000
	DefaultWindowCount = 3000
)

// Emitter holds every constant of one cloud's seeding and motion rules.
// Fields that do not apply to an emitter's Kind are zero.
type Emitter struct {
	Kind Kind

	// Spread is the fraction of the box footprint positions are drawn from,
	// centred on the box, for seeding and for resets.
	SeedSpread  float64
	ResetSpread float64

	// Drift is the half-range of the horizontal velocity; Fall the maximum
	// downward speed.
	Drift float64
	Fall  float64

	// Window geometry: scatter disk radius and depth offset along X.
	Scatter    float64
	SeedDepth  float64
	ResetDepth float64

	// Window velocity: X speed is BaseSpeed*(Direction + r*DirectionJitter);
	// Y/Z carry BaseSpeed*CrossFlow oscillation plus a vertical bias of
	// half-range VerticalBias/2.
	BaseSpeed       float64
	Direction       float64
	DirectionJitter float64
	CrossFlow       float64
	VerticalBias    float64

	// Turbulence is the full range of the per-frame velocity perturbation.
	Turbulence float64
	// MaxTravel bounds displacement along X (and Z for the AC) from box min.
	MaxTravel float64
	// Envelope bounds window displacement in Y/Z as a multiple of box size.
	Envelope float64
	// FlowScale multiplies the dataset airflow speed.
	FlowScale float64
}

var (
	ACEmitter = Emitter{
		Kind:        KindAC,
		SeedSpread:  0.8,
		ResetSpread: 1.0,
		Drift:       0.01,
		Fall:        0.04,
		Turbulence:  0.002,
		MaxTravel:   2.0,
	}

	WindowEmitter = Emitter{
		Kind:            KindWindow,
		Scatter:         0.4,
		SeedDepth:       1.5,
		ResetDepth:      0.5,
		BaseSpeed:       0.015,
		Direction:       0.7,
		DirectionJitter: 0.3,
		CrossFlow:       0.4,
		VerticalBias:    0.01,
		Turbulence:      0.0003,
		MaxTravel:       2.0,
		Envelope:        1.2,
		FlowScale:       0.5,
	}

	ACStyle     = Style{Color: 0x00ffff, Size: 0.03, Opacity: 0.6, Additive: true}
	WindowStyle = Style{Color: 0x88ff88, Size: 0.02, Opacity: 0.6, Additive: true}
)

// Init allocates and seeds both clouds from their anchors. Registering the
// systems with a renderer is the caller's job.
func Init(ac, window scene.Bounded, acCount, windowCount int, rng *rand.Rand) (*System, *System) {
	acSys := NewSystem("ac", acCount, ACStyle)
	ACEmitter.SeedAll(acSys, ac.WorldBounds(), rng)

	winSys := NewSystem("window", windowCount, WindowStyle)
	WindowEmitter.SeedAll(winSys, window.WorldBounds(), rng)

	return acSys, winSys
}

// SeedAll seeds every particle of sys.
func (e Emitter) SeedAll(sys *System, box scene.Box, rng *rand.Rand) {
	for i := 0; i < sys.Count; i++ {
		e.Reseed(sys, i, box, rng, PhaseSeed)
	}
	sys.MarkDirty()
}

// Inflow reports whether window particle i travels into the room. Seeding
// splits at count/2 by particle index; resets compare the buffer offset
// 3*i against 1.5*count, which selects the same half.
func (e Emitter) Inflow(i, count int, phase Phase) bool {
	if phase == PhaseReset {
		return float64(3*i) < float64(count)*1.5
	}
	return float64(i) < float64(count)/2
}

// Reseed places particle i of sys anew, anchored to box.
func (e Emitter) Reseed(sys *System, i int, box scene.Box, rng *rand.Rand, phase Phase) {
	var pos, vel [3]float64
	switch e.Kind {
	case KindAC:
		pos, vel = e.acSample(box, rng, phase)
	case KindWindow:
		pos, vel = e.windowSample(box, e.Inflow(i, sys.Count, phase), rng, phase)
	}
	j := 3 * i
	for k := 0; k < 3; k++ {
		sys.Positions[j+k] = float32(pos[k])
		sys.Velocities[j+k] = float32(vel[k])
	}
}

func (e Emitter) acSample(box scene.Box, rng *rand.Rand, phase Phase) (pos, vel [3]float64) {
	spread := e.SeedSpread
	if phase == PhaseReset {
		spread = e.ResetSpread
	}
	c, s := box.Center(), box.Size()
	pos[0] = c[0] + (rng.Float64()-0.5)*s[0]*spread
	pos[1] = box.Min[1]
	pos[2] = c[2] + (rng.Float64()-0.5)*s[2]*spread

	vel[0] = (rng.Float64() - 0.5) * 2 * e.Drift
	vel[1] = -rng.Float64() * e.Fall
	vel[2] = (rng.Float64() - 0.5) * 2 * e.Drift
	return pos, vel
}

func (e Emitter) windowSample(box scene.Box, inflow bool, rng *rand.Rand, phase Phase) (pos, vel [3]float64) {
	depthMax := e.SeedDepth
	if phase == PhaseReset {
		depthMax = e.ResetDepth
	}
	s := box.Size()

	theta := rng.Float64() * 2 * math.Pi
	scatter := rng.Float64() * e.Scatter
	depth := rng.Float64() * depthMax

	if inflow {
		pos[0] = box.Min[0] - depth
	} else {
		pos[0] = box.Min[0] + depth
	}
	pos[1] = box.Min[1] + rng.Float64()*s[1] + math.Sin(theta)*scatter
	pos[2] = box.Min[2] + rng.Float64()*s[2] + math.Cos(theta)*scatter

	phi := rng.Float64() * 2 * math.Pi
	bias := (rng.Float64() - 0.5) * e.VerticalBias
	speed := e.BaseSpeed * (e.Direction + rng.Float64()*e.DirectionJitter)
	if !inflow {
		speed = -speed
	}
	vel[0] = speed
	vel[1] = bias + math.Sin(phi)*e.BaseSpeed*e.CrossFlow
	vel[2] = math.Cos(phi) * e.BaseSpeed * e.CrossFlow
	return pos, vel
}

// Perturb adds a uniform random kick in ±Turbulence/2 to each velocity axis
// of particle i. Nothing damps it; drift is bounded only by resets.
func (e Emitter) Perturb(sys *System, i int, rng *rand.Rand) {
	j := 3 * i
	for k := 0; k < 3; k++ {
		sys.Velocities[j+k] += float32((rng.Float64() - 0.5) * e.Turbulence)
	}
}

// Escaped reports whether a particle at p has left the travel envelope
// around box.
func (e Emitter) Escaped(p [3]float32, box scene.Box) bool {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	switch e.Kind {
	case KindAC:
		return y < 0 ||
			math.Abs(x-box.Min[0]) > e.MaxTravel ||
			math.Abs(z-box.Min[2]) > e.MaxTravel
	case KindWindow:
		c, s := box.Center(), box.Size()
		return math.Abs(x-box.Min[0]) > e.MaxTravel ||
			math.Abs(y-c[1]) > s[1]*e.Envelope ||
			math.Abs(z-c[2]) > s[2]*e.Envelope
	}
	return false
}
