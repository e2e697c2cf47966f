package particles

// Style is the point-sprite look a renderer applies to a system.
type Style struct {
	Color    uint32
	Size     float64
	Opacity  float64
	Additive bool
}

// System is a fixed-size particle cloud. Positions and Velocities are flat
// xyz triples; both always hold exactly 3*Count values and are mutated in
// place, never reallocated.
type System struct {
	Name       string
	Count      int
	Positions  []float32
	Velocities []float32
	Style      Style

	dirty bool
}

// NewSystem allocates a zeroed system of count particles.
func NewSystem(name string, count int, style Style) *System {
	if count < 0 {
		count = 0
	}
	return &System{
		Name:       name,
		Count:      count,
		Positions:  make([]float32, 3*count),
		Velocities: make([]float32, 3*count),
		Style:      style,
	}
}

// Position returns particle i's position.
func (s *System) Position(i int) [3]float32 {
	j := 3 * i
	return [3]float32{s.Positions[j], s.Positions[j+1], s.Positions[j+2]}
}

// Velocity returns particle i's velocity.
func (s *System) Velocity(i int) [3]float32 {
	j := 3 * i
	return [3]float32{s.Velocities[j], s.Velocities[j+1], s.Velocities[j+2]}
}

// Valid reports whether the buffer length invariant holds.
func (s *System) Valid() bool {
	n := 3 * s.Count
	return len(s.Positions) == n && len(s.Velocities) == n
}

// MarkDirty flags positions for re-upload to the renderer.
func (s *System) MarkDirty() { s.dirty = true }

// Dirty reports whether positions changed since the last ClearDirty.
func (s *System) Dirty() bool { return s.dirty }

// ClearDirty is called by the renderer after uploading positions.
func (s *System) ClearDirty() { s.dirty = false }
