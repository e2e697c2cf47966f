package dataset

// Sequence is an ordered, non-empty, cyclic list of rows. It is built once
// and never mutated.
type Sequence struct {
	rows []Row
}

// NewSequence copies rows into a sequence. It returns ErrNoRows when rows is
// empty.
func NewSequence(rows []Row) (*Sequence, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	c := make([]Row, len(rows))
	copy(c, rows)
	return &Sequence{rows: c}, nil
}

// Fallback returns the single synthetic row used whenever the dataset cannot
// be loaded.
func Fallback() *Sequence {
	return &Sequence{rows: []Row{NewRow(map[Field]string{
		FieldTime:            "00:00",
		FieldACState:         "1",
		FieldWindowState:     "0",
		FieldACTemperature:   "24",
		FieldRoomTemperature: "28",
	})}}
}

// Len returns the number of rows. It is always at least 1.
func (s *Sequence) Len() int { return len(s.rows) }

// At returns row i, wrapping modulo Len. Negative indices wrap backwards.
func (s *Sequence) At(i int) Row {
	n := len(s.rows)
	i %= n
	if i < 0 {
		i += n
	}
	return s.rows[i]
}

// Next returns the index that follows i.
func (s *Sequence) Next(i int) int {
	return (i + 1) % len(s.rows)
}

// Rows returns a copy of the rows.
func (s *Sequence) Rows() []Row {
	c := make([]Row, len(s.rows))
	copy(c, s.rows)
	return c
}

// Series extracts f from every row as a number. Missing or non-numeric
// cells read as 0.
func (s *Sequence) Series(f Field) []float64 {
	out := make([]float64, len(s.rows))
	for i, r := range s.rows {
		v, _ := r.Get(f)
		out[i] = ParseNumber(v)
	}
	return out
}

// TemperatureSeries follows the readout rule: AC temperature when set,
// otherwise room temperature.
func (s *Sequence) TemperatureSeries() []float64 {
	out := make([]float64, len(s.rows))
	for i, r := range s.rows {
		out[i] = ParseNumber(r.Temperature())
	}
	return out
}
