// Package readout turns a dataset row into the on-screen text fields.
package readout

import "github.com/san-kum/roomflow/internal/dataset"

// DegreesCelsius is appended to displayed temperatures.
const DegreesCelsius = "°C"

// Fields is the formatted text of one row.
type Fields struct {
	Time        string
	AC          string
	Window      string
	Temperature string
}

// Format maps a row to its display text. Missing optional fields produce
// blank text, never an error.
func Format(row dataset.Row) Fields {
	f := Fields{
		Time:   row.Time,
		AC:     "OFF",
		Window: "CLOSED",
	}
	if row.ACOn() {
		f.AC = "ON"
	}
	if row.WindowOpen() {
		f.Window = "OPEN"
	}
	if t := row.Temperature(); t != "" {
		f.Temperature = t + DegreesCelsius
	}
	return f
}

// Renderer writes formatted rows into a Panel.
type Renderer struct {
	Panel *Panel
}

// NewRenderer returns a renderer writing to p.
func NewRenderer(p *Panel) *Renderer {
	return &Renderer{Panel: p}
}

// Render writes row's fields to the time, ac-state, window-state and
// temperature elements.
func (r *Renderer) Render(row dataset.Row) {
	if r == nil || r.Panel == nil {
		return
	}
	f := Format(row)
	r.Panel.SetText(Time, f.Time)
	r.Panel.SetText(ACState, f.AC)
	r.Panel.SetText(WindowState, f.Window)
	r.Panel.SetText(Temperature, f.Temperature)
}
