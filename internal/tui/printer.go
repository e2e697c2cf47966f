package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/san-kum/roomflow/internal/readout"
	"github.com/san-kum/roomflow/internal/room"
	"github.com/san-kum/roomflow/internal/sim"
)

// Printer writes one line per dataset row as playback advances.
type Printer struct {
	w       io.Writer
	started bool
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// OnFrame prints the panel readouts for the first frame and for every
// frame that advanced the cursor.
func (p *Printer) OnFrame(f sim.Frame, panel *readout.Panel) {
	if p.started && !f.Advanced {
		return
	}
	p.started = true
	fmt.Fprintf(p.w, "%-8s AC %-3s  window %-6s  %s  (particles: ac=%t window=%t)\n",
		panel.Text(readout.Time),
		panel.Text(readout.ACState),
		panel.Text(readout.WindowState),
		panel.Text(readout.Temperature),
		f.ACMoved, f.WindowMoved)
}

// Watch ticks r every period and prints each row until ctx ends.
func Watch(ctx context.Context, r *room.Room, clock sim.Clock, period time.Duration, w io.Writer) error {
	if period <= 0 {
		return fmt.Errorf("tui: frame period must be positive, got %v", period)
	}
	if clock == nil {
		clock = sim.SystemClock{}
	}
	p := NewPrinter(w)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if f, ok := r.Tick(clock.Now()); ok {
			p.OnFrame(f, r.Panel())
		}
	}
}
