package sim

import (
	"time"

	"github.com/san-kum/roomflow/internal/dataset"
)

// DefaultInterval is the wall-clock period between dataset rows.
const DefaultInterval = 5 * time.Second

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Readout receives the current row whenever the cursor advances.
type Readout interface {
	Render(row dataset.Row)
}

// Cursor is the playback position in the dataset.
type Cursor struct {
	Index       int
	LastAdvance time.Time
}

// Due reports whether more than interval has elapsed since the last advance.
func (c Cursor) Due(now time.Time, interval time.Duration) bool {
	return now.Sub(c.LastAdvance) > interval
}

// Frame summarises one Step.
type Frame struct {
	Advanced     bool
	Index        int
	ACMoved      bool
	WindowMoved  bool
	ACResets     int
	WindowResets int
}
