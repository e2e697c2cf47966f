// Package dataset loads the recorded simulation rows that drive the
// animation. Loading never fails from the caller's point of view: any
// problem is logged and replaced by a one-row fallback sequence.
package dataset

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/roomflow/internal/resource"
)

// Load fetches and parses ref in a single attempt. The returned sequence is
// never nil and never empty.
func Load(ctx context.Context, ref string, log *slog.Logger) *Sequence {
	seq, err := load(ctx, ref)
	if err != nil {
		log.Warn("using fallback dataset", "ref", ref, "err", err)
		return Fallback()
	}
	log.Info("dataset loaded", "ref", ref, "rows", seq.Len())
	return seq
}

func load(ctx context.Context, ref string) (*Sequence, error) {
	data, err := resource.ReadAll(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}
	rows, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewSequence(rows)
}
