package scene

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/roomflow/internal/resource"
)

// Load fetches and decodes the asset at ref in a single attempt. progress,
// if non-nil, receives the loaded percentage as bytes arrive. Every failure
// wraps ErrAssetLoad.
func Load(ctx context.Context, ref string, progress func(percent int), log *slog.Logger) (*Scene, error) {
	stream, err := resource.Open(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	defer stream.Close()

	pr := resource.NewProgressReader(stream, stream.Size, func(pct int) {
		log.Debug("asset progress", "ref", ref, "percent", pct)
		if progress != nil {
			progress(pct)
		}
	})

	s, err := Decode(pr)
	if err != nil {
		return nil, err
	}
	// the decoder may stop before EOF; drain so progress completes
	if _, err := io.Copy(io.Discard, pr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	compressed := 0
	meshes := s.Meshes()
	for _, n := range meshes {
		if n.Mesh.Compressed {
			compressed++
		}
	}
	log.Info("asset loaded", "ref", ref, "meshes", len(meshes), "compressed", compressed)
	return s, nil
}
