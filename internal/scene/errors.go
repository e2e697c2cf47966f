package scene

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAssetLoad indicates the 3D asset could not be fetched or decoded.
	ErrAssetLoad = errors.New("scene: asset load failed")

	// ErrMissingAnchor indicates a required emitter anchor is not in the scene.
	ErrMissingAnchor = errors.New("scene: emitter anchor not found")

	// ErrNoScene indicates the asset defines no scene graph to walk.
	ErrNoScene = errors.New("scene: asset has no scene")
)

// MissingAnchorError lists the anchor roles absent after Bootstrap.
type MissingAnchorError struct {
	Missing []string
}

func (e *MissingAnchorError) Error() string {
	return fmt.Sprintf("scene: emitter anchor not found: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingAnchorError) Unwrap() error { return ErrMissingAnchor }
