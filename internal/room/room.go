// Package room wires the loaders, the loading join and the frame updater
// into one object a viewer can drive from its render loop.
package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/roomflow/internal/config"
	"github.com/san-kum/roomflow/internal/dataset"
	"github.com/san-kum/roomflow/internal/loading"
	"github.com/san-kum/roomflow/internal/particles"
	"github.com/san-kum/roomflow/internal/readout"
	"github.com/san-kum/roomflow/internal/scene"
	"github.com/san-kum/roomflow/internal/sim"
)

// Signal names for the loading join.
const (
	SignalModel = "model"
	SignalData  = "data"
)

const (
	errorTitle   = "Error loading 3D model"
	errorMessage = "Please try refreshing the page."
)

// Room owns everything produced at startup. Loader goroutines fill it in;
// the render loop reads it and is the only caller of Tick.
type Room struct {
	cfg      *config.Config
	panel    *readout.Panel
	renderer *readout.Renderer
	log      *slog.Logger
	clock    sim.Clock
	rng      *rand.Rand
	camera   *scene.Camera
	join     *loading.Join

	mu      sync.Mutex
	scene   *scene.Scene
	anchors scene.Anchors
	seq     *dataset.Sequence
	ac      *particles.System
	window  *particles.System
	sim     *sim.Context
	fade    *time.Timer
}

// New prepares a room without loading anything. A zero cfg.Seed seeds the
// particle generator from the clock.
func New(cfg *config.Config, panel *readout.Panel, clock sim.Clock, log *slog.Logger) *Room {
	if clock == nil {
		clock = sim.SystemClock{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	r := &Room{
		cfg:      cfg,
		panel:    panel,
		renderer: readout.NewRenderer(panel),
		log:      log,
		clock:    clock,
		rng:      rand.New(rand.NewSource(seed)),
		camera:   scene.NewCamera(cfg.Window.Width, cfg.Window.Height),
	}
	r.join = loading.NewJoin(r.start, SignalModel, SignalData)
	return r
}

// Bootstrap creates a room and loads it, blocking until both loaders have
// finished.
func Bootstrap(ctx context.Context, cfg *config.Config, panel *readout.Panel, log *slog.Logger) (*Room, error) {
	r := New(cfg, panel, nil, log)
	return r, r.Load(ctx)
}

// Load fetches the asset and the dataset concurrently. The dataset path
// cannot fail. An asset failure raises the error overlay and is returned;
// the loading screen then stays up for good.
func (r *Room) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	// the dataset must not be cancelled by an asset failure
	g.Go(func() error {
		r.loadData(ctx)
		return nil
	})
	g.Go(func() error {
		return r.loadModel(gctx)
	})
	return g.Wait()
}

func (r *Room) loadData(ctx context.Context) {
	seq := dataset.Load(ctx, r.cfg.Dataset, r.log)
	r.mu.Lock()
	r.seq = seq
	r.mu.Unlock()

	r.renderer.Render(seq.At(0))
	r.join.Signal(SignalData)
}

func (r *Room) loadModel(ctx context.Context) error {
	s, err := scene.Load(ctx, r.cfg.Asset, r.progress, r.log)
	if err != nil {
		r.log.Error("error loading model", "ref", r.cfg.Asset, "err", err)
		r.panel.ShowError(errorTitle, errorMessage)
		return err
	}
	s.Camera = r.camera

	anchors, err := scene.Bootstrap(s)
	var ac, window *particles.System
	switch {
	case err == nil:
		ac, window = particles.Init(anchors.AC, anchors.Window,
			r.cfg.Emitters.AC.Count, r.cfg.Emitters.Window.Count, r.rng)
	case errors.Is(err, scene.ErrMissingAnchor):
		r.log.Error("emitter anchors missing, running without particles", "err", err)
	default:
		return fmt.Errorf("room: bootstrap scene: %w", err)
	}

	r.mu.Lock()
	r.scene, r.anchors = s, anchors
	r.ac, r.window = ac, window
	r.mu.Unlock()

	r.join.Signal(SignalModel)
	return nil
}

func (r *Room) progress(pct int) {
	r.panel.SetText(readout.LoadingProgress, fmt.Sprintf("%d%%", pct))
}

// start runs once when both signals have arrived.
func (r *Room) start() {
	r.mu.Lock()
	c := sim.NewContext(r.seq, r.renderer, r.cfg.UpdateInterval, r.rng, r.clock.Now())
	if r.ac != nil && r.window != nil {
		c.Attach(r.ac, r.window, r.anchors.AC, r.anchors.Window)
	}
	r.sim = c
	r.fade = time.AfterFunc(r.cfg.FadeDelay, func() {
		r.panel.AddClass(readout.LoadingScreen, readout.FadeOut)
	})
	r.mu.Unlock()
	r.log.Info("playback started", "rows", r.seq.Len(), "particles", c.HasParticles())
}

// Tick advances one frame. Before the room is ready it does nothing and
// reports false.
func (r *Room) Tick(now time.Time) (sim.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sim == nil {
		return sim.Frame{}, false
	}
	return sim.Step(r.sim, now), true
}

// Ready reports whether both loaders have signalled.
func (r *Room) Ready() bool { return r.join.Ready() }

// Close stops a pending fade timer.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fade != nil {
		r.fade.Stop()
	}
}

func (r *Room) Panel() *readout.Panel { return r.panel }

func (r *Room) Camera() *scene.Camera { return r.camera }

func (r *Room) Config() *config.Config { return r.cfg }

// Scene returns the decoded scene, or nil before it has loaded.
func (r *Room) Scene() *scene.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scene
}

// Anchors returns whatever anchors Bootstrap found.
func (r *Room) Anchors() scene.Anchors {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.anchors
}

// Particles returns the AC and window systems, nil when they were never
// created.
func (r *Room) Particles() (ac, window *particles.System) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ac, r.window
}

// Sequence returns the loaded dataset, or nil before it has loaded.
func (r *Room) Sequence() *dataset.Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Cursor returns the playback position. ok is false before playback starts.
func (r *Room) Cursor() (c sim.Cursor, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sim == nil {
		return sim.Cursor{}, false
	}
	return r.sim.Cursor, true
}
