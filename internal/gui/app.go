// Package gui is the raylib viewer: the room meshes drawn by their bounds,
// both particle clouds as additive sprites, and the readout HUD.
package gui

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/roomflow/internal/config"
	"github.com/san-kum/roomflow/internal/room"
	"github.com/san-kum/roomflow/internal/sim"
)

var (
	ColText    = rl.NewColor(230, 230, 230, 255)
	ColTextDim = rl.NewColor(150, 150, 150, 255)
	ColPanel   = rl.NewColor(0, 0, 0, 140)
	ColOverlay = rl.NewColor(10, 10, 10, 235)
	ColError   = rl.NewColor(255, 80, 80, 255)
	ColOn      = rl.NewColor(0, 255, 136, 255)
	ColOff     = rl.NewColor(255, 68, 68, 255)
)

const (
	orbitKeySpeed   = 1.5  // radians per second
	orbitMouseSpeed = 0.01 // radians per pixel
	dollyStep       = 0.9
	spriteScale     = 4
)

type App struct {
	Room  *room.Room
	Clock sim.Clock
	Font  rl.Font

	ParticleTex rl.Texture2D
	Camera      rl.Camera3D
}

func initWindow(w config.WindowConfig) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	rl.SetTargetFPS(int32(w.FPS))
	rl.SetExitKey(0)
}

// NewApp creates the GPU resources of the viewer. The window must already
// be open.
func NewApp(r *room.Room, clock sim.Clock) *App {
	if clock == nil {
		clock = sim.SystemClock{}
	}
	app := &App{
		Room:  r,
		Clock: clock,
		Font:  rl.GetFontDefault(),
	}

	img := rl.GenImageGradientRadial(32, 32, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	app.ParticleTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	r.Camera().Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	app.syncCamera()
	return app
}

// Run opens the window, starts loading r in the background and blocks until
// the window is closed. Load failures surface through the panel's error
// overlay.
func Run(ctx context.Context, r *room.Room, log *slog.Logger) {
	initWindow(r.Config().Window)
	defer rl.CloseWindow()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := r.Load(ctx); err != nil {
			log.Debug("room load ended", "err", err)
		}
	}()

	app := NewApp(r, nil)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	rl.UnloadTexture(a.ParticleTex)
	a.Room.Close()
}

func (a *App) Update() {
	cam := a.Room.Camera()
	if rl.IsWindowResized() {
		cam.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	dt := float64(rl.GetFrameTime())
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Orbit(-orbitKeySpeed * dt)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		cam.Orbit(orbitKeySpeed * dt)
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		cam.Orbit(float64(rl.GetMouseDelta().X) * orbitMouseSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		cam.Dolly(dollyStep)
	} else if wheel < 0 {
		cam.Dolly(1 / dollyStep)
	}
	a.syncCamera()

	a.Room.Tick(a.Clock.Now())
}

// syncCamera copies the scene camera into raylib's.
func (a *App) syncCamera() {
	c := a.Room.Camera()
	a.Camera = rl.NewCamera3D(vec3(c.Position), vec3(c.Target), vec3(c.Up), float32(c.FOV), rl.CameraPerspective)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.background())

	a.drawScene()
	a.DrawHUD()

	panel := a.Room.Panel()
	if o, ok := panel.Error(); ok {
		a.drawError(o.Title, o.Message)
	} else if panel.Loading() {
		a.drawLoading()
	}

	rl.EndDrawing()
}
