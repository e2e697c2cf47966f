package gui

import (
	"fmt"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/roomflow/internal/particles"
	"github.com/san-kum/roomflow/internal/readout"
	"github.com/san-kum/roomflow/internal/scene"
)

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

// hexColor converts a 0xRRGGBB colour and an opacity in [0, 1].
func hexColor(c uint32, opacity float64) color.RGBA {
	a := uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: a}
}

func (a *App) background() color.RGBA {
	if s := a.Room.Scene(); s != nil {
		return hexColor(s.Background, 1)
	}
	return hexColor(0x808080, 1)
}

func (a *App) drawScene() {
	s := a.Room.Scene()
	if s == nil {
		return
	}
	rl.BeginMode3D(a.Camera)

	// opaque meshes first, then translucent ones without depth writes
	var translucent []*scene.Node
	for _, n := range s.Meshes() {
		m := n.Mesh.Material
		if m != nil && m.Transparent {
			translucent = append(translucent, n)
			continue
		}
		a.drawMesh(n)
	}

	rl.DisableBackfaceCulling()
	for _, n := range translucent {
		if !n.Mesh.Material.DepthWrite {
			rl.DisableDepthMask()
		}
		a.drawMesh(n)
		rl.EnableDepthMask()
	}
	rl.EnableBackfaceCulling()

	ac, window := a.Room.Particles()
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DisableDepthMask()
	a.drawParticles(window)
	a.drawParticles(ac)
	rl.EnableDepthMask()
	rl.EndBlendMode()

	rl.EndMode3D()
}

// drawMesh draws a node as its world bounding box, lit by nothing but its
// material colour.
func (a *App) drawMesh(n *scene.Node) {
	b := n.WorldBounds()
	if b.IsEmpty() {
		return
	}
	m := n.Mesh.Material
	if m == nil {
		m = scene.DefaultMaterial()
	}
	opacity := 1.0
	if m.Transparent {
		opacity = m.Opacity
	}
	col := color.RGBA{
		R: uint8(m.Color[0] * 255),
		G: uint8(m.Color[1] * 255),
		B: uint8(m.Color[2] * 255),
		A: uint8(math.Round(opacity * 255)),
	}
	center, size := vec3(b.Center()), vec3(b.Size())
	rl.DrawCubeV(center, size, col)
	rl.DrawCubeWiresV(center, size, rl.Fade(rl.DarkGray, float32(math.Max(opacity, 0.3))))
}

func (a *App) drawParticles(sys *particles.System) {
	if sys == nil {
		return
	}
	tint := hexColor(sys.Style.Color, sys.Style.Opacity)
	size := float32(sys.Style.Size * spriteScale)
	for i := 0; i < sys.Count; i++ {
		p := sys.Position(i)
		rl.DrawBillboard(a.Camera, a.ParticleTex, rl.NewVector3(p[0], p[1], p[2]), size, tint)
	}
	sys.ClearDirty()
}

func (a *App) DrawHUD() {
	panel := a.Room.Panel()
	rl.DrawRectangle(20, 20, 260, 130, ColPanel)

	a.drawText("roomflow", 32, 30, 20, ColText)
	a.drawText("Time", 32, 60, 16, ColTextDim)
	a.drawText(panel.Text(readout.Time), 150, 60, 16, ColText)

	ac := panel.Text(readout.ACState)
	a.drawText("AC", 32, 80, 16, ColTextDim)
	a.drawText(ac, 150, 80, 16, stateColor(ac == "ON"))

	win := panel.Text(readout.WindowState)
	a.drawText("Window", 32, 100, 16, ColTextDim)
	a.drawText(win, 150, 100, 16, stateColor(win == "OPEN"))

	a.drawText("Temperature", 32, 120, 16, ColTextDim)
	a.drawText(panel.Text(readout.Temperature), 150, 120, 16, ColText)

	h := rl.GetScreenHeight()
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, h-30, 14, ColTextDim)
	a.drawText("[DRAG]/[←→] ORBIT  [WHEEL] ZOOM  [Q] QUIT", 140, h-30, 14, ColTextDim)
}

func stateColor(on bool) color.RGBA {
	if on {
		return ColOn
	}
	return ColOff
}

func (a *App) drawLoading() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	rl.DrawRectangle(0, 0, int32(w), int32(h), ColOverlay)

	text := a.Room.Panel().Text(readout.LoadingProgress)
	if text == "" {
		text = "0%"
	}
	a.drawCentered("Loading room", h/2-30, 28, ColText)
	a.drawCentered(text, h/2+10, 20, ColTextDim)
}

func (a *App) drawError(title, message string) {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	rl.DrawRectangle(0, 0, int32(w), int32(h), ColOverlay)
	a.drawCentered(title, h/2-30, 28, ColError)
	a.drawCentered(message, h/2+10, 18, ColText)
}

func (a *App) drawCentered(text string, y, size int, col color.RGBA) {
	width := rl.MeasureTextEx(a.Font, text, float32(size), 1).X
	x := (float32(rl.GetScreenWidth()) - width) / 2
	rl.DrawTextEx(a.Font, text, rl.NewVector2(x, float32(y)), float32(size), 1, col)
}

func (a *App) drawText(text string, x, y int, size int, col color.RGBA) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, col)
}
