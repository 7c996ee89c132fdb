// Package app runs the interactive showroom window.
package app

import (
	"fmt"

	"showroom/internal/bounds"
	"showroom/internal/camera"
	"showroom/internal/catalog"
	"showroom/internal/config"
	"showroom/internal/configurator"
	"showroom/internal/prefs"
	"showroom/internal/ui"
	"showroom/internal/viewport"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

type App struct {
	cfg   *config.Config
	log   zerolog.Logger
	cat   *catalog.Catalog
	saved *prefs.Prefs

	conf   *configurator.Configurator
	view   *viewport.Viewport
	orbit  *camera.Orbit
	panel  *ui.Panel
	target rl.Vector3

	DebugMode bool
}

func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	saved, err := prefs.Load(cfg.Prefs)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Prefs).Msg("ignoring unreadable prefs")
		saved = nil
	}
	return &App{cfg: cfg, log: log, cat: cat, saved: saved}, nil
}

func (a *App) Run() error {
	width, height := a.cfg.WindowWidth, a.cfg.WindowHeight
	if a.saved != nil && a.saved.WindowWidth > 0 && a.saved.WindowHeight > 0 {
		width, height = a.saved.WindowWidth, a.saved.WindowHeight
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), "Showroom")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	ui.ApplyTheme()
	a.view = viewport.New(a.log)
	defer a.view.Unload()

	model, color := InitialSelection(a.cat, a.cfg, a.saved, a.log)
	conf, err := configurator.New(a.cat, NewLoader(a.cfg, a.log), configurator.Options{
		DefaultModel: model,
		DefaultColor: color,
		Logger:       a.log,
		OnRelease:    a.view.Release,
	})
	if err != nil {
		return err
	}
	a.conf = conf
	defer a.conf.Close()

	a.panel = ui.NewPanel(conf.ListCatalog(), conf.Palette())
	a.orbit = camera.New(camera.DefaultPosition, a.target)
	if a.saved != nil {
		a.orbit.Yaw, a.orbit.Pitch = a.saved.CameraYaw, a.saved.CameraPitch
		a.orbit.Rotate(0, 0)
	}

	unsubscribe := conf.Subscribe(func(s configurator.State) {
		a.log.Info().
			Str("model", s.ModelID).
			Str("color", s.Color.Name).
			Stringer("status", s.Status).
			Msg("showroom state")
	})
	defer unsubscribe()

	start := conf.State().ModelID
	if err := conf.SelectModel(start); err != nil {
		return fmt.Errorf("select %s: %w", start, err)
	}

	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}

	a.savePrefs()
	return nil
}

func (a *App) Update() {
	a.conf.Pump()
	a.orbit.Update(!a.panel.Contains(rl.GetMousePosition()))

	if rl.IsKeyPressed(rl.KeyF1) {
		a.DebugMode = !a.DebugMode
	}
}

func (a *App) Draw() {
	s := a.conf.State()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	cam := a.orbit.GetRaylibCamera()
	aspect := float32(rl.GetScreenWidth()) / float32(max(rl.GetScreenHeight(), 1))
	view := bounds.ExtractFrustum(cam, aspect)

	rl.BeginMode3D(cam)
	rl.DrawGrid(20, 1)
	a.view.Draw(s.Displayed, &view)
	hover, hovering := a.hoverPart(s, cam)
	if hovering {
		rl.DrawBoundingBox(rl.BoundingBox{Min: hover.Box.Min, Max: hover.Box.Max}, rl.Yellow)
	}
	rl.EndMode3D()

	intent := a.panel.Draw(s)
	a.DrawUI(s)
	if hovering {
		a.drawHover(s, hover)
	}
	rl.EndDrawing()

	// Selections happen after the frame so the state drawn above stays
	// consistent for the whole frame.
	if intent.Model != "" {
		if err := a.conf.SelectModel(intent.Model); err != nil {
			a.log.Warn().Err(err).Msg("model selection failed")
		}
	}
	if intent.Color != "" {
		if err := a.conf.SelectColor(intent.Color); err != nil {
			a.log.Warn().Err(err).Msg("color selection failed")
		}
	}
}

func (a *App) DrawUI(s configurator.State) {
	screenW := int32(rl.GetScreenWidth())
	rl.DrawText("Drag to rotate", screenW-150, 10, 16, rl.Gray)

	if !a.DebugMode {
		return
	}
	rl.DrawFPS(screenW-100, 35)
	d := a.conf.Diagnostics()
	y := int32(60)
	lines := []string{
		fmt.Sprintf("Pending loads: %d", a.conf.Pending()),
		fmt.Sprintf("Stale results: %d", d.Stale),
		fmt.Sprintf("Load failures: %d", d.LoadFailures),
	}
	if s.Displayed != nil {
		lines = append(lines,
			fmt.Sprintf("Nodes: %d", s.Displayed.NodeCount()),
			fmt.Sprintf("Paintable: %d", s.Displayed.PaintableCount()),
			fmt.Sprintf("Drawn: %d culled: %d", a.view.Drawn, a.view.Culled))
	}
	for id, n := range d.ZeroMatch {
		lines = append(lines, fmt.Sprintf("No paintable parts: %s (%d)", id, n))
	}
	for _, line := range lines {
		rl.DrawText(line, screenW-260, y, 16, rl.Green)
		y += 20
	}
}

// hoverPart finds the displayed part under the mouse. It only runs in debug
// mode, where it helps when writing paint rules for a new asset.
func (a *App) hoverPart(s configurator.State, cam rl.Camera3D) (bounds.Part, bool) {
	if !a.DebugMode || s.Displayed == nil {
		return bounds.Part{}, false
	}
	mouse := rl.GetMousePosition()
	if a.panel.Contains(mouse) {
		return bounds.Part{}, false
	}
	ray := rl.GetScreenToWorldRay(mouse, cam)
	p, _, ok := bounds.Pick(bounds.Parts(s.Displayed), ray.Position, ray.Direction, 1000)
	return p, ok
}

func (a *App) drawHover(s configurator.State, p bounds.Part) {
	label := p.Node.Name
	if s.Displayed.IsPaintable(p.Node) {
		label += " (paintable)"
	}
	mouse := rl.GetMousePosition()
	rl.DrawText(label, int32(mouse.X)+14, int32(mouse.Y)+4, 16, rl.Yellow)
}

func (a *App) savePrefs() {
	s := a.conf.State()
	p := &prefs.Prefs{
		Model:        s.ModelID,
		Color:        s.Color.Hex,
		WindowWidth:  rl.GetScreenWidth(),
		WindowHeight: rl.GetScreenHeight(),
		CameraYaw:    a.orbit.Yaw,
		CameraPitch:  a.orbit.Pitch,
	}
	if err := p.Save(a.cfg.Prefs); err != nil {
		a.log.Warn().Err(err).Msg("failed to save prefs")
	}
}
