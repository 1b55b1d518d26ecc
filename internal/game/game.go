package game

import (
	"fmt"
	"time"

	"edgeofdark/internal/audio"
	"edgeofdark/internal/combat"
	"edgeofdark/internal/config"
	"edgeofdark/internal/telemetry"
	"edgeofdark/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// Game is the windowed front end around a Session.
type Game struct {
	Config    config.Config
	Log       zerolog.Logger
	Metrics   *telemetry.Metrics
	Session   *Session
	Renderer  *world.Renderer
	Audio     *audio.Manager
	Panel     *DebugPanel
	DebugMode bool

	lastAttack combat.AttackResult

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(cfg config.Config, log zerolog.Logger, metrics *telemetry.Metrics) *Game {
	return &Game{
		Config:   cfg,
		Log:      log,
		Metrics:  metrics,
		Renderer: world.NewRenderer(),
		Panel:    NewDebugPanel(cfg),
	}
}

func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(int32(g.Config.Window.Width), int32(g.Config.Window.Height), g.Config.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(g.Config.Window.FPS))
	rl.DisableCursor()

	var sfx combat.Reactions
	if dev, err := audio.OpenRaylibDevice(); err != nil {
		g.Log.Warn().Err(err).Msg("audio disabled")
	} else {
		g.Audio = audio.NewManager(dev)
		defer g.Audio.Close()
		if cues, err := audio.NewCombatSFX(g.Audio, g.Log); err != nil {
			g.Log.Warn().Err(err).Msg("combat sounds disabled")
		} else {
			sfx = cues
		}
	}

	s, err := NewSession(Options{
		Config:    g.Config,
		Log:       g.Log,
		Metrics:   g.Metrics,
		Reactions: sfx,
	})
	if err != nil {
		return err
	}
	g.Session = s

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	g.Log.Info().Interface("totals", g.Metrics.Totals()).Msg("session ended")
	return nil
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()
	s := g.Session

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
		if g.DebugMode {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}

	// The cursor belongs to the panel while it is open.
	if !g.DebugMode {
		mouse := rl.GetMouseDelta()
		s.Look(mouse.X, mouse.Y)
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			g.lastAttack = s.Attack()
		}
	}

	var forward, strafe float32
	if rl.IsKeyDown(rl.KeyW) {
		forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		strafe++
	}
	if rl.IsKeyDown(rl.KeyA) {
		strafe--
	}
	if forward != 0 || strafe != 0 {
		s.Move(forward, strafe, deltaTime)
	}
	if rl.IsKeyPressed(rl.KeyE) {
		s.Interact()
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		s.Drop()
	}

	s.Paused = g.Panel.Paused
	s.Tick(deltaTime)

	if g.Audio != nil {
		g.Audio.SetListener(s.FPS.GetEyePosition(), s.FPS.GetLookDirection(), rl.Vector3{Y: 1})
		g.Audio.Update()
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	s := g.Session
	camera := s.Camera3D()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	g.Renderer.ShowColliders = g.Panel.ShowColliders
	rl.BeginMode3D(camera)
	g.Renderer.Draw(s.World, camera, aspect)
	if g.Panel.ShowAimRay {
		g.drawAimRay()
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

// drawAimRay shows the interaction ray: green over a candidate, red
// otherwise.
func (g *Game) drawAimRay() {
	s := g.Session
	eye := s.FPS.GetEyePosition()
	end := rl.Vector3Add(eye, rl.Vector3Scale(s.FPS.GetLookDirection(), g.Config.Interact.MaxDistance))
	color := rl.Red
	t := s.Target()
	if t.HitAny {
		end = t.Hit.Point
	}
	if t.Valid() {
		color = rl.Green
	}
	// Start slightly below the eye so the line is visible.
	rl.DrawLine3D(rl.Vector3Add(eye, rl.Vector3{Y: -0.1}), end, color)
}

func (g *Game) DrawUI() {
	s := g.Session
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

	rl.DrawText("WASD move, mouse look, E interact, Q drop, LMB attack", 10, 10, 20, rl.DarkGray)
	rl.DrawText("F1 to toggle debug panel", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)

	// Crosshair
	rl.DrawLine(w/2-8, h/2, w/2+8, h/2, rl.RayWhite)
	rl.DrawLine(w/2, h/2-8, w/2, h/2+8, rl.RayWhite)

	if t := s.Target(); t.Valid() {
		rl.DrawText(fmt.Sprintf("[E] %s (%s)", t.Candidate.Name, t.Kind), w/2+16, h/2+8, 18, rl.Yellow)
	}
	if held := s.Held(); held != nil {
		rl.DrawText("Holding: "+held.Name, 10, h-30, 20, rl.RayWhite)
	}
	if g.lastAttack != combat.AttackIgnored {
		rl.DrawText("Last attack: "+g.lastAttack.String(), 10, h-55, 18, rl.LightGray)
	}

	if g.DebugMode {
		g.Panel.Draw(s, w)
		rl.DrawText(fmt.Sprintf("Update: %.2f ms", g.updateMs), 10, 85, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:   %.2f ms", g.drawMs), 10, 105, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Meshes: %d", g.Renderer.Drawn()), 10, 125, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Sim:    %s", s.World.Elapsed().Truncate(time.Millisecond)), 10, 145, 16, rl.Lime)
	}
}
