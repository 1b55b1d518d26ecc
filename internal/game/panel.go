package game

import (
	"fmt"
	"time"

	"edgeofdark/internal/config"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBgDark    = rl.NewColor(24, 24, 32, 230)
	colorBgElement = rl.NewColor(40, 40, 52, 255)
	colorAccent    = rl.NewColor(90, 140, 230, 255)
	colorText      = rl.NewColor(220, 220, 230, 255)
)

const panelWidth = 280

// DebugPanel is the F1 overlay. Slider edits go straight into the running
// session.
type DebugPanel struct {
	ShowAimRay    bool
	ShowColliders bool
	Paused        bool
	MeleeDamage   float32
	StaffCooldown float32 // seconds

	styled bool
}

func NewDebugPanel(cfg config.Config) *DebugPanel {
	return &DebugPanel{
		ShowAimRay:    true,
		MeleeDamage:   cfg.Melee.Damage,
		StaffCooldown: float32(cfg.Staff.CooldownSeconds),
	}
}

func (p *DebugPanel) applyStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
	p.styled = true
}

// Draw renders the panel at the right edge and applies any edits to s.
func (p *DebugPanel) Draw(s *Session, screenW int32) {
	if !p.styled {
		p.applyStyle()
	}
	x := float32(screenW - panelWidth - 10)
	rl.DrawRectangle(int32(x)-10, 10, panelWidth+10, 230, colorBgDark)
	rl.DrawText("Debug", int32(x), 18, 18, colorAccent)

	y := float32(48)
	row := func() rl.Rectangle {
		r := rl.Rectangle{X: x, Y: y, Width: 18, Height: 18}
		y += 28
		return r
	}
	p.ShowAimRay = gui.CheckBox(row(), "Aim ray", p.ShowAimRay)
	p.ShowColliders = gui.CheckBox(row(), "Colliders", p.ShowColliders)
	p.Paused = gui.CheckBox(row(), "Pause simulation", p.Paused)

	rl.DrawText("Melee damage", int32(x), int32(y), 14, colorText)
	y += 18
	damage := gui.Slider(rl.Rectangle{X: x, Y: y, Width: 200, Height: 16}, "", fmt.Sprintf("%.2f", p.MeleeDamage), p.MeleeDamage, 0.05, 1)
	y += 26
	rl.DrawText("Staff cooldown (s)", int32(x), int32(y), 14, colorText)
	y += 18
	cooldown := gui.Slider(rl.Rectangle{X: x, Y: y, Width: 200, Height: 16}, "", fmt.Sprintf("%.2f", p.StaffCooldown), p.StaffCooldown, 0, 3)

	p.apply(s, damage, cooldown)
}

// apply pushes changed slider values into the session.
func (p *DebugPanel) apply(s *Session, damage, cooldown float32) {
	if damage != p.MeleeDamage {
		p.MeleeDamage = damage
		s.SetMeleeDamage(damage)
	}
	if cooldown != p.StaffCooldown {
		p.StaffCooldown = cooldown
		s.SetStaffCooldown(time.Duration(float64(cooldown) * float64(time.Second)))
	}
}
