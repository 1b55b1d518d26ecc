package combat

import (
	"time"

	"edgeofdark/internal/engine"
	"edgeofdark/internal/logging"

	"github.com/rs/zerolog"
)

// DamageWindowGate is a melee weapon's open/closed damage window. Open
// schedules a close after Duration; reopening does not move that close.
type DamageWindowGate struct {
	engine.BaseComponent
	Duration time.Duration
	Clock    engine.Clock
	Log      zerolog.Logger

	OnOpened engine.Event
	OnClosed engine.Event

	open   bool
	hasHit bool
	timers engine.Timers
}

func NewDamageWindowGate(duration time.Duration, deps Deps) *DamageWindowGate {
	return &DamageWindowGate{
		Duration: duration,
		Clock:    deps.Clock,
		Log:      logging.Component(deps.Log, "gate"),
	}
}

// Open starts a new activation.
func (g *DamageWindowGate) Open() {
	g.open = true
	g.hasHit = false
	g.timers.After(g.clock().Now(), g.Duration, g.Close)
	g.Log.Debug().Msg("damage window open")
	g.OnOpened.Invoke()
}

func (g *DamageWindowGate) Close() {
	if !g.open {
		return
	}
	g.open = false
	g.Log.Debug().Msg("damage window closed")
	g.OnClosed.Invoke()
}

func (g *DamageWindowGate) IsOpen() bool {
	return g.open
}

// Active implements Activation.
func (g *DamageWindowGate) Active() bool {
	return g.open
}

func (g *DamageWindowGate) HasHit() bool {
	return g.hasHit
}

func (g *DamageWindowGate) MarkHit() {
	g.hasHit = true
}

// Pending reports scheduled closes that have not fired yet.
func (g *DamageWindowGate) Pending() int {
	return g.timers.Pending()
}

func (g *DamageWindowGate) Update(deltaTime float32) {
	g.timers.Fire(g.clock().Now())
}

// OnDisable drops pending closes and shuts the window.
func (g *DamageWindowGate) OnDisable() {
	g.timers.Drop()
	g.Close()
}

func (g *DamageWindowGate) clock() engine.Clock {
	return clockFor(g.Clock, g.GetGameObject())
}
