package combat

import (
	"edgeofdark/internal/engine"
	"edgeofdark/internal/telemetry"

	"github.com/rs/zerolog"
)

// Deps are the collaborators injected into every combat component.
type Deps struct {
	Clock     engine.Clock
	Reactions Reactions
	Metrics   *telemetry.Metrics
	Log       zerolog.Logger
}

func NopDeps() Deps {
	return Deps{Log: zerolog.Nop()}
}

func worldOf(g *engine.GameObject) engine.WorldAccess {
	if g == nil || g.Scene == nil {
		return nil
	}
	return g.Scene.World
}

// clockFor prefers an explicit clock, then the owning world's.
func clockFor(explicit engine.Clock, g *engine.GameObject) engine.Clock {
	if explicit != nil {
		return explicit
	}
	if w := worldOf(g); w != nil {
		return w.Clock()
	}
	return engine.SystemClock{}
}
