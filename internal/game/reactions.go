package game

import (
	"edgeofdark/internal/engine"
	"edgeofdark/internal/logging"

	"github.com/rs/zerolog"
)

// AnimationLog stands in for an animation system: it records which clip a
// target would play.
type AnimationLog struct {
	Log zerolog.Logger
}

func NewAnimationLog(log zerolog.Logger) *AnimationLog {
	return &AnimationLog{Log: logging.Component(log, "animation")}
}

func (a *AnimationLog) OnHit(target *engine.GameObject, remaining float32) {
	a.Log.Info().Str("target", target.Name).Float32("health", remaining).Str("clip", "hit").Msg("play")
}

func (a *AnimationLog) OnDeath(target *engine.GameObject) {
	a.Log.Info().Str("target", target.Name).Str("clip", "death").Msg("play")
}
