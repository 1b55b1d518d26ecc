package combat

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"
	"edgeofdark/internal/telemetry"

	"github.com/rs/zerolog"
)

// HostileTag marks objects that take damage.
const HostileTag = "Enemy"

// Outcome is the result of one Resolve call.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeHit
	OutcomeLethal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeLethal:
		return "lethal"
	}
	return "none"
}

// Activation is one damage-capable period: a gate opening or a projectile
// flight. At most one hit lands per activation.
type Activation interface {
	Active() bool
	HasHit() bool
	MarkHit()
}

// HitResolver applies a fixed amount of damage to a hostile target's health
// bar and performs the terminal transition when it empties.
type HitResolver struct {
	Damage     float32
	HostileTag string
	Source     string // "melee" or "projectile", for metrics and logs
	Reactions  Reactions
	Metrics    *telemetry.Metrics
	Log        zerolog.Logger
}

func NewHitResolver(damage float32, source string, deps Deps) *HitResolver {
	return &HitResolver{
		Damage:     damage,
		HostileTag: HostileTag,
		Source:     source,
		Reactions:  deps.Reactions,
		Metrics:    deps.Metrics,
		Log:        deps.Log.With().Str("source", source).Logger(),
	}
}

// Resolve evaluates an overlap between act's volume and target.
func (r *HitResolver) Resolve(act Activation, target *engine.GameObject) Outcome {
	if act == nil || !act.Active() || act.HasHit() {
		return OutcomeNone
	}
	if target == nil || !target.HasTag(r.HostileTag) || !target.ActiveInHierarchy() {
		return OutcomeNone
	}
	bar := engine.GetComponentInChildren[*components.HealthBar](target, true)
	if bar == nil {
		r.Log.Warn().Str("target", target.Name).Msg("hostile target has no health bar")
		return OutcomeNone
	}

	remaining := bar.Damage(r.Damage)
	act.MarkHit()
	r.Metrics.Hit(r.Source)

	if remaining <= 0 {
		r.Log.Info().Str("target", target.Name).Msg("target killed")
		if r.Reactions != nil {
			r.Reactions.OnDeath(target)
		}
		target.SetActive(false)
		r.Metrics.Kill(r.Source)
		return OutcomeLethal
	}

	r.Log.Debug().Str("target", target.Name).Float32("remaining", remaining).Msg("target hit")
	if r.Reactions != nil {
		r.Reactions.OnHit(target, remaining)
	}
	return OutcomeHit
}
