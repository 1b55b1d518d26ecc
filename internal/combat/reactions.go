package combat

import "edgeofdark/internal/engine"

// Reactions is told how each damage application ended. Animation and audio
// collaborators implement it to pick a hit or a death response.
type Reactions interface {
	OnHit(target *engine.GameObject, remaining float32)
	OnDeath(target *engine.GameObject)
}

// ReactionSet fans out to every member in order.
type ReactionSet []Reactions

func (s ReactionSet) OnHit(target *engine.GameObject, remaining float32) {
	for _, r := range s {
		if r != nil {
			r.OnHit(target, remaining)
		}
	}
}

func (s ReactionSet) OnDeath(target *engine.GameObject) {
	for _, r := range s {
		if r != nil {
			r.OnDeath(target)
		}
	}
}
