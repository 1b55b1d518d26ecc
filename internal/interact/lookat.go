package interact

import (
	"edgeofdark/internal/engine"

	"github.com/rs/zerolog"
)

// LookAtTarget is notified when the player's aim starts or stops resting on it.
type LookAtTarget interface {
	OnLookAt(looking bool)
}

// Usable is triggered by the interact command while looked at.
type Usable interface {
	Use(by *engine.GameObject) bool
}

// LookAtTracker follows which LookAtTarget the aim ray rests on and notifies
// only on change.
type LookAtTracker struct {
	Log     zerolog.Logger
	current LookAtTarget
}

// Track updates the tracker from the latest scan.
func (l *LookAtTracker) Track(t Target) {
	var next LookAtTarget
	if t.HitAny && t.Hit.GameObject != nil {
		next, _ = engine.GetComponentInParent[LookAtTarget](t.Hit.GameObject)
	}
	if next == l.current {
		return
	}
	if l.current != nil {
		l.current.OnLookAt(false)
	}
	l.current = next
	if next != nil {
		l.Log.Debug().Msg("looking at target")
		next.OnLookAt(true)
	}
}

func (l *LookAtTracker) Current() LookAtTarget {
	return l.current
}

// Reset notifies the current target that it is no longer looked at.
func (l *LookAtTracker) Reset() {
	if l.current != nil {
		l.current.OnLookAt(false)
		l.current = nil
	}
}
