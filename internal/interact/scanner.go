package interact

import (
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// Raycaster is the world query the scanner needs.
type Raycaster interface {
	Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask, ignore *engine.GameObject) (engine.RaycastResult, bool)
}

// Holder exposes what a carrier is currently holding.
type Holder interface {
	Held() *engine.GameObject
}

// Target is the result of one scan.
type Target struct {
	// Hit is whatever the ray struck first, interactable or not.
	Hit    engine.RaycastResult
	HitAny bool

	Candidate *engine.GameObject
	Kind      Kind
}

// Valid reports whether the scan produced a pickup candidate.
func (t Target) Valid() bool {
	return t.Candidate != nil
}

// TargetScanner casts the aim ray and classifies the first surface hit.
// It never mutates the world.
type TargetScanner struct {
	World       Raycaster
	Aim         engine.LookProvider
	Carrier     *engine.GameObject // excluded from the ray
	Holder      Holder
	MaxDistance float32
	Mask        engine.LayerMask
	Log         zerolog.Logger

	current Target
}

func NewTargetScanner(world Raycaster, aim engine.LookProvider, carrier *engine.GameObject, maxDistance float32) *TargetScanner {
	return &TargetScanner{
		World:       world,
		Aim:         aim,
		Carrier:     carrier,
		MaxDistance: maxDistance,
		Mask:        engine.AllLayers,
		Log:         zerolog.Nop(),
	}
}

// Scan refreshes and returns the current target.
func (s *TargetScanner) Scan() Target {
	s.current = Target{}
	if s.World == nil || s.Aim == nil {
		return s.current
	}
	hit, ok := s.World.Raycast(s.Aim.GetEyePosition(), s.Aim.GetLookDirection(), s.MaxDistance, s.Mask, s.Carrier)
	if !ok {
		return s.current
	}
	s.current.Hit = hit
	s.current.HitAny = true

	var held *engine.GameObject
	if s.Holder != nil {
		held = s.Holder.Held()
	}
	candidate, kind, ok := Classify(hit.GameObject, held)
	if !ok {
		return s.current
	}
	s.current.Candidate = candidate
	s.current.Kind = kind
	return s.current
}

// Current returns the result of the last Scan.
func (s *TargetScanner) Current() Target {
	return s.current
}
