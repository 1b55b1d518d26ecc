package interact

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"
	"edgeofdark/internal/telemetry"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// CandidateSource supplies the object currently under the aim ray.
type CandidateSource interface {
	Current() Target
}

// HeldSlot is the carrier's single attachment: which role, which anchor,
// which object. The zero value is the Empty state.
type HeldSlot struct {
	Kind   Kind
	Anchor *engine.GameObject
	Object *engine.GameObject
	Body   *components.Rigidbody
	// Home is the parent the object had before pickup; a drop returns it there.
	Home *engine.GameObject
}

func (s HeldSlot) Empty() bool {
	return s.Object == nil
}

// DropTuning shapes where a released object appears and how it is tossed.
type DropTuning struct {
	Forward     float32 // along aim from the eye
	Down        float32
	TossForward float32 // velocity along aim
	TossUp      float32
}

func DefaultDropTuning() DropTuning {
	return DropTuning{Forward: 1, Down: 0.2, TossForward: 2, TossUp: 0.5}
}

// AcquisitionController runs the Empty -> Holding -> Empty pickup cycle for
// one carrier.
type AcquisitionController struct {
	engine.BaseComponent
	Candidates    CandidateSource
	Aim           engine.LookProvider
	Anchors       map[Kind]*engine.GameObject
	DefaultAnchor *engine.GameObject
	Drop          DropTuning
	Metrics       *telemetry.Metrics
	Log           zerolog.Logger

	OnAcquired engine.EventWithArg[HeldSlot]
	OnReleased engine.EventWithArg[HeldSlot]

	slot HeldSlot
}

func NewAcquisitionController(candidates CandidateSource, aim engine.LookProvider) *AcquisitionController {
	return &AcquisitionController{
		Candidates: candidates,
		Aim:        aim,
		Anchors:    make(map[Kind]*engine.GameObject),
		Drop:       DefaultDropTuning(),
		Log:        zerolog.Nop(),
	}
}

// TryAcquire attaches the current candidate to its role anchor. It reports
// whether the carrier transitioned to Holding.
func (a *AcquisitionController) TryAcquire() bool {
	if !a.slot.Empty() {
		a.Log.Debug().Str("held", a.slot.Object.Name).Msg("already holding, acquire ignored")
		return false
	}
	if a.Candidates == nil {
		return false
	}
	target := a.Candidates.Current()
	if !target.Valid() {
		return false
	}
	obj := target.Candidate

	body := engine.GetComponent[*components.Rigidbody](obj)
	if body == nil {
		a.Log.Warn().Str("object", obj.Name).Msg("candidate has no rigidbody")
		return false
	}

	anchor := a.anchorFor(obj, target.Kind)
	if anchor == nil {
		return false
	}

	home := obj.Parent

	body.Stop()
	body.IsKinematic = true
	body.UseGravity = false
	body.Wake()

	obj.SetParent(anchor, false)
	obj.Transform.Position = rl.Vector3{}
	obj.Transform.Rotation = rl.Vector3{}

	a.slot = HeldSlot{Kind: target.Kind, Anchor: anchor, Object: obj, Body: body, Home: home}
	a.Log.Info().Str("object", obj.Name).Stringer("kind", target.Kind).Str("anchor", anchor.Name).Msg("acquired")
	a.Metrics.Pickup(target.Kind.String())
	a.OnAcquired.Invoke(a.slot)
	return true
}

func (a *AcquisitionController) anchorFor(obj *engine.GameObject, kind Kind) *engine.GameObject {
	switch kind {
	case KindSword, KindShield, KindStaff:
		if anchor := a.Anchors[kind]; anchor != nil {
			return anchor
		}
		a.Log.Warn().Str("object", obj.Name).Stringer("kind", kind).Msg("no anchor for role, using default")
	default:
		a.Log.Warn().Str("object", obj.Name).Stringer("kind", kind).Msg("unrecognized role, using default anchor")
	}
	if a.DefaultAnchor == nil {
		a.Log.Error().Str("object", obj.Name).Msg("default hold anchor missing")
	}
	return a.DefaultAnchor
}

// Release detaches the held object in front of the carrier and tosses it.
// The object goes back under the parent it was picked up from.
// It reports whether anything was released.
func (a *AcquisitionController) Release() bool {
	if a.slot.Empty() {
		return false
	}
	slot := a.slot
	a.slot = HeldSlot{}

	obj, body := slot.Object, slot.Body
	obj.SetParent(slot.Home, true)

	body.IsKinematic = false
	body.UseGravity = true
	body.Wake()

	forward := rl.Vector3{Z: 1}
	origin := obj.WorldPosition()
	if a.Aim != nil {
		forward = rl.Vector3Normalize(a.Aim.GetLookDirection())
		origin = a.Aim.GetEyePosition()
	}
	obj.SetWorldPosition(rl.Vector3Add(
		rl.Vector3Add(origin, rl.Vector3Scale(forward, a.Drop.Forward)),
		rl.Vector3{Y: -a.Drop.Down},
	))
	body.Velocity = rl.Vector3Add(rl.Vector3Scale(forward, a.Drop.TossForward), rl.Vector3{Y: a.Drop.TossUp})
	body.AngularVelocity = rl.Vector3{}

	a.Log.Info().Str("object", obj.Name).Stringer("kind", slot.Kind).Msg("released")
	a.Metrics.Drop(slot.Kind.String())
	a.OnReleased.Invoke(slot)
	return true
}

// IsHoldingRole reports whether the carrier holds an object of kind.
func (a *AcquisitionController) IsHoldingRole(kind Kind) bool {
	return !a.slot.Empty() && a.slot.Kind == kind
}

// Held implements Holder.
func (a *AcquisitionController) Held() *engine.GameObject {
	return a.slot.Object
}

func (a *AcquisitionController) Slot() HeldSlot {
	return a.slot
}

// OnDisable drops whatever is held so the object returns to free physics.
func (a *AcquisitionController) OnDisable() {
	a.Release()
}
