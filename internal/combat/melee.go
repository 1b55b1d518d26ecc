package combat

import "edgeofdark/internal/engine"

// MeleeHitbox sits on a weapon's trigger volume and feeds overlaps to its
// resolver while the weapon's gate is open.
type MeleeHitbox struct {
	engine.BaseComponent
	Gate     *DamageWindowGate // found on the weapon hierarchy when nil
	Resolver *HitResolver
	// CloseOnLethal shuts the gate right after a kill.
	CloseOnLethal bool

	OnResolved engine.EventWithArg[Outcome]
}

func NewMeleeHitbox(resolver *HitResolver) *MeleeHitbox {
	return &MeleeHitbox{Resolver: resolver}
}

func (m *MeleeHitbox) Start() {
	if m.Gate == nil {
		m.Gate, _ = engine.GetComponentInParent[*DamageWindowGate](m.GetGameObject())
	}
}

func (m *MeleeHitbox) OnTriggerEnter(other *engine.GameObject) {
	m.evaluate(other)
}

// OnTriggerStay lets an overlap that began before the window opened land.
func (m *MeleeHitbox) OnTriggerStay(other *engine.GameObject) {
	m.evaluate(other)
}

func (m *MeleeHitbox) OnTriggerExit(other *engine.GameObject) {}

func (m *MeleeHitbox) evaluate(other *engine.GameObject) {
	if m.Gate == nil || m.Resolver == nil {
		return
	}
	outcome := m.Resolver.Resolve(m.Gate, other)
	if outcome == OutcomeNone {
		return
	}
	if outcome == OutcomeLethal && m.CloseOnLethal {
		m.Gate.Close()
	}
	m.OnResolved.Invoke(outcome)
}
