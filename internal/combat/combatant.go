package combat

import (
	"edgeofdark/internal/engine"
	"edgeofdark/internal/interact"
	"edgeofdark/internal/logging"

	"github.com/rs/zerolog"
)

// AttackResult says what an attack intent did.
type AttackResult int

const (
	AttackIgnored  AttackResult = iota // nothing usable held
	AttackSwing                        // melee window opened
	AttackBusy                         // melee window already open
	AttackCast                         // projectile spawned
	AttackRejected                     // cast refused or weapon misconfigured
)

func (r AttackResult) String() string {
	switch r {
	case AttackSwing:
		return "swing"
	case AttackBusy:
		return "busy"
	case AttackCast:
		return "cast"
	case AttackRejected:
		return "rejected"
	}
	return "ignored"
}

// Combatant routes the carrier's attack intent to whatever it holds.
type Combatant struct {
	engine.BaseComponent
	Holder *interact.AcquisitionController
	Aim    engine.LookProvider
	Log    zerolog.Logger

	OnAttack engine.EventWithArg[AttackResult]
}

func NewCombatant(holder *interact.AcquisitionController, aim engine.LookProvider, log zerolog.Logger) *Combatant {
	return &Combatant{
		Holder: holder,
		Aim:    aim,
		Log:    logging.Component(log, "combatant"),
	}
}

func (c *Combatant) Attack() AttackResult {
	result := c.attack()
	if result != AttackIgnored {
		c.OnAttack.Invoke(result)
	}
	return result
}

func (c *Combatant) attack() AttackResult {
	if c.Holder == nil {
		return AttackIgnored
	}
	slot := c.Holder.Slot()
	switch {
	case c.Holder.IsHoldingRole(interact.KindSword):
		gate := engine.GetComponentInChildren[*DamageWindowGate](slot.Object, true)
		if gate == nil {
			c.Log.Warn().Str("weapon", slot.Object.Name).Msg("sword has no damage window")
			return AttackRejected
		}
		if gate.IsOpen() {
			c.Log.Debug().Msg("swing ignored, already attacking")
			return AttackBusy
		}
		gate.Open()
		return AttackSwing

	case c.Holder.IsHoldingRole(interact.KindStaff):
		caster := engine.GetComponentInChildren[*SkillCaster](slot.Object, true)
		if caster == nil {
			c.Log.Warn().Str("weapon", slot.Object.Name).Msg("staff has no skill caster")
			return AttackRejected
		}
		if _, ok := caster.TryCast(c.Aim); !ok {
			return AttackRejected
		}
		return AttackCast
	}
	return AttackIgnored
}
