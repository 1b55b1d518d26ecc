package combat

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the weapon numbers used when a level does not set its own.
type Tuning struct {
	MeleeDamage   float32
	MeleeWindow   time.Duration
	CloseOnLethal bool

	StaffDamage      float32
	StaffRange       float32
	StaffTravelTime  time.Duration
	StaffCooldown    time.Duration
	DestroyOnHit     bool
	ProjectileRadius float32
	ProjectileColor  rl.Color
}

func DefaultTuning() Tuning {
	return Tuning{
		MeleeDamage:      0.2,
		MeleeWindow:      250 * time.Millisecond,
		StaffDamage:      0.2,
		StaffRange:       12,
		StaffTravelTime:  800 * time.Millisecond,
		StaffCooldown:    500 * time.Millisecond,
		DestroyOnHit:     true,
		ProjectileRadius: 0.25,
		ProjectileColor:  rl.SkyBlue,
	}
}

// Apply configures c with the staff numbers in t.
func (t Tuning) Apply(c *SkillCaster) {
	c.Range = t.StaffRange
	c.TravelTime = t.StaffTravelTime
	c.Cooldown.Duration = t.StaffCooldown
	if c.Template == nil {
		c.Template = DefaultProjectileTemplate()
	}
	c.Template.Damage = t.StaffDamage
	c.Template.DestroyOnHit = t.DestroyOnHit
	c.Template.Radius = t.ProjectileRadius
	c.Template.Color = t.ProjectileColor
}
