package components

import (
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec
	SleepAngularThreshold  = 1.0 // deg/sec
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	AngularDamping  float32
	UseGravity      bool
	IsKinematic     bool // moved by its owner, never integrated by physics

	IsSleeping bool
	sleepTimer float32
	CanSleep   bool
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:           1.0,
		Bounciness:     0.2,
		Friction:       0.1,
		AngularDamping: 0.98,
		UseGravity:     true,
		CanSleep:       true,
	}
}

// NewKinematicRigidbody returns a body that physics never integrates.
func NewKinematicRigidbody() *Rigidbody {
	rb := NewRigidbody()
	rb.IsKinematic = true
	rb.UseGravity = false
	rb.CanSleep = false
	return rb
}

// IsFree reports whether physics should simulate this body: dynamic, awake
// and not carried by another body. Plain grouping parents do not count.
func (r *Rigidbody) IsFree() bool {
	g := r.GetGameObject()
	if r.IsKinematic || r.IsSleeping || g == nil {
		return false
	}
	for cur := g.Parent; cur != nil; cur = cur.Parent {
		if engine.GetComponent[*Rigidbody](cur) != nil {
			return false
		}
	}
	return true
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// Stop zeroes both linear and angular velocity.
func (r *Rigidbody) Stop() {
	r.Velocity = rl.Vector3{}
	r.AngularVelocity = rl.Vector3{}
}

// TrySleep puts the body to sleep after it has stayed slow long enough.
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime

		// Extra damping near rest reduces jitter.
		dampFactor := float32(0.9)
		r.Velocity = rl.Vector3Scale(r.Velocity, dampFactor)
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, dampFactor)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Stop()
		}
	} else {
		r.sleepTimer = 0
	}
}
