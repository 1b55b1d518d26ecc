package combat

import (
	"time"

	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Projectile moves from Origin to Target over a fixed TravelTime regardless
// of distance, and resolves at most one hit.
type Projectile struct {
	engine.BaseComponent
	Origin       rl.Vector3
	Target       rl.Vector3
	TravelTime   time.Duration
	Resolver     *HitResolver
	DestroyOnHit bool
	Clock        engine.Clock
	World        engine.WorldAccess

	OnFinished engine.EventWithArg[Outcome]

	startedAt time.Time
	launched  bool
	hasHit    bool
	finished  bool
}

// Launch places the projectile at its origin and starts the flight at now.
func (p *Projectile) Launch(now time.Time) {
	p.startedAt = now
	p.launched = true
	if g := p.GetGameObject(); g != nil {
		g.Transform.Position = p.Origin
	}
}

func (p *Projectile) Start() {
	if !p.launched {
		p.Launch(p.clock().Now())
	}
}

// Progress is the normalized travel fraction at now.
func (p *Projectile) Progress(now time.Time) float32 {
	if p.TravelTime <= 0 {
		return 1
	}
	t := float32(now.Sub(p.startedAt).Seconds() / p.TravelTime.Seconds())
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (p *Projectile) Update(deltaTime float32) {
	if p.finished {
		return
	}
	g := p.GetGameObject()
	t := p.Progress(p.clock().Now())
	g.Transform.Position = rl.Vector3Lerp(p.Origin, p.Target, t)
	if t >= 1 {
		p.finish(OutcomeNone)
	}
}

// Active implements Activation.
func (p *Projectile) Active() bool {
	return !p.finished && !p.hasHit
}

func (p *Projectile) HasHit() bool {
	return p.hasHit
}

func (p *Projectile) MarkHit() {
	p.hasHit = true
}

func (p *Projectile) Finished() bool {
	return p.finished
}

func (p *Projectile) OnTriggerEnter(other *engine.GameObject) {
	if p.Resolver == nil {
		return
	}
	outcome := p.Resolver.Resolve(p, other)
	if outcome != OutcomeNone && p.DestroyOnHit {
		p.finish(outcome)
	}
}

func (p *Projectile) OnTriggerExit(other *engine.GameObject) {}

func (p *Projectile) finish(outcome Outcome) {
	if p.finished {
		return
	}
	p.finished = true
	g := p.GetGameObject()
	if w := p.world(); w != nil && g != nil {
		w.Destroy(g)
	} else if g != nil {
		g.SetActive(false)
	}
	p.OnFinished.Invoke(outcome)
}

func (p *Projectile) clock() engine.Clock {
	return clockFor(p.Clock, p.GetGameObject())
}

func (p *Projectile) world() engine.WorldAccess {
	if p.World != nil {
		return p.World
	}
	return worldOf(p.GetGameObject())
}
