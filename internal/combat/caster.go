package combat

import (
	"math"
	"time"

	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"
	"edgeofdark/internal/logging"
	"edgeofdark/internal/telemetry"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// ProjectileTemplate describes the entity a SkillCaster spawns.
type ProjectileTemplate struct {
	Name         string
	Radius       float32
	Color        rl.Color
	Damage       float32
	DestroyOnHit bool
	HostileTag   string
	Layer        int
}

func DefaultProjectileTemplate() *ProjectileTemplate {
	return &ProjectileTemplate{
		Name:         "SkillProjectile",
		Radius:       0.25,
		Color:        rl.SkyBlue,
		Damage:       0.2,
		DestroyOnHit: true,
		HostileTag:   HostileTag,
	}
}

// SkillCaster lives on a ranged implement. Each accepted cast starts a
// cooldown and spawns one Projectile from SpawnPoint along the aim.
type SkillCaster struct {
	engine.BaseComponent
	SpawnPoint *engine.GameObject
	Template   *ProjectileTemplate
	Range      float32
	TravelTime time.Duration
	Cooldown   Cooldown
	World      engine.WorldAccess
	Clock      engine.Clock
	Reactions  Reactions
	Metrics    *telemetry.Metrics
	Log        zerolog.Logger

	OnCast engine.EventWithArg[*engine.GameObject]
}

func NewSkillCaster(spawnPoint *engine.GameObject, deps Deps) *SkillCaster {
	return &SkillCaster{
		SpawnPoint: spawnPoint,
		Template:   DefaultProjectileTemplate(),
		Range:      12,
		TravelTime: 800 * time.Millisecond,
		Cooldown:   Cooldown{Duration: 500 * time.Millisecond},
		Clock:      deps.Clock,
		Reactions:  deps.Reactions,
		Metrics:    deps.Metrics,
		Log:        logging.Component(deps.Log, "caster"),
	}
}

// OnCooldown reports whether a cast at the current time would be refused.
func (s *SkillCaster) OnCooldown() bool {
	return s.Cooldown.OnCooldown(s.clock().Now())
}

// TryCast spawns a projectile toward aim's look direction. It returns the
// spawned object and whether the cast was accepted.
func (s *SkillCaster) TryCast(aim engine.LookProvider) (*engine.GameObject, bool) {
	now := s.clock().Now()
	if s.Cooldown.OnCooldown(now) {
		s.Log.Debug().Dur("remaining", s.Cooldown.Remaining(now)).Msg("cast rejected, on cooldown")
		s.Metrics.CastRejected("cooldown")
		return nil, false
	}
	world := s.world()
	if s.SpawnPoint == nil || s.Template == nil || aim == nil || world == nil {
		s.Log.Warn().
			Bool("spawn_point", s.SpawnPoint != nil).
			Bool("template", s.Template != nil).
			Bool("aim", aim != nil).
			Bool("world", world != nil).
			Msg("cast rejected, caster not configured")
		s.Metrics.CastRejected("unconfigured")
		return nil, false
	}
	s.Cooldown.TryStart(now)

	origin := s.SpawnPoint.WorldPosition()
	dir := rl.Vector3Normalize(aim.GetLookDirection())
	target := rl.Vector3Add(origin, rl.Vector3Scale(dir, s.Range))

	obj := s.build(origin, target, world, now)
	world.SpawnObject(obj)

	s.Log.Info().Str("projectile", obj.Name).Msg("cast")
	s.Metrics.Cast()
	s.OnCast.Invoke(obj)
	return obj, true
}

func (s *SkillCaster) build(origin, target rl.Vector3, world engine.WorldAccess, now time.Time) *engine.GameObject {
	tpl := s.Template
	obj := engine.NewGameObject(tpl.Name)
	obj.Layer = tpl.Layer
	obj.Transform.Position = origin

	// Yaw toward the target so the mesh faces the flight direction.
	dir := rl.Vector3Subtract(target, origin)
	obj.Transform.Rotation.Y = -rl.Rad2deg * float32(math.Atan2(float64(dir.Z), float64(dir.X)))

	diameter := tpl.Radius * 2
	obj.AddComponent(components.NewMeshRenderer(components.MeshSphere, tpl.Color, rl.Vector3{X: diameter, Y: diameter, Z: diameter}))
	obj.AddComponent(components.NewSphereTrigger(tpl.Radius))
	obj.AddComponent(components.NewKinematicRigidbody())

	resolver := &HitResolver{
		Damage:     tpl.Damage,
		HostileTag: tpl.HostileTag,
		Source:     "projectile",
		Reactions:  s.Reactions,
		Metrics:    s.Metrics,
		Log:        s.Log.With().Str("source", "projectile").Logger(),
	}
	if resolver.HostileTag == "" {
		resolver.HostileTag = HostileTag
	}
	p := &Projectile{
		Origin:       origin,
		Target:       target,
		TravelTime:   s.TravelTime,
		Resolver:     resolver,
		DestroyOnHit: tpl.DestroyOnHit,
		Clock:        s.Clock,
		World:        world,
	}
	obj.AddComponent(p)
	p.Launch(now)
	return obj
}

func (s *SkillCaster) clock() engine.Clock {
	return clockFor(s.Clock, s.GetGameObject())
}

func (s *SkillCaster) world() engine.WorldAccess {
	if s.World != nil {
		return s.World
	}
	return worldOf(s.GetGameObject())
}
