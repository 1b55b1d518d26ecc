package combat

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"
	"edgeofdark/internal/logging"

	"github.com/rs/zerolog"
)

// SpawnMachine revives a bound enemy when the player uses it while looking
// at it. The enemy starts deactivated.
type SpawnMachine struct {
	engine.BaseComponent
	Enemy engine.GameObjectRef
	Log   zerolog.Logger

	OnSpawned engine.EventWithArg[*engine.GameObject]

	enemy   *engine.GameObject
	looking bool
}

func NewSpawnMachine(enemy *engine.GameObject, log zerolog.Logger) *SpawnMachine {
	s := &SpawnMachine{Log: logging.Component(log, "spawner")}
	s.SetEnemy(enemy)
	return s
}

func (s *SpawnMachine) SetEnemy(enemy *engine.GameObject) {
	s.enemy = enemy
	s.Enemy = engine.RefTo(enemy)
}

func (s *SpawnMachine) Start() {
	enemy := s.resolve()
	if enemy == nil {
		s.Log.Error().Msg("spawner has no enemy bound")
		return
	}
	enemy.SetActive(false)
}

// OnLookAt implements interact.LookAtTarget.
func (s *SpawnMachine) OnLookAt(looking bool) {
	s.looking = looking
}

func (s *SpawnMachine) LookedAt() bool {
	return s.looking
}

// Use implements interact.Usable.
func (s *SpawnMachine) Use(by *engine.GameObject) bool {
	if !s.looking {
		return false
	}
	enemy := s.resolve()
	if enemy == nil {
		s.Log.Error().Msg("spawner has no enemy bound")
		return false
	}
	if enemy.Active {
		return false
	}
	if bar := engine.GetComponentInChildren[*components.HealthBar](enemy, true); bar != nil {
		bar.SetFill(1)
	} else {
		s.Log.Warn().Str("enemy", enemy.Name).Msg("enemy has no health bar")
	}
	enemy.SetActive(true)
	s.Log.Info().Str("enemy", enemy.Name).Msg("enemy spawned")
	s.OnSpawned.Invoke(enemy)
	return true
}

func (s *SpawnMachine) resolve() *engine.GameObject {
	if g := s.GetGameObject(); g != nil && g.Scene != nil && s.Enemy.IsValid() {
		if found := s.Enemy.Get(g.Scene); found != nil {
			s.enemy = found
		}
	}
	return s.enemy
}
