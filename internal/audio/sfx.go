package audio

import (
	"time"

	"edgeofdark/internal/engine"

	"github.com/rs/zerolog"
)

// CombatSFX plays a hit or death sound at the target. It satisfies the
// combat reactions interface.
type CombatSFX struct {
	Manager *Manager
	Hit     uint64
	Death   uint64
	Log     zerolog.Logger
}

// NewCombatSFX synthesizes the two cues on m.
func NewCombatSFX(m *Manager, log zerolog.Logger) (*CombatSFX, error) {
	hit, err := m.LoadTone(660, 120*time.Millisecond)
	if err != nil {
		return nil, err
	}
	death, err := m.LoadTone(180, 450*time.Millisecond)
	if err != nil {
		return nil, err
	}
	return &CombatSFX{Manager: m, Hit: hit, Death: death, Log: log}, nil
}

func (s *CombatSFX) OnHit(target *engine.GameObject, remaining float32) {
	if !s.Manager.PlayAt(s.Hit, target.WorldPosition()) {
		s.Log.Debug().Msg("hit sound skipped")
	}
}

func (s *CombatSFX) OnDeath(target *engine.GameObject) {
	if !s.Manager.PlayAt(s.Death, target.WorldPosition()) {
		s.Log.Debug().Msg("death sound skipped")
	}
}
