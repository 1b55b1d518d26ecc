package game

import (
	"time"

	"edgeofdark/internal/telemetry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StepResult records one scripted action.
type StepResult struct {
	Name   string
	Result string
}

// Report is what a scripted arena run ends with.
type Report struct {
	Steps          []StepResult
	GoblinHealth   float32
	BruteHealth    float32
	BruteAlive     bool
	RevenantActive bool
	Elapsed        time.Duration
	Totals         telemetry.Totals
}

type script struct {
	s      *Session
	step   time.Duration
	report Report
}

func (sc *script) record(name string, result any) {
	var text string
	switch v := result.(type) {
	case bool:
		if v {
			text = "ok"
		} else {
			text = "no-op"
		}
	case interface{ String() string }:
		text = v.String()
	}
	sc.report.Steps = append(sc.report.Steps, StepResult{Name: name, Result: text})
	sc.s.Log.Info().Str("step", name).Str("result", text).Dur("t", sc.s.World.Elapsed()).Msg("script")
}

func (sc *script) wait(d time.Duration) {
	sc.s.Run(d, sc.step)
}

// RunArenaScript plays the built-in arena: pick up the staff and cast at the
// goblin, drop it, take the sword to the brute, then use the spawner.
func RunArenaScript(s *Session, step time.Duration) Report {
	sc := &script{s: s, step: step}

	// Let loose weapons settle on the floor.
	sc.wait(500 * time.Millisecond)

	s.AimAtObject("Staff")
	sc.record("pick up staff", s.Interact())

	s.AimAtObject("Goblin")
	sc.record("cast", s.Attack())
	sc.record("cast again", s.Attack())
	sc.wait(time.Second)
	sc.record("cast after cooldown", s.Attack())
	sc.wait(time.Second)

	sc.record("drop staff", s.Drop())
	sc.wait(time.Second)

	s.AimAtObject("Sword")
	sc.record("pick up sword", s.Interact())

	s.Teleport(rl.Vector3{X: 2.8, Z: 6})
	s.AimAtObject("Brute")
	for i := 0; i < 5; i++ {
		sc.record("swing", s.Attack())
		sc.wait(300 * time.Millisecond)
	}

	s.Teleport(rl.Vector3{X: -4, Z: 0.5})
	s.AimAtObject("Spawner")
	sc.wait(step)
	sc.record("use spawner", s.Interact())
	sc.wait(step)

	r := &sc.report
	r.GoblinHealth, _ = s.HealthOf("Goblin")
	r.BruteHealth, _ = s.HealthOf("Brute")
	if brute := s.World.Find("Brute"); brute != nil {
		r.BruteAlive = brute.Active
	}
	if rev := s.World.Find("Revenant"); rev != nil {
		r.RevenantActive = rev.Active
	}
	r.Elapsed = s.World.Elapsed()
	r.Totals = s.Metrics.Totals()
	return *r
}
