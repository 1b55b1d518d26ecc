package world

import (
	"path/filepath"
	"testing"
	"time"

	"edgeofdark/internal/combat"
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T) *World {
	t.Helper()
	return New(combat.NopDeps(), combat.DefaultTuning())
}

func loadArena(t *testing.T) *World {
	t.Helper()
	w := newWorld(t)
	require.NoError(t, w.LoadArena())
	w.Start()
	return w
}

func TestLoadArenaWiresObjects(t *testing.T) {
	w := loadArena(t)

	sword := w.Find("Sword")
	require.NotNil(t, sword)
	require.NotNil(t, sword.Parent)
	assert.Equal(t, "Weapons", sword.Parent.Name)
	assert.True(t, sword.HasTag("Sword"))

	blade := w.Find("Blade")
	require.NotNil(t, blade)
	hitbox := engine.GetComponent[*combat.MeleeHitbox](blade)
	require.NotNil(t, hitbox)
	assert.Same(t, engine.GetComponent[*combat.DamageWindowGate](sword), hitbox.Gate)
	assert.Equal(t, float32(0.2), hitbox.Resolver.Damage)

	caster := engine.GetComponent[*combat.SkillCaster](w.Find("Staff"))
	require.NotNil(t, caster)
	assert.Same(t, w.Find("SkillSpawn"), caster.SpawnPoint)
	assert.Equal(t, float32(12), caster.Range)
	assert.Equal(t, 800*time.Millisecond, caster.TravelTime)
	assert.Equal(t, 500*time.Millisecond, caster.Cooldown.Duration)
	assert.Equal(t, rl.SkyBlue, caster.Template.Color)

	revenant := w.Find("Revenant")
	require.NotNil(t, revenant)
	assert.False(t, revenant.Active, "spawner deactivates its enemy on start")
	assert.Len(t, w.Scene.FindByTag(combat.HostileTag), 3)

	assert.Greater(t, w.Physics.ObjectCount(), 8)
}

func TestArenaWeaponsFollowTuning(t *testing.T) {
	tun := combat.DefaultTuning()
	tun.MeleeDamage = 0.5
	tun.MeleeWindow = 400 * time.Millisecond
	tun.StaffCooldown = 2 * time.Second
	tun.StaffRange = 20
	tun.DestroyOnHit = false
	tun.ProjectileColor = rl.Red

	w := New(combat.NopDeps(), tun)
	require.NoError(t, w.LoadArena())
	w.Start()

	hitbox := engine.GetComponent[*combat.MeleeHitbox](w.Find("Blade"))
	require.NotNil(t, hitbox)
	assert.Equal(t, float32(0.5), hitbox.Resolver.Damage)
	assert.Equal(t, 400*time.Millisecond, engine.GetComponent[*combat.DamageWindowGate](w.Find("Sword")).Duration)

	caster := engine.GetComponent[*combat.SkillCaster](w.Find("Staff"))
	require.NotNil(t, caster)
	assert.Equal(t, 2*time.Second, caster.Cooldown.Duration)
	assert.Equal(t, float32(20), caster.Range)
	assert.False(t, caster.Template.DestroyOnHit)
	assert.Equal(t, rl.Red, caster.Template.Color)
}

func TestLevelWeaponNumbersOverrideTuning(t *testing.T) {
	level := []byte(`{"name": "Custom", "objects": [
		{"name": "Staff", "tags": ["Staff"], "components": [
			{"type": "Rigidbody"},
			{"type": "SkillCaster", "cooldownSeconds": 1.5, "destroyOnHit": false}
		]}
	]}`)
	w := newWorld(t)
	require.NoError(t, w.LoadLevel(level))

	caster := engine.GetComponent[*combat.SkillCaster](w.Find("Staff"))
	require.NotNil(t, caster)
	assert.Equal(t, 1500*time.Millisecond, caster.Cooldown.Duration)
	assert.False(t, caster.Template.DestroyOnHit)
	assert.Equal(t, float32(12), caster.Range, "unset fields keep the tuning value")
}

func TestWorldTickAdvancesClockAndFlushesDestroys(t *testing.T) {
	w := newWorld(t)
	w.Start()

	g := engine.NewGameObject("Spark")
	g.AddComponent(components.NewSphereTrigger(0.1))
	w.SpawnObject(g)
	require.NotNil(t, w.Scene.FindByUID(g.UID))
	assert.Equal(t, 1, w.Physics.ObjectCount())

	w.Destroy(g)
	w.Destroy(g)
	assert.NotNil(t, w.Scene.FindByUID(g.UID), "destroy waits for the end of the tick")

	w.Update(0.5)
	assert.Nil(t, w.Scene.FindByUID(g.UID))
	assert.Zero(t, w.Physics.ObjectCount())
	assert.Equal(t, 500*time.Millisecond, w.Elapsed())
	assert.EqualValues(t, 1, w.Ticks())
}

func TestComponentsShareWorldClock(t *testing.T) {
	w := newWorld(t)
	assert.Same(t, w.Clock(), w.Deps.Clock)

	gate := combat.NewDamageWindowGate(250*time.Millisecond, w.Deps)
	g := engine.NewGameObject("Gate")
	g.AddComponent(gate)
	w.Add(g)
	w.Start()

	gate.Open()
	w.Update(0.2)
	assert.True(t, gate.IsOpen())
	w.Update(0.1)
	assert.False(t, gate.IsOpen())
}

func TestSaveAndReloadLevel(t *testing.T) {
	w := loadArena(t)
	bar := engine.GetComponent[*components.HealthBar](w.Find("GoblinHealth"))
	bar.SetFill(0.4)

	path := filepath.Join(t.TempDir(), "arena.json")
	require.NoError(t, w.SaveLevelFile(path))

	again := newWorld(t)
	require.NoError(t, again.LoadLevelFile(path))
	again.Start()

	assert.Equal(t, len(w.Scene.GameObjects), len(again.Scene.GameObjects))
	for _, g := range w.Scene.GameObjects {
		other := again.Find(g.Name)
		require.NotNil(t, other, g.Name)
		assert.Equal(t, g.Transform.Position, other.Transform.Position, g.Name)
		assert.Equal(t, len(g.Components()), len(other.Components()), g.Name)
		if g.Parent != nil {
			require.NotNil(t, other.Parent, g.Name)
			assert.Equal(t, g.Parent.Name, other.Parent.Name)
		}
	}

	reloaded := engine.GetComponent[*components.HealthBar](again.Find("GoblinHealth"))
	assert.InDelta(t, 0.4, reloaded.Fill(), 1e-6)
	caster := engine.GetComponent[*combat.SkillCaster](again.Find("Staff"))
	assert.Equal(t, "SkillSpawn", caster.SpawnPoint.Name)
	assert.InDelta(t, 0.8, caster.TravelTime.Seconds(), 1e-6)
	assert.False(t, again.Find("Revenant").Active)
}

func TestSaveSkipsRuntimeObjects(t *testing.T) {
	w := loadArena(t)
	player := engine.NewGameObject("Player")
	player.AddComponent(components.NewFPSController())
	hand := engine.NewGameObject("Hand")
	player.AddChild(hand)
	w.Add(player)

	data, err := w.SaveLevel()
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"Player"`)
	assert.NotContains(t, string(data), `"Hand"`)
}

func TestLoadLevelErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":         `{"objects": [`,
		"no name":        `{"objects": [{"position": [0,0,0]}]}`,
		"duplicate":      `{"objects": [{"name": "A"}, {"name": "A"}]}`,
		"unknown parent": `{"objects": [{"name": "A", "parent": "B"}]}`,
		"unknown type":   `{"objects": [{"name": "A", "components": [{"type": "Teleporter"}]}]}`,
		"unknown mesh":   `{"objects": [{"name": "A", "components": [{"type": "MeshRenderer", "mesh": "torus"}]}]}`,
		"dangling ref":   `{"objects": [{"name": "A", "components": [{"type": "SpawnMachine", "enemy": "Ghost"}]}]}`,
		"cycle":          `{"objects": [{"name": "A", "parent": "B"}, {"name": "B", "parent": "A"}]}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			w := newWorld(t)
			assert.Error(t, w.LoadLevel([]byte(src)))
			assert.Empty(t, w.Scene.GameObjects)
		})
	}
}

func TestLoadLevelFileMissing(t *testing.T) {
	w := newWorld(t)
	err := w.LoadLevelFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "read level")
}

func TestFrustumCulling(t *testing.T) {
	cam := rl.Camera3D{
		Position:   rl.Vector3{},
		Target:     rl.Vector3{X: 1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       70,
		Projection: rl.CameraPerspective,
	}
	f := ExtractFrustum(cam, 16.0/9.0)
	assert.True(t, f.ContainsPoint(rl.Vector3{X: 10}))
	assert.False(t, f.ContainsPoint(rl.Vector3{X: -10}))
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 1, Z: 50}))
	assert.True(t, f.ContainsSphere(rl.Vector3{X: -1}, 2))

	ahead := engine.NewGameObject("Ahead")
	ahead.Transform.Position = rl.Vector3{X: 5}
	ahead.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.Red, rl.Vector3{X: 1, Y: 1, Z: 1}))
	behind := engine.NewGameObject("Behind")
	behind.Transform.Position = rl.Vector3{X: -5}
	behind.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.Red, rl.Vector3{X: 1, Y: 1, Z: 1}))
	hidden := engine.NewGameObject("Hidden")
	hidden.Transform.Position = rl.Vector3{X: 5}
	hidden.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.Red, rl.Vector3{X: 1, Y: 1, Z: 1}))
	hidden.Active = false

	visible := VisibleMeshes([]*engine.GameObject{ahead, behind, hidden}, &f)
	require.Len(t, visible, 1)
	assert.Same(t, ahead, visible[0].GetGameObject())
}

func TestPlayerCollisionPushesOutOfStatic(t *testing.T) {
	w := loadArena(t)
	player := engine.NewGameObject("Player")
	col := components.NewBoxCollider(rl.Vector3{X: 0.6, Y: 1.8, Z: 0.6})
	col.Offset = rl.Vector3{Y: 0.9}
	player.AddComponent(col)
	pc := NewPlayerCollision(w.Physics)
	player.AddComponent(pc)
	w.Add(player)

	// Walk into the Goblin's box from the -X side.
	player.Transform.Position = rl.Vector3{X: 7.4, Y: -0.3}
	pc.Update(0)
	assert.Equal(t, float32(0), player.Transform.Position.Y)
	assert.InDelta(t, 7.2, player.Transform.Position.X, 1e-4)
}
