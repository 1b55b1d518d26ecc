package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"edgeofdark/internal/combat"
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type LevelFile struct {
	Name    string      `json:"name,omitempty"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name       string            `json:"name"`
	Tags       []string          `json:"tags,omitempty"`
	Layer      int               `json:"layer,omitempty"`
	Parent     string            `json:"parent,omitempty"`
	Inactive   bool              `json:"inactive,omitempty"`
	Position   [3]float32        `json:"position"`
	Rotation   [3]float32        `json:"rotation"`
	Scale      [3]float32        `json:"scale"`
	Components []json.RawMessage `json:"components,omitempty"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type meshRendererDef struct {
	Type  string     `json:"type"`
	Mesh  string     `json:"mesh"`
	Size  [3]float32 `json:"size"`
	Color string     `json:"color"`
}

type boxColliderDef struct {
	Type      string     `json:"type"`
	Size      [3]float32 `json:"size"`
	Offset    [3]float32 `json:"offset,omitempty"`
	IsTrigger bool       `json:"isTrigger,omitempty"`
}

type sphereColliderDef struct {
	Type      string     `json:"type"`
	Radius    float32    `json:"radius"`
	Offset    [3]float32 `json:"offset,omitempty"`
	IsTrigger bool       `json:"isTrigger,omitempty"`
}

type rigidbodyDef struct {
	Type        string  `json:"type"`
	Mass        float32 `json:"mass,omitempty"`
	Bounciness  float32 `json:"bounciness,omitempty"`
	Friction    float32 `json:"friction,omitempty"`
	UseGravity  *bool   `json:"useGravity,omitempty"`
	IsKinematic bool    `json:"isKinematic,omitempty"`
}

type healthBarDef struct {
	Type  string   `json:"type"`
	Fill  *float32 `json:"fill,omitempty"`
	Width float32  `json:"width,omitempty"`
}

type gateDef struct {
	Type          string  `json:"type"`
	WindowSeconds float64 `json:"windowSeconds,omitempty"`
}

type meleeHitboxDef struct {
	Type          string  `json:"type"`
	Damage        float32 `json:"damage,omitempty"`
	CloseOnLethal bool    `json:"closeOnLethal,omitempty"`
}

type skillCasterDef struct {
	Type             string  `json:"type"`
	SpawnPoint       string  `json:"spawnPoint"`
	Damage           float32 `json:"damage,omitempty"`
	Range            float32 `json:"range,omitempty"`
	TravelTime       float64 `json:"travelTime,omitempty"`
	CooldownSeconds  float64 `json:"cooldownSeconds,omitempty"`
	DestroyOnHit     *bool   `json:"destroyOnHit,omitempty"`
	ProjectileRadius float32 `json:"projectileRadius,omitempty"`
	ProjectileColor  string  `json:"projectileColor,omitempty"`
}

type spawnMachineDef struct {
	Type  string `json:"type"`
	Enemy string `json:"enemy"`
}

var meshByName = map[string]components.MeshType{
	"cube":   components.MeshCube,
	"sphere": components.MeshSphere,
	"plane":  components.MeshPlane,
}

func meshName(t components.MeshType) string {
	for name, m := range meshByName {
		if m == t {
			return name
		}
	}
	return "cube"
}

func vec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func arr(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func seconds(s float64, fallback time.Duration) time.Duration {
	if s <= 0 {
		return fallback
	}
	return time.Duration(math.Round(s * float64(time.Second)))
}

func orDefault(v, fallback float32) float32 {
	if v <= 0 {
		return fallback
	}
	return v
}

// --- Loading ---

// link is a name reference resolved once every object exists.
type link struct {
	owner *engine.GameObject
	name  string
	bind  func(target *engine.GameObject)
}

type loader struct {
	w      *World
	byName map[string]*engine.GameObject
	links  []link
}

// LoadLevelFile reads a level from disk into the world.
func (w *World) LoadLevelFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read level: %w", err)
	}
	return w.LoadLevel(data)
}

// LoadLevel decodes a level and adds its objects to the world. Parents and
// component references resolve by object name.
func (w *World) LoadLevel(data []byte) error {
	var lf LevelFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return fmt.Errorf("parse level: %w", err)
	}

	l := &loader{w: w, byName: make(map[string]*engine.GameObject, len(lf.Objects))}
	objects := make([]*engine.GameObject, 0, len(lf.Objects))
	for _, def := range lf.Objects {
		if def.Name == "" {
			return errors.New("parse level: object without a name")
		}
		if _, dup := l.byName[def.Name]; dup {
			return fmt.Errorf("parse level: duplicate object %q", def.Name)
		}
		g, err := l.object(def)
		if err != nil {
			return err
		}
		l.byName[def.Name] = g
		objects = append(objects, g)
	}

	for i, def := range lf.Objects {
		if def.Parent == "" {
			continue
		}
		parent, ok := l.byName[def.Parent]
		if !ok {
			return fmt.Errorf("object %q: unknown parent %q", def.Name, def.Parent)
		}
		if parent == objects[i] || parent.IsDescendantOf(objects[i]) {
			return fmt.Errorf("object %q: parent cycle through %q", def.Name, def.Parent)
		}
		parent.AddChild(objects[i])
	}

	for _, lk := range l.links {
		target, ok := l.byName[lk.name]
		if !ok {
			return fmt.Errorf("object %q: unknown reference %q", lk.owner.Name, lk.name)
		}
		lk.bind(target)
	}

	for i, g := range objects {
		if lf.Objects[i].Inactive {
			g.Active = false
		}
	}
	for _, g := range objects {
		if g.Parent == nil {
			w.Add(g)
		}
	}
	w.Log.Info().Str("level", lf.Name).Int("objects", len(objects)).Msg("level loaded")
	return nil
}

func (l *loader) object(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	g.Layer = def.Layer
	g.Transform.Position = vec(def.Position)
	g.Transform.Rotation = vec(def.Rotation)
	if def.Scale == [3]float32{} {
		g.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	} else {
		g.Transform.Scale = vec(def.Scale)
	}

	for _, raw := range def.Components {
		var header componentHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("object %q: component header: %w", def.Name, err)
		}
		if err := l.component(g, header.Type, raw); err != nil {
			return nil, fmt.Errorf("object %q: %s: %w", def.Name, header.Type, err)
		}
	}
	return g, nil
}

func (l *loader) component(g *engine.GameObject, kind string, raw json.RawMessage) error {
	deps, tun := l.w.Deps, l.w.Tuning
	switch kind {
	case "MeshRenderer":
		var def meshRendererDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		mesh, ok := meshByName[def.Mesh]
		if !ok {
			return fmt.Errorf("unknown mesh %q", def.Mesh)
		}
		color, _ := components.ParseColor(def.Color)
		g.AddComponent(components.NewMeshRenderer(mesh, color, vec(def.Size)))

	case "BoxCollider":
		var def boxColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		col := components.NewBoxCollider(vec(def.Size))
		col.Offset = vec(def.Offset)
		col.IsTrigger = def.IsTrigger
		g.AddComponent(col)

	case "SphereCollider":
		var def sphereColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		col := components.NewSphereCollider(def.Radius)
		col.Offset = vec(def.Offset)
		col.IsTrigger = def.IsTrigger
		g.AddComponent(col)

	case "Rigidbody":
		var def rigidbodyDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		rb := components.NewRigidbody()
		if def.Mass > 0 {
			rb.Mass = def.Mass
		}
		if def.Bounciness > 0 {
			rb.Bounciness = def.Bounciness
		}
		if def.Friction > 0 {
			rb.Friction = def.Friction
		}
		if def.UseGravity != nil {
			rb.UseGravity = *def.UseGravity
		}
		rb.IsKinematic = def.IsKinematic
		g.AddComponent(rb)

	case "HealthBar":
		var def healthBarDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		bar := components.NewHealthBar()
		if def.Fill != nil {
			bar.SetFill(*def.Fill)
		}
		if def.Width > 0 {
			bar.Width = def.Width
		}
		g.AddComponent(bar)

	case "DamageWindowGate":
		var def gateDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		g.AddComponent(combat.NewDamageWindowGate(seconds(def.WindowSeconds, tun.MeleeWindow), deps))

	case "MeleeHitbox":
		var def meleeHitboxDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		hb := combat.NewMeleeHitbox(combat.NewHitResolver(orDefault(def.Damage, tun.MeleeDamage), "melee", deps))
		hb.CloseOnLethal = def.CloseOnLethal || tun.CloseOnLethal
		g.AddComponent(hb)

	case "SkillCaster":
		var def skillCasterDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		caster := combat.NewSkillCaster(nil, deps)
		tun.Apply(caster)
		caster.Range = orDefault(def.Range, caster.Range)
		caster.TravelTime = seconds(def.TravelTime, caster.TravelTime)
		caster.Cooldown.Duration = seconds(def.CooldownSeconds, caster.Cooldown.Duration)
		caster.Template.Damage = orDefault(def.Damage, caster.Template.Damage)
		caster.Template.Radius = orDefault(def.ProjectileRadius, caster.Template.Radius)
		if def.DestroyOnHit != nil {
			caster.Template.DestroyOnHit = *def.DestroyOnHit
		}
		if c, ok := components.ParseColor(def.ProjectileColor); ok {
			caster.Template.Color = c
		}
		if def.SpawnPoint != "" {
			l.links = append(l.links, link{owner: g, name: def.SpawnPoint, bind: func(t *engine.GameObject) {
				caster.SpawnPoint = t
			}})
		}
		g.AddComponent(caster)

	case "SpawnMachine":
		var def spawnMachineDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		machine := combat.NewSpawnMachine(nil, deps.Log)
		if def.Enemy != "" {
			l.links = append(l.links, link{owner: g, name: def.Enemy, bind: machine.SetEnemy})
		}
		g.AddComponent(machine)

	default:
		return errors.New("unknown component type")
	}
	return nil
}

// --- Saving ---

// SaveLevelFile writes the world's level objects to path.
func (w *World) SaveLevelFile(path string) error {
	data, err := w.SaveLevel()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write level: %w", err)
	}
	return nil
}

// SaveLevel encodes every level object. Runtime objects (the player rig and
// projectiles in flight) are skipped along with their descendants.
func (w *World) SaveLevel() ([]byte, error) {
	lf := LevelFile{Name: w.Scene.Name}
	for _, g := range w.Scene.GameObjects {
		if isRuntime(g) {
			continue
		}
		def := ObjectDef{
			Name:     g.Name,
			Tags:     g.Tags,
			Layer:    g.Layer,
			Inactive: !g.Active,
			Position: arr(g.Transform.Position),
			Rotation: arr(g.Transform.Rotation),
			Scale:    arr(g.Transform.Scale),
		}
		if g.Parent != nil {
			def.Parent = g.Parent.Name
		}
		for _, c := range g.Components() {
			raw, err := serializeComponent(c)
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", g.Name, err)
			}
			if raw != nil {
				def.Components = append(def.Components, raw)
			}
		}
		lf.Objects = append(lf.Objects, def)
	}

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal level: %w", err)
	}
	return data, nil
}

func isRuntime(g *engine.GameObject) bool {
	for cur := g; cur != nil; cur = cur.Parent {
		if engine.GetComponent[*components.FPSController](cur) != nil {
			return true
		}
		if engine.GetComponent[*combat.Projectile](cur) != nil {
			return true
		}
	}
	return false
}

func serializeComponent(c engine.Component) (json.RawMessage, error) {
	var def any

	switch comp := c.(type) {
	case *components.MeshRenderer:
		def = meshRendererDef{
			Type:  "MeshRenderer",
			Mesh:  meshName(comp.MeshType),
			Size:  arr(comp.Size),
			Color: components.ColorName(comp.Color),
		}

	case *components.BoxCollider:
		def = boxColliderDef{
			Type:      "BoxCollider",
			Size:      arr(comp.Size),
			Offset:    arr(comp.Offset),
			IsTrigger: comp.IsTrigger,
		}

	case *components.SphereCollider:
		def = sphereColliderDef{
			Type:      "SphereCollider",
			Radius:    comp.Radius,
			Offset:    arr(comp.Offset),
			IsTrigger: comp.IsTrigger,
		}

	case *components.Rigidbody:
		useGravity := comp.UseGravity
		def = rigidbodyDef{
			Type:        "Rigidbody",
			Mass:        comp.Mass,
			Bounciness:  comp.Bounciness,
			Friction:    comp.Friction,
			UseGravity:  &useGravity,
			IsKinematic: comp.IsKinematic,
		}

	case *components.HealthBar:
		fill := comp.Fill()
		def = healthBarDef{Type: "HealthBar", Fill: &fill, Width: comp.Width}

	case *combat.DamageWindowGate:
		def = gateDef{Type: "DamageWindowGate", WindowSeconds: comp.Duration.Seconds()}

	case *combat.MeleeHitbox:
		d := meleeHitboxDef{Type: "MeleeHitbox", CloseOnLethal: comp.CloseOnLethal}
		if comp.Resolver != nil {
			d.Damage = comp.Resolver.Damage
		}
		def = d

	case *combat.SkillCaster:
		d := skillCasterDef{
			Type:            "SkillCaster",
			Range:           comp.Range,
			TravelTime:      comp.TravelTime.Seconds(),
			CooldownSeconds: comp.Cooldown.Duration.Seconds(),
		}
		if comp.SpawnPoint != nil {
			d.SpawnPoint = comp.SpawnPoint.Name
		}
		if tpl := comp.Template; tpl != nil {
			destroy := tpl.DestroyOnHit
			d.Damage = tpl.Damage
			d.ProjectileRadius = tpl.Radius
			d.DestroyOnHit = &destroy
			d.ProjectileColor = components.ColorName(tpl.Color)
		}
		def = d

	case *combat.SpawnMachine:
		d := spawnMachineDef{Type: "SpawnMachine"}
		if g := comp.GetGameObject(); g != nil && g.Scene != nil {
			if enemy := comp.Enemy.Get(g.Scene); enemy != nil {
				d.Enemy = enemy.Name
			}
		}
		def = d

	default:
		return nil, nil
	}

	data, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", c, err)
	}
	return data, nil
}
