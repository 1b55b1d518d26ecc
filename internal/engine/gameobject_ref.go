package engine

// GameObjectRef is a scene-scoped reference to a GameObject by UID. It stays
// valid across deactivation; Get returns nil once the object leaves the scene.
type GameObjectRef struct {
	UID uint64 // 0 = none
}

func RefTo(g *GameObject) GameObjectRef {
	var r GameObjectRef
	r.Set(g)
	return r
}

// Get resolves the reference against scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid reports whether the reference is non-empty. It does not check that
// the object still exists.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
		return
	}
	r.UID = g.UID
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
