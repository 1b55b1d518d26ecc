package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	World       WorldAccess
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

// AddGameObject registers g and its current descendants with the scene.
func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Walk(func(obj *GameObject) bool {
		if _, exists := s.uidMap[obj.UID]; exists {
			return true
		}
		obj.Scene = s
		s.uidMap[obj.UID] = obj
		s.GameObjects = append(s.GameObjects, obj)
		return true
	})
}

// RemoveGameObject unregisters g together with its descendants.
func (s *Scene) RemoveGameObject(g *GameObject) {
	g.Walk(func(obj *GameObject) bool {
		s.removeOne(obj)
		return true
	})
}

func (s *Scene) removeOne(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.uidMap, g.UID)
	if g.Scene == s {
		g.Scene = nil
	}
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

// Update ticks every object registered at the start of the call. Objects
// spawned during the tick are first updated on the next one.
func (s *Scene) Update(deltaTime float32) {
	snapshot := make([]*GameObject, len(s.GameObjects))
	copy(snapshot, s.GameObjects)
	for _, g := range snapshot {
		g.Update(deltaTime)
	}
}
