package engine

// Scene holds every GameObject of one loaded scene file. GameObjects is flat:
// children are listed alongside their parents.
type Scene struct {
	Name        string
	Ref         SceneRef
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
}

// RemoveGameObject removes g and its descendants from the scene.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, child := range append([]*GameObject(nil), g.Children...) {
		s.RemoveGameObject(child)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.uidMap, g.UID)
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	g.Scene = nil
}

// RootGameObjects returns the objects without a parent, in insertion order.
func (s *Scene) RootGameObjects() []*GameObject {
	if s == nil {
		return nil
	}
	roots := make([]*GameObject, 0, len(s.GameObjects))
	for _, g := range s.GameObjects {
		if g.Parent == nil {
			roots = append(roots, g)
		}
	}
	return roots
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

// Walk visits every root and its descendants depth first. Returning false
// from fn stops the walk.
func (s *Scene) Walk(fn func(g *GameObject) bool) {
	var visit func(g *GameObject) bool
	visit = func(g *GameObject) bool {
		if !fn(g) {
			return false
		}
		for _, c := range g.Children {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	for _, root := range s.RootGameObjects() {
		if !visit(root) {
			return
		}
	}
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}

// Draw renders every Drawable component of the active objects. An inactive
// object hides its whole subtree.
func (s *Scene) Draw() {
	for _, root := range s.RootGameObjects() {
		drawTree(root)
	}
}

func drawTree(g *GameObject) {
	if !g.IsActive() {
		return
	}
	for _, c := range g.components {
		if d, ok := c.(Drawable); ok {
			d.Draw()
		}
	}
	for _, child := range g.Children {
		drawTree(child)
	}
}
