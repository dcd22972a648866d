package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/engine"
)

// ErrSceneFile is wrapped by every failure to read or parse a scene file.
var ErrSceneFile = errors.New("world: invalid scene file")

// --- JSON types ---

type SceneFile struct {
	Name    string      `json:"name"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name       string         `json:"name"`
	Tags       []string       `json:"tags,omitempty"`
	Active     *bool          `json:"active,omitempty"`
	Position   [3]float32     `json:"position"`
	Rotation   [3]float32     `json:"rotation"`
	Scale      [3]float32     `json:"scale"`
	Children   []ObjectDef    `json:"children,omitempty"`
	Components []ComponentDef `json:"components,omitempty"`
}

// ComponentDef names a registered component factory. "Script" components
// are looked up by Name instead of Type.
type ComponentDef struct {
	Type  string         `json:"type"`
	Name  string         `json:"name,omitempty"`
	Props map[string]any `json:"props,omitempty"`
}

func (d ComponentDef) factoryName() string {
	if d.Type == "Script" {
		return d.Name
	}
	return d.Type
}

// --- Loading ---

// ReadSceneFile reads and parses the scene file at path.
func ReadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrSceneFile, path, err)
	}
	return ParseSceneFile(data)
}

func ParseSceneFile(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrSceneFile, err)
	}
	return &sf, nil
}

// scenePath resolves ref inside the scenes directory.
func (w *World) scenePath(ref engine.SceneRef) string {
	return filepath.Join(w.dir, filepath.FromSlash(string(ref)))
}

// buildScene instantiates the objects of sf. Components whose factory is
// unknown or fails are logged and skipped.
func (w *World) buildScene(ref engine.SceneRef, sf *SceneFile) *engine.Scene {
	name := sf.Name
	if name == "" {
		name = ref.Name()
	}
	scene := engine.NewScene(name)
	scene.Ref = ref
	for _, def := range sf.Objects {
		w.buildObject(scene, nil, def)
	}
	return scene
}

func (w *World) buildObject(scene *engine.Scene, parent *engine.GameObject, def ObjectDef) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	if def.Active != nil {
		g.SetActive(*def.Active)
	}
	g.Transform.Position = rl.Vector3{X: def.Position[0], Y: def.Position[1], Z: def.Position[2]}
	g.Transform.Rotation = rl.Vector3{X: def.Rotation[0], Y: def.Rotation[1], Z: def.Rotation[2]}

	// Default scale to 1 if zero
	if def.Scale == [3]float32{} {
		g.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	} else {
		g.Transform.Scale = rl.Vector3{X: def.Scale[0], Y: def.Scale[1], Z: def.Scale[2]}
	}

	for _, cdef := range def.Components {
		name := cdef.factoryName()
		comp, ok, err := w.registry.Create(name, cdef.Props)
		switch {
		case !ok:
			w.logger.Warn("unknown component", "scene", scene.Name, "object", def.Name, "type", name)
			continue
		case err != nil:
			w.logger.Error("component failed", "scene", scene.Name, "object", def.Name, "type", name, "error", err)
			continue
		}
		g.AddComponent(comp)
	}

	if parent != nil {
		parent.AddChild(g)
	}
	scene.AddGameObject(g)

	for _, child := range def.Children {
		w.buildObject(scene, g, child)
	}
}
