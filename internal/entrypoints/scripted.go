package entrypoints

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"helium/internal/components"
	"helium/internal/engine"
	"helium/internal/loading"
	"helium/internal/orchestrator"
)

// hookDispatchScript is appended to every script. It calls the hook named by
// __phase when the script's hooks map defines it.
const hookDispatchScript = `
__hook := hooks[__phase]
if is_callable(__hook) {
	__hook(__engine)
}
`

// ScriptedEntryPoint runs the lifecycle hooks defined by a tengo script.
type ScriptedEntryPoint struct {
	orchestrator.BaseEntryPoint
	Script string

	orch   *orchestrator.Orchestrator
	logger *slog.Logger

	compiled    *tengo.Compiled
	pendingLoad engine.SceneRef
}

func newScripted(deps Deps, props map[string]any) (*ScriptedEntryPoint, error) {
	path := engine.PropString(props, "script", "")
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("script is required")
	}
	return &ScriptedEntryPoint{
		BaseEntryPoint: baseFromProps(props),
		Script:         path,
		orch:           deps.Orchestrator,
		logger:         deps.Logger,
	}, nil
}

func (s *ScriptedEntryPoint) OnSceneEnter(ctx context.Context, batch *loading.Batch) error {
	return s.run(ctx, "enter", batch)
}

func (s *ScriptedEntryPoint) OnReady(ctx context.Context) error {
	if err := s.BaseEntryPoint.OnReady(ctx); err != nil {
		return err
	}
	return s.run(ctx, "ready", nil)
}

func (s *ScriptedEntryPoint) OnSceneExit(ctx context.Context) error {
	return s.run(ctx, "exit", nil)
}

func (s *ScriptedEntryPoint) OnActivate(ctx context.Context) error {
	return s.run(ctx, "activate", nil)
}

func (s *ScriptedEntryPoint) OnDeactivate(ctx context.Context) error {
	return s.run(ctx, "deactivate", nil)
}

func (s *ScriptedEntryPoint) compile() error {
	if s.compiled != nil {
		return nil
	}
	src, err := os.ReadFile(s.Script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + hookDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("compile %s: %w", s.Script, err)
	}
	s.compiled = compiled
	return nil
}

// run calls one hook. A scene load requested by the hook starts after the
// script returned.
func (s *ScriptedEntryPoint) run(ctx context.Context, phase string, batch *loading.Batch) error {
	if err := s.compile(); err != nil {
		return err
	}
	s.pendingLoad = ""
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", s.engineFor(batch)); err != nil {
		return err
	}
	if err := s.compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("%s %s: %w", s.Script, phase, err)
	}

	if ref := s.pendingLoad; !ref.IsZero() {
		s.pendingLoad = ""
		return s.orch.LoadScene(ctx, orchestrator.LoadSingle, ref, nil)
	}
	return nil
}

func (s *ScriptedEntryPoint) engineFor(batch *loading.Batch) *tengo.ImmutableMap {
	scene := s.Scene()
	sceneName := ""
	if scene != nil {
		sceneName = scene.Name
	}

	find := func(name string) *engine.GameObject {
		if scene == nil {
			return nil
		}
		return scene.FindByName(name)
	}

	values := map[string]tengo.Object{}
	values["scene"] = &tengo.String{Value: sceneName}

	values["add_step"] = &tengo.UserFunction{Name: "add_step", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if batch == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		ms, ok := tengo.ToInt(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		d := time.Duration(ms) * time.Millisecond
		err := batch.AddAsync(func(ctx context.Context) error {
			return sleep(ctx, d)
		}, objectAsString(args[0]))
		if err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["set_text"] = &tengo.UserFunction{Name: "set_text", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		text := engine.GetComponent[*components.UIText](find(objectAsString(args[0])))
		if text == nil {
			return tengo.FalseValue, nil
		}
		text.SetText(objectAsString(args[1]))
		return tengo.TrueValue, nil
	}}

	values["set_active"] = &tengo.UserFunction{Name: "set_active", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		g := find(objectAsString(args[0]))
		if g == nil {
			return tengo.FalseValue, nil
		}
		g.SetActive(!args[1].IsFalsy())
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.logger.Info(strings.Join(parts, " "), "scene", sceneName, "script", s.Script)
		return tengo.UndefinedValue, nil
	}}

	values["load_scene"] = &tengo.UserFunction{Name: "load_scene", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		ref := engine.SceneRef(strings.TrimSpace(objectAsString(args[0])))
		if ref.IsZero() {
			return tengo.FalseValue, nil
		}
		s.pendingLoad = ref
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
