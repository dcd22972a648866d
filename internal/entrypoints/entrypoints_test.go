package entrypoints

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"helium/internal/components"
	"helium/internal/engine"
	"helium/internal/loading"
	"helium/internal/logging"
	"helium/internal/orchestrator"
	"helium/internal/world"
)

type harness struct {
	dir   string
	world *world.World
	orch  *orchestrator.Orchestrator
	ctx   context.Context
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	dir := t.TempDir()
	logger := logging.Discard().Logger
	reg := engine.NewRegistry()
	components.Register(reg)

	w := world.New(dir, world.WithRegistry(reg), world.WithLogger(logger))
	o := orchestrator.New(w, orchestrator.WithLogger(logger))
	Register(reg, Deps{Orchestrator: o, Logger: logger, Context: ctx})

	go func() {
		for ctx.Err() == nil {
			w.Pump()
			time.Sleep(time.Millisecond)
		}
	}()
	return &harness{dir: dir, world: w, orch: o, ctx: ctx}
}

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// captureLoads reports every scene the world attaches.
func (h *harness) captureLoads() chan *engine.Scene {
	loaded := make(chan *engine.Scene, 16)
	h.world.SceneLoaded.AddListener(func(s *engine.Scene) { loaded <- s })
	return loaded
}

func (h *harness) loadedNames() []string {
	var names []string
	for _, s := range h.world.LoadedScenes() {
		names = append(names, s.Name)
	}
	return names
}

func findLoaded(t *testing.T, loaded chan *engine.Scene, name string) *engine.Scene {
	t.Helper()
	for {
		select {
		case s := <-loaded:
			if s.Name == name {
				return s
			}
		default:
			t.Fatalf("scene %s was never loaded", name)
			return nil
		}
	}
}

const preloadScene = `{"name": "Preload", "objects": [
	{"name": "ENTRY_POINT", "components": [{"type": "PreloadEntryPoint", "props": {"nextScene": "splash.json"}}]},
	{"name": "ROOT", "active": false}
]}`

const splashScene = `{"name": "Splash", "objects": [
	{"name": "ENTRY_POINT", "components": [{"type": "SplashScreenEntryPoint", "props": {
		"homeScene": "home.json",
		"messagesToUse": 3,
		"messages": [{"message": "Reticulating splines", "duration": 1}]
	}}]},
	{"name": "ROOT", "active": false, "children": [
		{"name": "SplashUI", "components": [{"type": "SplashScreenUI"}]},
		{"name": "ProgressText", "components": [{"type": "UIText"}]},
		{"name": "DescriptionText", "components": [{"type": "UIText"}]},
		{"name": "ProgressBar", "components": [{"type": "UIProgressBar"}]}
	]}
]}`

const homeScene = `{"name": "Home", "objects": [
	{"name": "ENTRY_POINT", "components": [{"type": "MenuEntryPoint", "props": {
		"buttons": [{"object": "Play", "scene": "levels/one.json"}, {"object": "Ghost", "scene": "levels/one.json"}]
	}}]},
	{"name": "ROOT", "active": false, "children": [
		{"name": "Play", "components": [{"type": "UIButton", "props": {"label": "Play"}}]}
	]}
]}`

const levelScene = `{"name": "One", "objects": [{"name": "ROOT"}]}`

func TestBootChain(t *testing.T) {
	h := newHarness(t)
	h.write(t, "preload.json", preloadScene)
	h.write(t, "splash.json", splashScene)
	h.write(t, "home.json", homeScene)
	loaded := h.captureLoads()

	if err := h.orch.LoadScene(h.ctx, orchestrator.LoadSingle, "preload.json", nil); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if err := h.orch.WaitUnloads(h.ctx); err != nil {
		t.Fatalf("WaitUnloads: %v", err)
	}

	if names := h.loadedNames(); len(names) != 1 || names[0] != "Home" {
		t.Fatalf("loaded = %v, want [Home]", names)
	}
	if got := h.orch.State("home.json"); got != orchestrator.StateActive {
		t.Errorf("home state = %v, want active", got)
	}
	home := h.world.ActiveScene()
	if home == nil || !home.FindByName("ROOT").IsActive() {
		t.Error("home ROOT should be active")
	}

	splash := findLoaded(t, loaded, "Splash")
	if got := engine.GetComponent[*components.UIText](splash.FindByName("ProgressText")).Text(); got != "100.00%" {
		t.Errorf("progress text = %q", got)
	}
	if got := engine.GetComponent[*components.UIText](splash.FindByName("DescriptionText")).Text(); got != "Reticulating splines" {
		t.Errorf("description = %q", got)
	}
	if got := engine.GetComponent[*components.UIProgressBar](splash.FindByName("ProgressBar")).GetPercent(); got != 1 {
		t.Errorf("progress bar = %v", got)
	}
}

func TestSplashWithoutSimulatedLoad(t *testing.T) {
	h := newHarness(t)
	h.write(t, "splash.json", `{"name": "Splash", "objects": [
		{"name": "ENTRY_POINT", "components": [{"type": "SplashScreenEntryPoint", "props": {
			"homeScene": "level.json",
			"useSimulatedLoad": false,
			"messages": [{"message": "never shown", "duration": 5000}]
		}}]}
	]}`)
	h.write(t, "level.json", levelScene)

	start := time.Now()
	if err := h.orch.LoadScene(h.ctx, orchestrator.LoadSingle, "splash.json", nil); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if time.Since(start) > 4*time.Second {
		t.Error("simulated steps should be skipped")
	}
	if err := h.orch.WaitUnloads(h.ctx); err != nil {
		t.Fatalf("WaitUnloads: %v", err)
	}
	if names := h.loadedNames(); len(names) != 1 || names[0] != "One" {
		t.Fatalf("loaded = %v, want [One]", names)
	}
}

func TestSimulatedBatchPicksMessages(t *testing.T) {
	s := &SplashScreenEntryPoint{
		MessagesToUse: 4,
		Messages: []LoadingMessage{
			{Message: "a", Duration: time.Millisecond},
			{Message: "b", Duration: time.Millisecond},
		},
	}
	var picks int
	s.pick = func(n int) int {
		picks++
		return picks % n
	}

	var descriptions []string
	err := s.simulatedBatch().Process(context.Background(), func(p loading.Progress) {
		if p.Description != "" {
			descriptions = append(descriptions, p.Description)
		}
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := strings.Join(descriptions, ""); got != "baba" {
		t.Errorf("descriptions = %q, want baba", got)
	}
}

func TestMessageDuration(t *testing.T) {
	tests := []struct {
		ms   int
		want time.Duration
	}{
		{0, 500 * time.Millisecond},
		{-10, 500 * time.Millisecond},
		{250, 250 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := messageDuration(tc.ms); got != tc.want {
			t.Errorf("messageDuration(%d) = %v, want %v", tc.ms, got, tc.want)
		}
	}
}

func TestMenuClickLoadsScene(t *testing.T) {
	h := newHarness(t)
	h.write(t, "home.json", homeScene)
	h.write(t, "levels/one.json", levelScene)

	var levelLoads atomic.Int32
	h.world.SceneLoaded.AddListener(func(s *engine.Scene) {
		if s.Name == "One" {
			levelLoads.Add(1)
		}
	})

	menu, ok, err := orchestrator.LoadSceneAs[*MenuEntryPoint](h.ctx, h.orch, orchestrator.LoadSingle, "home.json", nil)
	if err != nil || !ok {
		t.Fatalf("LoadSceneAs = %v, %v", ok, err)
	}
	btn := engine.GetComponent[*components.UIButton](h.world.ActiveScene().FindByName("Play"))
	if btn.OnClick.GetListenerCount() != 1 {
		t.Fatalf("expected one click listener, got %d", btn.OnClick.GetListenerCount())
	}

	btn.OnClick.Invoke()
	btn.OnClick.Invoke()
	menu.Wait()
	if err := h.orch.WaitUnloads(h.ctx); err != nil {
		t.Fatalf("WaitUnloads: %v", err)
	}

	if names := h.loadedNames(); len(names) != 1 || names[0] != "One" {
		t.Fatalf("loaded = %v, want [One]", names)
	}
	if n := levelLoads.Load(); n != 1 {
		t.Errorf("a click during a transition should be ignored, got %d loads", n)
	}
	if n := btn.OnClick.GetListenerCount(); n != 0 {
		t.Errorf("exit should remove click listeners, got %d", n)
	}
}

func TestMenuRequiresButtonFields(t *testing.T) {
	_, err := newMenu(Deps{}, map[string]any{
		"buttons": []any{map[string]any{"object": "Play"}},
	})
	if err == nil {
		t.Fatal("expected an error for a button without scene")
	}
}

func TestRequiredProps(t *testing.T) {
	reg := engine.NewRegistry()
	Register(reg, Deps{})

	for _, name := range []string{"PreloadEntryPoint", "SplashScreenEntryPoint", "ScriptedEntryPoint"} {
		t.Run(name, func(t *testing.T) {
			c, ok, err := reg.Create(name, nil)
			if !ok {
				t.Fatal("factory not registered")
			}
			if err == nil || c != nil {
				t.Fatalf("expected an error without props, got %v, %v", c, err)
			}
		})
	}

	c, _, err := reg.Create("MenuEntryPoint", nil)
	if err != nil {
		t.Fatalf("menu without buttons: %v", err)
	}
	if _, ok := c.(orchestrator.EntryPoint); !ok {
		t.Error("menu should be an entry point")
	}
}

const creditsScript = `
hooks := {
	enter: func(engine) {
		engine.add_step("Counting", 1)
		engine.log("entering", engine.scene)
	},
	ready: func(engine) {
		engine.set_text("Title", "Scene " + engine.scene)
		engine.load_scene("end.json")
	},
	exit: func(engine) {
		engine.set_active("Title", false)
	},
}
`

func scriptedScene(name, script string) string {
	return `{"name": "` + name + `", "objects": [
		{"name": "ENTRY_POINT", "components": [{"type": "ScriptedEntryPoint", "props": {"script": ` + strconv.Quote(script) + `}}]},
		{"name": "ROOT", "active": false, "children": [
			{"name": "Title", "components": [{"type": "UIText"}]}
		]}
	]}`
}

func TestScriptedEntryPoint(t *testing.T) {
	h := newHarness(t)
	script := h.write(t, "scripts/credits.tengo", creditsScript)
	h.write(t, "credits.json", scriptedScene("Credits", script))
	h.write(t, "end.json", `{"name": "End"}`)
	loaded := h.captureLoads()

	var events []loading.Progress
	progress := func(p loading.Progress) { events = append(events, p) }
	if err := h.orch.LoadScene(h.ctx, orchestrator.LoadSingle, "credits.json", progress); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if err := h.orch.WaitUnloads(h.ctx); err != nil {
		t.Fatalf("WaitUnloads: %v", err)
	}

	want := []loading.Progress{{Progress: 0}, {Progress: 1, Description: "Counting"}}
	if len(events) != len(want) || events[0] != want[0] || events[1] != want[1] {
		t.Errorf("progress = %+v, want %+v", events, want)
	}
	if names := h.loadedNames(); len(names) != 1 || names[0] != "End" {
		t.Fatalf("loaded = %v, want [End]", names)
	}

	credits := findLoaded(t, loaded, "Credits")
	title := credits.FindByName("Title")
	if got := engine.GetComponent[*components.UIText](title).Text(); got != "Scene Credits" {
		t.Errorf("title = %q", got)
	}
	if title.IsActive() {
		t.Error("exit hook should deactivate the title")
	}
}

func TestScriptedEntryPointErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"no hooks", `x := 1`},
		{"runtime error", `hooks := {enter: func(engine) { return 1 / 0 }}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			script := h.write(t, "broken.tengo", tc.script)
			h.write(t, "broken.json", scriptedScene("Broken", script))

			err := h.orch.LoadScene(h.ctx, orchestrator.LoadSingle, "broken.json", nil)
			if err == nil || !strings.Contains(err.Error(), "broken.tengo") {
				t.Fatalf("expected a script error, got %v", err)
			}
		})
	}
}

func TestScriptedMissingHookIsSkipped(t *testing.T) {
	h := newHarness(t)
	script := h.write(t, "quiet.tengo", `hooks := {}`)
	h.write(t, "quiet.json", scriptedScene("Quiet", script))

	if err := h.orch.LoadScene(h.ctx, orchestrator.LoadSingle, "quiet.json", nil); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if got := h.orch.State("quiet.json"); got != orchestrator.StateActive {
		t.Errorf("state = %v, want active", got)
	}
}

func TestShippedScenesUseRegisteredComponents(t *testing.T) {
	reg := engine.NewRegistry()
	components.Register(reg)
	Register(reg, Deps{})

	var check func(t *testing.T, objects []world.ObjectDef)
	check = func(t *testing.T, objects []world.ObjectDef) {
		for _, obj := range objects {
			for _, c := range obj.Components {
				if _, ok, err := reg.Create(c.Type, c.Props); !ok || err != nil {
					t.Errorf("%s: component %s: registered=%v err=%v", obj.Name, c.Type, ok, err)
				}
			}
			check(t, obj.Children)
		}
	}

	root := filepath.Join("..", "..", "assets", "scenes")
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return err
		}
		t.Run(filepath.ToSlash(path), func(t *testing.T) {
			sf, err := world.ReadSceneFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			check(t, sf.Objects)
		})
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}
