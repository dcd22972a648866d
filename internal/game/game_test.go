package game

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"helium/internal/config"
	"helium/internal/engine"
	"helium/internal/logging"
	"helium/internal/orchestrator"
)

func newTestGame(t *testing.T, scenes map[string]string) *Game {
	t.Helper()
	dir := t.TempDir()
	for name, content := range scenes {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	cfg := config.Default()
	cfg.Scenes.Dir = dir
	cfg.Scenes.Boot = "boot.json"
	return New(cfg, logging.Discard())
}

func TestRunHeadlessBootsAndStops(t *testing.T) {
	g := newTestGame(t, map[string]string{
		"boot.json": `{"name": "Boot", "objects": [{"name": "ROOT"}]}`,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopped := make(chan error, 1)
	go func() { stopped <- g.RunHeadless(ctx) }()

	deadline := time.Now().Add(3 * time.Second)
	for g.Orchestrator.State("boot.json") != orchestrator.StateActive {
		if time.Now().After(deadline) {
			t.Fatal("boot scene never became active")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-stopped:
		if err != nil {
			t.Fatalf("RunHeadless: %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("RunHeadless did not return")
	}
	if n := len(g.World.LoadedScenes()); n != 0 {
		t.Errorf("shutdown should release every scene, got %d", n)
	}
}

func TestSceneRows(t *testing.T) {
	g := newTestGame(t, map[string]string{
		"boot.json":  `{"name": "Boot"}`,
		"extra.json": `{"name": "Extra"}`,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	go func() {
		for ctx.Err() == nil {
			g.World.Pump()
			time.Sleep(time.Millisecond)
		}
	}()

	for _, ref := range []engine.SceneRef{"boot.json", "extra.json"} {
		if err := g.Orchestrator.LoadScene(ctx, orchestrator.LoadAdditive, ref, nil); err != nil {
			t.Fatalf("load %s: %v", ref, err)
		}
	}

	rows := sceneRows(g.World, g.Orchestrator)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].Active || rows[1].Active {
		t.Errorf("only the first scene should be active: %+v", rows)
	}
	if rows[0].State != orchestrator.StateActive || rows[1].State != orchestrator.StateReady {
		t.Errorf("states = %v, %v", rows[0].State, rows[1].State)
	}
	if got := rows[0].String(); !strings.HasPrefix(got, "* Boot (boot.json) active") {
		t.Errorf("row = %q", got)
	}
}

func TestReloadTarget(t *testing.T) {
	active := engine.NewScene("Menu")
	active.Ref = "menus/main.json"

	tests := []struct {
		name    string
		active  *engine.Scene
		changed engine.SceneRef
		want    bool
	}{
		{"active scene file", active, "menus/main.json", true},
		{"unnormalized path", active, "./menus/main.json", true},
		{"script", active, "scripts/credits.tengo", true},
		{"other scene", active, "levels/one.json", false},
		{"nothing active", nil, "menus/main.json", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reloadTarget(tc.active, tc.changed)
			if ok != tc.want {
				t.Fatalf("reload = %v, want %v", ok, tc.want)
			}
			if ok && got != active.Ref {
				t.Errorf("target = %q", got)
			}
		})
	}
}
