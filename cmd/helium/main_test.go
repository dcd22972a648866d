package main

import (
	"os"
	"path/filepath"
	"testing"

	"helium/internal/config"
)

func TestResolveConfigPathSurvivesChdir(t *testing.T) {
	start := t.TempDir()
	if err := os.WriteFile(filepath.Join(start, "helium.yaml"), []byte("scenes:\n  boot: splash.json\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Chdir(start)

	path, err := resolveConfigPath("helium.yaml")
	if err != nil {
		t.Fatalf("resolveConfigPath: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("path %q should be absolute", path)
	}

	t.Chdir(t.TempDir())
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load after chdir: %v", err)
	}
	if cfg.Scenes.Boot != "splash.json" {
		t.Errorf("boot = %q, want splash.json", cfg.Scenes.Boot)
	}
}

func TestResolveConfigPathEmpty(t *testing.T) {
	path, err := resolveConfigPath("")
	if err != nil || path != "" {
		t.Errorf("resolveConfigPath(\"\") = %q, %v", path, err)
	}
}
