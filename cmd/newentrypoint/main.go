// Command newentrypoint scaffolds a scene driven by a scripted entry point:
// a scene file with ENTRY_POINT and ROOT objects plus a tengo script that
// stubs every lifecycle hook.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"
)

const sceneTmpl = `{
  "name": "{{.Name}}",
  "objects": [
    {
      "name": "ENTRY_POINT",
      "components": [
        {"type": "ScriptedEntryPoint", "props": {"script": "{{.Script}}"}}
      ]
    },
    {
      "name": "ROOT",
      "active": false,
      "components": [{"type": "UICanvas"}],
      "children": [
        {
          "name": "Title",
          "components": [
            {"type": "RectTransform", "props": {"anchor": "middle-center", "size": [600, 60]}},
            {"type": "UIText", "props": {"text": "{{.Name}}", "fontSize": 40, "alignment": "center"}}
          ]
        }
      ]
    }
  ]
}
`

const scriptTmpl = `// Lifecycle hooks for the {{.Name}} scene. Every hook is optional.
hooks := {
	enter: func(engine) {
		engine.add_step("Preparing {{.Name}}", 100)
	},
	ready: func(engine) {
		engine.log("{{.Name}} ready")
	},
	exit: func(engine) {},
	activate: func(engine) {},
	deactivate: func(engine) {},
}
`

func main() {
	dir := flag.String("dir", "assets/scenes", "scenes directory")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: go run ./cmd/newentrypoint [-dir assets/scenes] <SceneName>\n")
		fmt.Fprintf(os.Stderr, "Example: go run ./cmd/newentrypoint Credits\n")
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	created, err := scaffold(*dir, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, p := range created {
		fmt.Printf("Created %s\n", p)
	}
	fmt.Printf("Load it with the scene ref %q\n", toSnakeCase(flag.Arg(0))+".json")
}

// scaffold writes the scene file and its script below dir and returns their paths.
func scaffold(dir, name string) ([]string, error) {
	if name == "" || !unicode.IsUpper(rune(name[0])) {
		return nil, errors.New("scene name must start with an uppercase letter")
	}

	base := toSnakeCase(name)
	scenePath := filepath.Join(dir, base+".json")
	scriptPath := filepath.Join(dir, "scripts", base+".tengo")
	for _, p := range []string{scenePath, scriptPath} {
		if _, err := os.Stat(p); err == nil {
			return nil, fmt.Errorf("%s already exists", p)
		}
	}

	// Script paths in scene files are relative to the working directory.
	scriptRef := path.Join(filepath.ToSlash(dir), "scripts", base+".tengo")
	files := map[string]string{
		scenePath:  render(sceneTmpl, name, scriptRef),
		scriptPath: render(scriptTmpl, name, scriptRef),
	}
	if err := os.MkdirAll(filepath.Dir(scriptPath), 0o755); err != nil {
		return nil, err
	}
	for p, content := range files {
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p, err)
		}
	}
	return []string{scenePath, scriptPath}, nil
}

func render(tmpl, name, script string) string {
	content := strings.ReplaceAll(tmpl, "{{.Name}}", name)
	return strings.ReplaceAll(content, "{{.Script}}", script)
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}
