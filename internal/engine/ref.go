package engine

import (
	"path"
	"strings"
)

// SceneRef addresses a scene file relative to the scenes directory,
// e.g. "levels/dan.json". Refs are compared as cleaned slash paths.
type SceneRef string

func (r SceneRef) String() string {
	return string(r)
}

// Clean normalizes separators and drops leading "./" so equal paths compare equal.
func (r SceneRef) Clean() SceneRef {
	s := strings.ReplaceAll(string(r), "\\", "/")
	if s == "" {
		return ""
	}
	return SceneRef(strings.TrimPrefix(path.Clean(s), "/"))
}

// Name is the file name without directory or extension.
func (r SceneRef) Name() string {
	base := path.Base(string(r.Clean()))
	return strings.TrimSuffix(base, path.Ext(base))
}

func (r SceneRef) IsZero() bool {
	return r == ""
}
