package engine

// Props helpers read loosely typed values decoded from scene JSON.

func PropString(props map[string]any, key, fallback string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return fallback
}

func PropFloat(props map[string]any, key string, fallback float32) float32 {
	if v, ok := props[key].(float64); ok {
		return float32(v)
	}
	return fallback
}

func PropInt(props map[string]any, key string, fallback int) int {
	if v, ok := props[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func PropBool(props map[string]any, key string, fallback bool) bool {
	if v, ok := props[key].(bool); ok {
		return v
	}
	return fallback
}

// PropMaps returns the entries of an array-of-objects prop, skipping anything else.
func PropMaps(props map[string]any, key string) []map[string]any {
	raw, ok := props[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// PropColor reads an [r, g, b, a] array.
func PropColor(props map[string]any, key string) ([4]uint8, bool) {
	v, ok := props[key].([]any)
	if !ok || len(v) < 4 {
		return [4]uint8{}, false
	}
	var out [4]uint8
	for i := 0; i < 4; i++ {
		f, ok := v[i].(float64)
		if !ok {
			return [4]uint8{}, false
		}
		out[i] = uint8(f)
	}
	return out, true
}

// PropVec2 reads an [x, y] array.
func PropVec2(props map[string]any, key string) ([2]float32, bool) {
	v, ok := props[key].([]any)
	if !ok || len(v) < 2 {
		return [2]float32{}, false
	}
	var out [2]float32
	for i := 0; i < 2; i++ {
		f, ok := v[i].(float64)
		if !ok {
			return [2]float32{}, false
		}
		out[i] = float32(f)
	}
	return out, true
}
