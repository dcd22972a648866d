package orchestrator

// SceneState is the lifecycle position of one loaded scene instance.
type SceneState int

const (
	StateUnloaded SceneState = iota
	StateLoading
	StateEntered
	StateReady
	StateActive
	StateInactive
	StateExiting
)

var sceneStateNames = [...]string{
	StateUnloaded: "unloaded",
	StateLoading:  "loading",
	StateEntered:  "entered",
	StateReady:    "ready",
	StateActive:   "active",
	StateInactive: "inactive",
	StateExiting:  "exiting",
}

func (s SceneState) String() string {
	if s < 0 || int(s) >= len(sceneStateNames) {
		return "unknown"
	}
	return sceneStateNames[s]
}
