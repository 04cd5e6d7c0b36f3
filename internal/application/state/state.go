package state

// SceneState represents what a simulation scene is currently doing
type SceneState int

const (
	StateLoading SceneState = iota
	StatePlaying
	StatePaused
	StateCutscene
)

// String returns the string representation of the scene state
func (s SceneState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateCutscene:
		return "Cutscene"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the driver should advance in this state
func (s SceneState) Simulating() bool {
	return s == StatePlaying || s == StateCutscene
}

// AcceptsInput reports whether player input drives the world
func (s SceneState) AcceptsInput() bool {
	return s == StatePlaying
}
