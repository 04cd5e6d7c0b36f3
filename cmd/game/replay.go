package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/gridsim/internal/application/scene/sandbox"
	"github.com/younwookim/gridsim/internal/application/state"
)

// maxHeadlessFrames stops a replay whose input never runs out
const maxHeadlessFrames = 1 << 20

// ReplayResult is the scene state at the end of a headless replay
type ReplayResult struct {
	Frames   int
	Ticks    uint64
	PlayerX  float64
	PlayerY  float64
	CameraX  float64
	CameraY  float64
	Respawns int
	Entities int
	State    state.SceneState
}

func (r ReplayResult) String() string {
	return fmt.Sprintf("frames=%d ticks=%d player=(%.3f, %.3f) camera=(%.1f, %.1f) respawns=%d entities=%d state=%s",
		r.Frames, r.Ticks, r.PlayerX, r.PlayerY, r.CameraX, r.CameraY, r.Respawns, r.Entities, r.State)
}

// runHeadless drives the scene frame by frame until its input runs out.
// Frame times come from the recording, so the result matches a windowed
// playback of the same file.
func runHeadless(sb *sandbox.Sandbox) (ReplayResult, error) {
	sb.OnEnter()

	var res ReplayResult
	for ; res.Frames < maxHeadlessFrames; res.Frames++ {
		if _, err := sb.Update(0); err != nil {
			if errors.Is(err, ebiten.Termination) {
				break
			}
			return res, err
		}
	}
	sb.OnExit()

	p := sb.Player()
	res.Ticks = sb.Driver().Ticks()
	res.PlayerX, res.PlayerY = p.AttachX(), p.AttachY()
	res.CameraX, res.CameraY = sb.Camera().X(), sb.Camera().Y()
	res.Respawns = sb.Respawns()
	res.Entities = len(sb.Entities())
	res.State = sb.State()
	return res, nil
}
