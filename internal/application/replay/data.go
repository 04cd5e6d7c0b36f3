// Package replay records and plays back the per-frame input and frame
// time of a session. Feeding both back through the driver reproduces the
// same tick sequence.
package replay

import (
	"time"

	"github.com/younwookim/gridsim/internal/application/system"
)

// Version is written into every recording
const Version = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int   `json:"f"`            // Frame number
	DT int64 `json:"dt"`           // Frame time in nanoseconds
	L  bool  `json:"l,omitempty"`  // Left
	R  bool  `json:"r,omitempty"`  // Right
	U  bool  `json:"u,omitempty"`  // Up
	D  bool  `json:"d,omitempty"`  // Down
	J  bool  `json:"j,omitempty"`  // Jump
	JP bool  `json:"jp,omitempty"` // JumpPressed
	JR bool  `json:"jr,omitempty"` // JumpReleased
	P  bool  `json:"p,omitempty"`  // Pause
	S  bool  `json:"s,omitempty"`  // Skip
	ZI bool  `json:"zi,omitempty"` // ZoomIn
	ZO bool  `json:"zo,omitempty"` // ZoomOut
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Level     string       `json:"level"`
	TickRate  int          `json:"tickRate"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

func toFrame(f int, dt time.Duration, in system.InputState) FrameInput {
	return FrameInput{
		F:  f,
		DT: int64(dt),
		L:  in.Left,
		R:  in.Right,
		U:  in.Up,
		D:  in.Down,
		J:  in.Jump,
		JP: in.JumpPressed,
		JR: in.JumpReleased,
		P:  in.Pause,
		S:  in.Skip,
		ZI: in.ZoomIn,
		ZO: in.ZoomOut,
	}
}

// Input converts the frame back to an input state
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Left:         fi.L,
		Right:        fi.R,
		Up:           fi.U,
		Down:         fi.D,
		Jump:         fi.J,
		JumpPressed:  fi.JP,
		JumpReleased: fi.JR,
		Pause:        fi.P,
		Skip:         fi.S,
		ZoomIn:       fi.ZI,
		ZoomOut:      fi.ZO,
	}
}

// Duration returns the recorded frame time
func (fi FrameInput) Duration() time.Duration {
	return time.Duration(fi.DT)
}
