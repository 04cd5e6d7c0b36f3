package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem samples the keyboard
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the input of one frame
type InputState struct {
	Left         bool
	Right        bool
	Up           bool
	Down         bool
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	Pause        bool // toggles pause
	Skip         bool // skips the running cutscene
	Debug        bool // toggles the debug overlay
	ZoomIn       bool
	ZoomOut      bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:         ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:        ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:           ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:         ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Jump:         ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		JumpReleased: inpututil.IsKeyJustReleased(ebiten.KeySpace),
		Pause:        inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Skip:         inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Debug:        inpututil.IsKeyJustPressed(ebiten.KeyTab),
		ZoomIn:       inpututil.IsKeyJustPressed(ebiten.KeyE),
		ZoomOut:      inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
}

// Merge ORs one-shot presses of next into s. Frames that run no fixed
// tick keep their presses until a tick consumes them.
func (s InputState) Merge(next InputState) InputState {
	next.JumpPressed = next.JumpPressed || s.JumpPressed
	next.JumpReleased = next.JumpReleased || s.JumpReleased
	return next
}
