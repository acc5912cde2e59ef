package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Command is one discrete camera operation triggered by user input.
type Command int

const (
	// CommandTopView switches to the top view.
	CommandTopView Command = iota
	// CommandLeftView switches to the left view.
	CommandLeftView
	// CommandFrontView switches to the front view.
	CommandFrontView
	// CommandRotateClockwise rotates the up vector by +RotationStep around the current view axis.
	CommandRotateClockwise
	// CommandRotateCounterClockwise rotates the up vector by -RotationStep around the current view axis.
	CommandRotateCounterClockwise
	// CommandIsometric switches to the isometric view.
	CommandIsometric
	// CommandZoomIn shrinks the frustum by ZoomStep on each side.
	CommandZoomIn
	// CommandZoomOut grows the frustum by ZoomStep on each side.
	CommandZoomOut
)

func (c Command) String() string {
	switch c {
	case CommandTopView:
		return "TopView"
	case CommandLeftView:
		return "LeftView"
	case CommandFrontView:
		return "FrontView"
	case CommandRotateClockwise:
		return "RotateClockwise"
	case CommandRotateCounterClockwise:
		return "RotateCounterClockwise"
	case CommandIsometric:
		return "Isometric"
	case CommandZoomIn:
		return "ZoomIn"
	case CommandZoomOut:
		return "ZoomOut"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// keyBindings maps virtual key codes to camera commands.
var keyBindings = map[uint32]Command{
	common.KeyT: CommandTopView,
	common.KeyL: CommandLeftView,
	common.KeyF: CommandFrontView,
	common.KeyD: CommandRotateClockwise,
	common.KeyA: CommandRotateCounterClockwise,
	common.KeyI: CommandIsometric,
	common.KeyW: CommandZoomIn,
	common.KeyS: CommandZoomOut,
}

// CommandForKey returns the command bound to a virtual key code.
//
// Parameters:
//   - keyCode: the virtual key code (see common/key_codes.go)
//
// Returns:
//   - Command: the bound command
//   - bool: false if the key is not bound
func CommandForKey(keyCode uint32) (Command, bool) {
	cmd, ok := keyBindings[keyCode]
	return cmd, ok
}

// Status describes the controller's view and zoom for titles and labels,
// e.g. "isometric view | zoom 3".
func Status(ctrl CameraController) string {
	return fmt.Sprintf("%s view | zoom %d", ctrl.Mode(), ctrl.ZoomLevel())
}

// CameraController owns the camera state and mutates it in response to commands.
// Every mutation is validated; a command that would leave the camera degenerate is
// rejected and the previous state is kept.
type CameraController interface {
	// State returns a copy of the current camera state.
	//
	// Returns:
	//   - State: the current state
	State() State

	// Eye returns the camera position.
	//
	// Returns:
	//   - mgl64.Vec3: world-space camera position
	Eye() mgl64.Vec3

	// At returns the look-at target.
	//
	// Returns:
	//   - mgl64.Vec3: world-space target position
	At() mgl64.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl64.Vec3: the up vector
	Up() mgl64.Vec3

	// Frustum returns the current orthographic bounds, including zoom.
	//
	// Returns:
	//   - Frustum: the effective frustum
	Frustum() Frustum

	// Mode returns the active named view.
	//
	// Returns:
	//   - ViewMode: the view mode tag
	Mode() ViewMode

	// ZoomLevel returns the net number of zoom-in steps applied (negative for zoom-out).
	//
	// Returns:
	//   - int: zoom steps relative to the base frustum
	ZoomLevel() int

	// RotationStep returns the angle applied per rotate command.
	//
	// Returns:
	//   - float64: radians per rotate command
	RotationStep() float64

	// ZoomStep returns the per-side frustum change applied per zoom command.
	//
	// Returns:
	//   - float64: world units per zoom command
	ZoomStep() float64

	// ApplyCommand applies one camera command.
	//
	// Parameters:
	//   - cmd: the command to apply
	//
	// Returns:
	//   - error: ErrDegenerateTransform if the command was rejected, nil otherwise
	ApplyCommand(cmd Command) error

	// ApplyKey applies the command bound to keyCode. Unbound keys are ignored.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - error: ErrDegenerateTransform if the bound command was rejected, nil otherwise
	ApplyKey(keyCode uint32) error

	// Zoom applies zoom commands from a scroll delta; positive zooms in, one command per whole unit.
	//
	// Parameters:
	//   - delta: scroll amount
	//
	// Returns:
	//   - error: ErrDegenerateTransform if a step was rejected
	Zoom(delta float32) error

	// Reset restores the startup state.
	Reset()
}
