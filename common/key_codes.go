package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA = 65 // A key (ASCII), rotate counter-clockwise
	KeyD = 68 // D key (ASCII), rotate clockwise
	KeyF = 70 // F key (ASCII), front view
	KeyI = 73 // I key (ASCII), isometric view
	KeyL = 76 // L key (ASCII), left view
	KeyS = 83 // S key (ASCII), zoom out
	KeyT = 84 // T key (ASCII), top view
	KeyW = 87 // W key (ASCII), zoom in

	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)

// KeyCodeFromRune maps a printable character to its virtual key code.
// Lowercase letters map to the same code as their uppercase form, matching GLFW
// which reports physical keys rather than characters.
//
// Parameters:
//   - r: the character to convert
//
// Returns:
//   - uint32: the virtual key code
//   - bool: false if the character has no key code
func KeyCodeFromRune(r rune) (uint32, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return uint32(r - 'a' + 'A'), true
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		return uint32(r), true
	default:
		return 0, false
	}
}
