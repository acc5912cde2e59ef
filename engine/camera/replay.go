package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/common"
)

// Replay feeds a key sequence to the controller as if typed in the window.
// Space resets the camera. Characters without a key code and rejected commands are
// reported and skipped; the rest of the sequence still applies.
//
// Parameters:
//   - ctrl: the controller to drive
//   - keys: the characters to replay, case-insensitive
//
// Returns:
//   - []error: one error per skipped character, nil when every key applied
func Replay(ctrl CameraController, keys string) []error {
	var errs []error
	for i, r := range keys {
		code, ok := common.KeyCodeFromRune(r)
		if !ok {
			errs = append(errs, fmt.Errorf("key %q at %d has no key code", r, i))
			continue
		}
		if code == common.KeySpace {
			ctrl.Reset()
			continue
		}
		if err := ctrl.ApplyKey(code); err != nil {
			errs = append(errs, fmt.Errorf("key %q at %d: %w", r, i, err))
		}
	}
	return errs
}
