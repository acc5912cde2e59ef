package common

import "testing"

func TestKeyCodeFromRune(t *testing.T) {
	tests := []struct {
		r    rune
		want uint32
		ok   bool
	}{
		{'t', KeyT, true},
		{'T', KeyT, true},
		{'w', KeyW, true},
		{'i', KeyI, true},
		{' ', KeySpace, true},
		{'7', '7', true},
		{'-', 0, false},
		{'é', 0, false},
	}

	for _, tt := range tests {
		got, ok := KeyCodeFromRune(tt.r)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyCodeFromRune(%q) = (%d, %v), want (%d, %v)", tt.r, got, ok, tt.want, tt.ok)
		}
	}
}
