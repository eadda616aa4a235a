package event

import (
	"fmt"
	"strconv"
	"strings"
)

// SpaceState describes what the space bar did just before this keystroke.
// The values are owned by the keyboard's input logic; this package only
// names the ones it knows about and passes the rest through untouched.
type SpaceState int32

const (
	SpaceStateNone SpaceState = iota
	// SpaceStateDouble follows a double space that was turned into a period.
	SpaceStateDouble
	// SpaceStateSwapPunctuation follows a space that will swap with the
	// next punctuation mark.
	SpaceStateSwapPunctuation
	// SpaceStateWeak follows a space that may be removed by the next key.
	SpaceStateWeak
	// SpaceStatePhantom means a space is owed and will be inserted before
	// the next character.
	SpaceStatePhantom
)

var spaceStateNames = map[SpaceState]string{
	SpaceStateNone:            "none",
	SpaceStateDouble:          "double",
	SpaceStateSwapPunctuation: "swap_punctuation",
	SpaceStateWeak:            "weak",
	SpaceStatePhantom:         "phantom",
}

func (s SpaceState) String() string {
	if name, ok := spaceStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SpaceState(%d)", int32(s))
}

// MarshalText implements encoding.TextMarshaler. Unknown values are
// written as plain integers.
func (s SpaceState) MarshalText() ([]byte, error) {
	if name, ok := spaceStateNames[s]; ok {
		return []byte(name), nil
	}
	return []byte(strconv.Itoa(int(s))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts a known
// name or any integer.
func (s *SpaceState) UnmarshalText(text []byte) error {
	v, err := parseEnum(string(text), spaceStateNames)
	if err != nil {
		return fmt.Errorf("space state: %w", err)
	}
	*s = SpaceState(v)
	return nil
}

// ShiftState is the keyboard's capitalization mode just before this
// keystroke. The values are bit sets: bit 0 is "shifted", bit 1 is
// "locked" and bit 2 is "set automatically".
type ShiftState int32

const (
	ShiftStateOff               ShiftState = 0x0
	ShiftStateManualShifted     ShiftState = 0x1
	ShiftStateManualShiftLocked ShiftState = 0x3
	ShiftStateAutoShifted       ShiftState = 0x5
	ShiftStateAutoShiftLocked   ShiftState = 0x7
)

var shiftStateNames = map[ShiftState]string{
	ShiftStateOff:               "off",
	ShiftStateManualShifted:     "manual_shifted",
	ShiftStateManualShiftLocked: "manual_shift_locked",
	ShiftStateAutoShifted:       "auto_shifted",
	ShiftStateAutoShiftLocked:   "auto_shift_locked",
}

// IsShifted reports whether the next letter would be capitalized.
func (s ShiftState) IsShifted() bool {
	return s&0x1 != 0
}

func (s ShiftState) String() string {
	if name, ok := shiftStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ShiftState(%#x)", int32(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s ShiftState) MarshalText() ([]byte, error) {
	if name, ok := shiftStateNames[s]; ok {
		return []byte(name), nil
	}
	return []byte(strconv.Itoa(int(s))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ShiftState) UnmarshalText(text []byte) error {
	v, err := parseEnum(string(text), shiftStateNames)
	if err != nil {
		return fmt.Errorf("shift state: %w", err)
	}
	*s = ShiftState(v)
	return nil
}

// parseEnum resolves a name from names, falling back to a decimal or
// 0x-prefixed integer.
func parseEnum[T ~int32](text string, names map[T]string) (T, error) {
	name := strings.ToLower(strings.TrimSpace(text))
	for v, n := range names {
		if n == name {
			return v, nil
		}
	}
	n, err := strconv.ParseInt(name, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown value %q", text)
	}
	return T(n), nil
}
