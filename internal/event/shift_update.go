package event

import (
	"errors"
	"fmt"
	"strings"
)

// ShiftUpdate says how soon the shift state has to be recomputed once a
// keystroke has been processed. Levels are totally ordered; a larger value
// is a stronger requirement.
type ShiftUpdate uint8

const (
	// ShiftNoUpdate means the keystroke does not affect the shift state.
	ShiftNoUpdate ShiftUpdate = iota

	// ShiftUpdateNow means the shift state can and should be recomputed
	// right away from what is already known.
	ShiftUpdateNow

	// ShiftUpdateLater means the shift state depends on an effect of this
	// keystroke that has not resolved yet. It dominates ShiftUpdateNow.
	ShiftUpdateLater
)

// ErrUnknownShiftUpdate is returned when a name does not match any level.
var ErrUnknownShiftUpdate = errors.New("unknown shift update level")

var shiftUpdateNames = [...]string{
	ShiftNoUpdate:    "no_update",
	ShiftUpdateNow:   "update_now",
	ShiftUpdateLater: "update_later",
}

// ShiftUpdates lists every level from weakest to strongest.
func ShiftUpdates() []ShiftUpdate {
	return []ShiftUpdate{ShiftNoUpdate, ShiftUpdateNow, ShiftUpdateLater}
}

// Valid reports whether u is one of the defined levels.
func (u ShiftUpdate) Valid() bool {
	return u <= ShiftUpdateLater
}

// String returns the snake_case name of the level.
func (u ShiftUpdate) String() string {
	if !u.Valid() {
		return fmt.Sprintf("ShiftUpdate(%d)", uint8(u))
	}
	return shiftUpdateNames[u]
}

// MarshalText implements encoding.TextMarshaler.
func (u ShiftUpdate) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("marshal %s: %w", u, ErrUnknownShiftUpdate)
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *ShiftUpdate) UnmarshalText(text []byte) error {
	parsed, err := ParseShiftUpdate(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseShiftUpdate parses a level name. Matching ignores case, and the
// "shift_" prefix and hyphens used by some trace producers are accepted.
func ParseShiftUpdate(s string) (ShiftUpdate, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.TrimPrefix(name, "shift_")
	for i, n := range shiftUpdateNames {
		if n == name {
			return ShiftUpdate(i), nil
		}
	}
	return ShiftNoUpdate, fmt.Errorf("%w: %q", ErrUnknownShiftUpdate, s)
}

// MaxShiftUpdate returns the stronger of a and b.
func MaxShiftUpdate(a, b ShiftUpdate) ShiftUpdate {
	if b > a {
		return b
	}
	return a
}
