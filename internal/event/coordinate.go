package event

import (
	"fmt"
	"strconv"
)

// CoordinateKind says whether a coordinate is a real touch position and,
// if not, where the event came from instead.
type CoordinateKind uint8

const (
	// CoordinateNotApplicable marks an event with no position at all.
	// It is the zero value so an unset Coordinate reads as "not a touch".
	CoordinateNotApplicable CoordinateKind = iota
	CoordinateTouch
	CoordinateSuggestionStrip
	CoordinateSpellChecker
	CoordinateExternalKeyboard
)

var coordinateKindNames = [...]string{
	CoordinateNotApplicable:    "not_applicable",
	CoordinateTouch:            "touch",
	CoordinateSuggestionStrip:  "suggestion_strip",
	CoordinateSpellChecker:     "spell_checker",
	CoordinateExternalKeyboard: "external_keyboard",
}

func (k CoordinateKind) String() string {
	if int(k) < len(coordinateKindNames) {
		return coordinateKindNames[k]
	}
	return fmt.Sprintf("CoordinateKind(%d)", uint8(k))
}

// Raw sentinel values used by the keyboard view for non-touch events.
const (
	RawNotACoordinate             int32 = -1
	RawSuggestionStripCoordinate  int32 = -2
	RawSpellCheckerCoordinate     int32 = -3
	RawExternalKeyboardCoordinate int32 = -4
)

// Coordinate is one axis of a key press position. Only a CoordinateTouch
// carries a value.
type Coordinate struct {
	kind  CoordinateKind
	value int32
}

// Touch returns a coordinate for a real touch at v.
func Touch(v int32) Coordinate {
	return Coordinate{kind: CoordinateTouch, value: v}
}

// NotATouch returns a coordinate of the given non-touch kind. Passing
// CoordinateTouch yields NotApplicable, since a touch needs a value.
func NotATouch(kind CoordinateKind) Coordinate {
	if kind == CoordinateTouch {
		kind = CoordinateNotApplicable
	}
	return Coordinate{kind: kind}
}

// CoordinateFromRaw converts a coordinate from the keyboard view's integer
// encoding, where negative sentinels stand for non-touch sources.
// Unrecognized negative values are treated as not applicable.
func CoordinateFromRaw(v int32) Coordinate {
	switch {
	case v >= 0:
		return Touch(v)
	case v == RawSuggestionStripCoordinate:
		return NotATouch(CoordinateSuggestionStrip)
	case v == RawSpellCheckerCoordinate:
		return NotATouch(CoordinateSpellChecker)
	case v == RawExternalKeyboardCoordinate:
		return NotATouch(CoordinateExternalKeyboard)
	default:
		return NotATouch(CoordinateNotApplicable)
	}
}

// Kind returns where the coordinate came from.
func (c Coordinate) Kind() CoordinateKind { return c.kind }

// IsTouch reports whether the coordinate is a real position.
func (c Coordinate) IsTouch() bool { return c.kind == CoordinateTouch }

// Value returns the position and true for a touch, or 0 and false.
func (c Coordinate) Value() (int32, bool) {
	if c.kind != CoordinateTouch {
		return 0, false
	}
	return c.value, true
}

// Raw converts back to the keyboard view's integer encoding.
func (c Coordinate) Raw() int32 {
	switch c.kind {
	case CoordinateTouch:
		return c.value
	case CoordinateSuggestionStrip:
		return RawSuggestionStripCoordinate
	case CoordinateSpellChecker:
		return RawSpellCheckerCoordinate
	case CoordinateExternalKeyboard:
		return RawExternalKeyboardCoordinate
	default:
		return RawNotACoordinate
	}
}

func (c Coordinate) String() string {
	if c.kind == CoordinateTouch {
		return strconv.Itoa(int(c.value))
	}
	return c.kind.String()
}
