package event

import (
	"log/slog"

	"softkey/internal/settings"
)

// InputTransaction is the record of one keystroke as it moves through the
// input pipeline. The initial conditions are fixed at construction; the
// required shift update only ever increases.
type InputTransaction struct {
	// Initial conditions
	settings   *settings.Values
	keyCode    KeyCode
	x, y       Coordinate
	timestamp  int64
	spaceState SpaceState
	shiftState ShiftState

	// Output
	requiredShiftUpdate ShiftUpdate
}

// NewInputTransaction creates the record for a single keystroke. The
// settings snapshot is borrowed, not copied; it may be nil when the caller
// has none. timestamp is in milliseconds on whatever clock the caller uses.
func NewInputTransaction(values *settings.Values, keyCode KeyCode, x, y Coordinate,
	timestamp int64, spaceState SpaceState, shiftState ShiftState) *InputTransaction {
	return &InputTransaction{
		settings:   values,
		keyCode:    keyCode,
		x:          x,
		y:          y,
		timestamp:  timestamp,
		spaceState: spaceState,
		shiftState: shiftState,
	}
}

// Settings returns the settings snapshot active for this keystroke.
func (t *InputTransaction) Settings() *settings.Values { return t.settings }

// KeyCode returns the code of the pressed key.
func (t *InputTransaction) KeyCode() KeyCode { return t.keyCode }

// X returns the horizontal press position.
func (t *InputTransaction) X() Coordinate { return t.x }

// Y returns the vertical press position.
func (t *InputTransaction) Y() Coordinate { return t.y }

// Timestamp returns when the key event happened.
func (t *InputTransaction) Timestamp() int64 { return t.timestamp }

// SpaceState returns the space state just before this keystroke.
func (t *InputTransaction) SpaceState() SpaceState { return t.spaceState }

// ShiftState returns the shift state just before this keystroke.
func (t *InputTransaction) ShiftState() ShiftState { return t.shiftState }

// RequireShiftUpdate raises the required shift update to level if level is
// stronger than what is already required. Weaker or equal requests are
// no-ops. Out-of-range levels count as ShiftUpdateLater.
func (t *InputTransaction) RequireShiftUpdate(level ShiftUpdate) {
	if !level.Valid() {
		level = ShiftUpdateLater
	}
	t.requiredShiftUpdate = MaxShiftUpdate(t.requiredShiftUpdate, level)
}

// RequiredShiftUpdate returns the strongest shift update requested so far.
func (t *InputTransaction) RequiredShiftUpdate() ShiftUpdate {
	return t.requiredShiftUpdate
}

// LogValue implements slog.LogValuer.
func (t *InputTransaction) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("key", t.keyCode.String()),
		slog.String("x", t.x.String()),
		slog.String("y", t.y.String()),
		slog.Int64("timestamp", t.timestamp),
		slog.String("space_state", t.spaceState.String()),
		slog.String("shift_state", t.shiftState.String()),
		slog.String("required_shift_update", t.requiredShiftUpdate.String()),
	)
}
