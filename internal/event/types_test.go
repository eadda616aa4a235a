package event

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestShiftUpdateOrdering(t *testing.T) {
	assert.Less(t, int(ShiftNoUpdate), int(ShiftUpdateNow))
	assert.Less(t, int(ShiftUpdateNow), int(ShiftUpdateLater))
	assert.Equal(t, []ShiftUpdate{ShiftNoUpdate, ShiftUpdateNow, ShiftUpdateLater}, ShiftUpdates())

	assert.Equal(t, ShiftUpdateLater, MaxShiftUpdate(ShiftUpdateLater, ShiftUpdateNow))
	assert.Equal(t, ShiftUpdateNow, MaxShiftUpdate(ShiftNoUpdate, ShiftUpdateNow))
	assert.Equal(t, ShiftNoUpdate, MaxShiftUpdate(ShiftNoUpdate, ShiftNoUpdate))
}

func TestParseShiftUpdate(t *testing.T) {
	tests := []struct {
		input    string
		expected ShiftUpdate
	}{
		{"no_update", ShiftNoUpdate},
		{"update_now", ShiftUpdateNow},
		{"UPDATE_LATER", ShiftUpdateLater},
		{"shift-update-now", ShiftUpdateNow},
		{" SHIFT_NO_UPDATE ", ShiftNoUpdate},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseShiftUpdate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseShiftUpdate("soon")
	assert.True(t, errors.Is(err, ErrUnknownShiftUpdate))
}

func TestShiftUpdateText(t *testing.T) {
	type doc struct {
		Levels []ShiftUpdate `json:"levels" yaml:"levels"`
	}

	in := doc{Levels: []ShiftUpdate{ShiftUpdateLater, ShiftNoUpdate}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"levels":["update_later","no_update"]}`, string(data))

	var out doc
	require.NoError(t, yaml.Unmarshal([]byte("levels: [update_now, update_later]\n"), &out))
	assert.Equal(t, []ShiftUpdate{ShiftUpdateNow, ShiftUpdateLater}, out.Levels)

	_, err = ShiftUpdate(7).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownShiftUpdate)
	assert.Equal(t, "ShiftUpdate(7)", ShiftUpdate(7).String())
	assert.False(t, ShiftUpdate(7).Valid())
}

func TestSpaceAndShiftStateText(t *testing.T) {
	var s SpaceState
	require.NoError(t, s.UnmarshalText([]byte("phantom")))
	assert.Equal(t, SpaceStatePhantom, s)
	require.NoError(t, s.UnmarshalText([]byte("12")))
	assert.Equal(t, SpaceState(12), s)
	assert.Equal(t, "SpaceState(12)", s.String())
	assert.Error(t, s.UnmarshalText([]byte("sideways")))

	var sh ShiftState
	require.NoError(t, sh.UnmarshalText([]byte("auto_shift_locked")))
	assert.Equal(t, ShiftStateAutoShiftLocked, sh)
	require.NoError(t, sh.UnmarshalText([]byte("0x5")))
	assert.Equal(t, ShiftStateAutoShifted, sh)

	text, err := ShiftState(0x10).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "16", string(text))
}

func TestShiftStateIsShifted(t *testing.T) {
	assert.False(t, ShiftStateOff.IsShifted())
	assert.True(t, ShiftStateManualShifted.IsShifted())
	assert.True(t, ShiftStateManualShiftLocked.IsShifted())
	assert.True(t, ShiftStateAutoShifted.IsShifted())
	assert.True(t, ShiftStateAutoShiftLocked.IsShifted())
}

func TestKeyCode(t *testing.T) {
	assert.True(t, KeyCode('a').IsCodePoint())
	assert.Equal(t, 'a', KeyCode('a').Rune())
	assert.False(t, CodeDelete.IsCodePoint())
	assert.Zero(t, CodeDelete.Rune())
	assert.False(t, KeyCode(0).IsCodePoint())
	assert.False(t, KeyCode(0x110000).IsCodePoint())

	assert.Equal(t, "delete", CodeDelete.String())
	assert.Equal(t, "'é'", KeyCode('é').String())
	assert.Equal(t, "KeyCode(-99)", KeyCode(-99).String())
}

func TestParseKeyCode(t *testing.T) {
	tests := []struct {
		input    string
		expected KeyCode
	}{
		{"delete", CodeDelete},
		{"SHIFT", CodeShift},
		{"a", KeyCode('a')},
		{" ", CodeSpace},
		{"U+00E9", KeyCode('é')},
		{"-5", CodeDelete},
		{"0x41", KeyCode('A')},
		{"65", KeyCode('A')},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKeyCode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	for _, bad := range []string{"", "not-a-key", "U+ZZ"} {
		_, err := ParseKeyCode(bad)
		assert.Error(t, err, bad)
	}
}

func TestCoordinate(t *testing.T) {
	zero := Coordinate{}
	assert.False(t, zero.IsTouch())
	assert.Equal(t, CoordinateNotApplicable, zero.Kind())
	_, ok := zero.Value()
	assert.False(t, ok)

	c := Touch(0)
	v, ok := c.Value()
	assert.True(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, "0", c.String())

	assert.Equal(t, CoordinateNotApplicable, NotATouch(CoordinateTouch).Kind())
	assert.Equal(t, "spell_checker", NotATouch(CoordinateSpellChecker).String())
}

func TestCoordinateRawRoundTrip(t *testing.T) {
	tests := []struct {
		raw  int32
		kind CoordinateKind
	}{
		{0, CoordinateTouch},
		{731, CoordinateTouch},
		{RawNotACoordinate, CoordinateNotApplicable},
		{RawSuggestionStripCoordinate, CoordinateSuggestionStrip},
		{RawSpellCheckerCoordinate, CoordinateSpellChecker},
		{RawExternalKeyboardCoordinate, CoordinateExternalKeyboard},
	}
	for _, tt := range tests {
		c := CoordinateFromRaw(tt.raw)
		assert.Equal(t, tt.kind, c.Kind(), "raw=%d", tt.raw)
		assert.Equal(t, tt.raw, c.Raw(), "raw=%d", tt.raw)
	}

	// Unknown sentinels collapse to "not applicable".
	assert.Equal(t, RawNotACoordinate, CoordinateFromRaw(-50).Raw())
}
