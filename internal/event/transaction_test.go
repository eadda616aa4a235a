package event

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softkey/internal/settings"
)

func newTestTransaction() *InputTransaction {
	return NewInputTransaction(settings.Defaults(), KeyCode('a'), Touch(120), Touch(48),
		1_700_000_000_000, SpaceStateNone, ShiftStateOff)
}

func TestNewInputTransactionFields(t *testing.T) {
	values := settings.Defaults()
	tx := NewInputTransaction(values, CodeDelete, NotATouch(CoordinateExternalKeyboard),
		CoordinateFromRaw(-1), 42, SpaceStatePhantom, ShiftStateAutoShifted)

	assert.Same(t, values, tx.Settings())
	assert.Equal(t, CodeDelete, tx.KeyCode())
	assert.Equal(t, CoordinateExternalKeyboard, tx.X().Kind())
	assert.Equal(t, CoordinateNotApplicable, tx.Y().Kind())
	assert.Equal(t, int64(42), tx.Timestamp())
	assert.Equal(t, SpaceStatePhantom, tx.SpaceState())
	assert.Equal(t, ShiftStateAutoShifted, tx.ShiftState())
	assert.Equal(t, ShiftNoUpdate, tx.RequiredShiftUpdate())
}

func TestInitialConditionsSurviveShiftUpdates(t *testing.T) {
	tx := newTestTransaction()
	values := tx.Settings()

	tx.RequireShiftUpdate(ShiftUpdateLater)
	tx.RequireShiftUpdate(ShiftUpdateNow)

	assert.Same(t, values, tx.Settings())
	assert.Equal(t, KeyCode('a'), tx.KeyCode())
	x, ok := tx.X().Value()
	require.True(t, ok)
	assert.Equal(t, int32(120), x)
	y, ok := tx.Y().Value()
	require.True(t, ok)
	assert.Equal(t, int32(48), y)
	assert.Equal(t, int64(1_700_000_000_000), tx.Timestamp())
	assert.Equal(t, SpaceStateNone, tx.SpaceState())
	assert.Equal(t, ShiftStateOff, tx.ShiftState())
}

func TestNilSettingsAllowed(t *testing.T) {
	tx := NewInputTransaction(nil, CodeShift, Coordinate{}, Coordinate{}, 0, SpaceStateNone, ShiftStateOff)
	assert.Nil(t, tx.Settings())
	assert.Equal(t, ShiftNoUpdate, tx.RequiredShiftUpdate())
}

func TestRequireShiftUpdateScenarios(t *testing.T) {
	tests := []struct {
		name     string
		calls    []ShiftUpdate
		expected ShiftUpdate
	}{
		{"never called", nil, ShiftNoUpdate},
		{"now then none", []ShiftUpdate{ShiftUpdateNow, ShiftNoUpdate}, ShiftUpdateNow},
		{"later then now", []ShiftUpdate{ShiftUpdateLater, ShiftUpdateNow}, ShiftUpdateLater},
		{"later then none", []ShiftUpdate{ShiftUpdateLater, ShiftNoUpdate}, ShiftUpdateLater},
		{"none only", []ShiftUpdate{ShiftNoUpdate, ShiftNoUpdate}, ShiftNoUpdate},
		{"now then later", []ShiftUpdate{ShiftUpdateNow, ShiftUpdateLater}, ShiftUpdateLater},
		{"repeated now", []ShiftUpdate{ShiftUpdateNow, ShiftUpdateNow, ShiftUpdateNow}, ShiftUpdateNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := NewInputTransaction(nil, KeyCode('x'), Coordinate{}, Coordinate{}, 0,
				SpaceStateNone, ShiftStateManualShifted)
			for _, level := range tt.calls {
				tx.RequireShiftUpdate(level)
			}
			assert.Equal(t, tt.expected, tx.RequiredShiftUpdate())
		})
	}
}

func TestRequireShiftUpdateIsMaxOfSequence(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	levels := ShiftUpdates()

	for i := 0; i < 500; i++ {
		tx := newTestTransaction()
		expected := ShiftNoUpdate
		prev := tx.RequiredShiftUpdate()

		for n := rng.IntN(8); n > 0; n-- {
			level := levels[rng.IntN(len(levels))]
			tx.RequireShiftUpdate(level)
			expected = MaxShiftUpdate(expected, level)

			got := tx.RequiredShiftUpdate()
			require.GreaterOrEqual(t, int(got), int(prev), "required shift update decreased")
			prev = got
		}
		require.Equal(t, expected, tx.RequiredShiftUpdate())
	}
}

func TestNoUpdateIsIdentity(t *testing.T) {
	for _, start := range ShiftUpdates() {
		tx := newTestTransaction()
		tx.RequireShiftUpdate(start)
		tx.RequireShiftUpdate(ShiftNoUpdate)
		assert.Equal(t, start, tx.RequiredShiftUpdate(), "start=%s", start)
	}
}

func TestLaterIsSticky(t *testing.T) {
	tx := newTestTransaction()
	tx.RequireShiftUpdate(ShiftUpdateLater)
	for _, level := range []ShiftUpdate{ShiftUpdateNow, ShiftNoUpdate, ShiftUpdateNow} {
		tx.RequireShiftUpdate(level)
		assert.Equal(t, ShiftUpdateLater, tx.RequiredShiftUpdate())
	}
}

func TestRequireShiftUpdateClampsUnknownLevel(t *testing.T) {
	tx := newTestTransaction()
	tx.RequireShiftUpdate(ShiftUpdate(9))
	assert.Equal(t, ShiftUpdateLater, tx.RequiredShiftUpdate())
}

func TestLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	tx := newTestTransaction()
	tx.RequireShiftUpdate(ShiftUpdateNow)
	logger.Info("keystroke", "tx", tx)

	var entry struct {
		Tx map[string]any `json:"tx"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "'a'", entry.Tx["key"])
	assert.Equal(t, "120", entry.Tx["x"])
	assert.Equal(t, "none", entry.Tx["space_state"])
	assert.Equal(t, "off", entry.Tx["shift_state"])
	assert.Equal(t, "update_now", entry.Tx["required_shift_update"])
}

func TestResolveRunsStagesInOrder(t *testing.T) {
	tx := newTestTransaction()
	var order []string

	stage := func(name string, level ShiftUpdate) Stage {
		return StageFunc(func(t *InputTransaction) {
			order = append(order, name)
			t.RequireShiftUpdate(level)
		})
	}

	got := Resolve(tx,
		stage("commit", ShiftUpdateNow),
		nil,
		stage("suggest", ShiftUpdateLater),
		stage("cleanup", ShiftNoUpdate),
	)

	assert.Equal(t, []string{"commit", "suggest", "cleanup"}, order)
	assert.Equal(t, ShiftUpdateLater, got)
	assert.Equal(t, got, tx.RequiredShiftUpdate())
}

func TestResolveWithoutStages(t *testing.T) {
	assert.Equal(t, ShiftNoUpdate, Resolve(newTestTransaction()))
}
