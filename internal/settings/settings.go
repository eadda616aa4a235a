// Package settings holds the immutable keyboard settings snapshots that
// input transactions borrow.
package settings

import (
	"time"

	"softkey/internal/config"
)

// Values is one snapshot of the keyboard settings. A Values is never
// modified after it is built; a settings change produces a new snapshot.
type Values struct {
	Locale                   string
	AutoCapitalize           bool
	DoubleSpacePeriod        bool
	PhantomSpaceAfterPicking bool
	KeyPreviewPopup          bool
	LongPressTimeout         time.Duration

	// Generation increases by one for every snapshot a Provider builds.
	Generation uint64
	LoadedAt   time.Time
}

// FromConfig builds a snapshot from the keyboard section of the config.
func FromConfig(kc config.KeyboardConfig) *Values {
	return &Values{
		Locale:                   kc.Locale,
		AutoCapitalize:           kc.AutoCapitalize,
		DoubleSpacePeriod:        kc.DoubleSpacePeriod,
		PhantomSpaceAfterPicking: kc.PhantomSpaceAfterPicking,
		KeyPreviewPopup:          kc.KeyPreviewPopup,
		LongPressTimeout:         time.Duration(kc.LongPressTimeoutMs) * time.Millisecond,
		LoadedAt:                 time.Now(),
	}
}

// Defaults returns the snapshot for the default configuration.
func Defaults() *Values {
	return FromConfig(config.DefaultConfig().Keyboard)
}
