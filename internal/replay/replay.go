// Package replay feeds recorded keystrokes through input transactions and
// reports the shift update each keystroke ended up requiring.
//
// A trace records, per keystroke, the initial conditions of the key press
// and the shift update levels each pipeline stage requested. Replaying it
// rebuilds one event.InputTransaction per keystroke, applies the recorded
// requests in order, and reads the merged result. This is how recorded
// sessions are checked against the merge rules without a live keyboard.
package replay

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"softkey/internal/event"
	"softkey/internal/logging"
	"softkey/internal/settings"
)

// Outcome is the replay result for one keystroke.
type Outcome struct {
	Index              int               `json:"index"`
	Key                string            `json:"key"`
	Timestamp          int64             `json:"timestamp"`
	ShiftState         event.ShiftState  `json:"shift_state"`
	Stages             int               `json:"stages"`
	Requests           int               `json:"requests"`
	ShiftUpdate        event.ShiftUpdate `json:"shift_update"`
	SettingsGeneration uint64            `json:"settings_generation"`
}

// Summary counts keystrokes by resolved shift update.
type Summary struct {
	Keystrokes  int `json:"keystrokes"`
	NoUpdate    int `json:"no_update"`
	UpdateNow   int `json:"update_now"`
	UpdateLater int `json:"update_later"`
}

// Add counts one outcome.
func (s *Summary) Add(o Outcome) {
	s.Keystrokes++
	switch o.ShiftUpdate {
	case event.ShiftUpdateNow:
		s.UpdateNow++
	case event.ShiftUpdateLater:
		s.UpdateLater++
	default:
		s.NoUpdate++
	}
}

// Summarize counts a slice of outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		s.Add(o)
	}
	return s
}

// Replayer turns trace keystrokes into transactions.
type Replayer struct {
	settings *settings.Provider
	logger   *logging.Logger
	workers  int
}

// Option configures a Replayer.
type Option func(*Replayer)

// WithLogger sets the logger. Transactions are logged at debug level.
func WithLogger(l *logging.Logger) Option {
	return func(r *Replayer) { r.logger = l }
}

// WithWorkers sets how many keystrokes RunParallel replays at once.
func WithWorkers(n int) Option {
	return func(r *Replayer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// New creates a Replayer that builds transactions with the provider's
// current settings snapshot.
func New(provider *settings.Provider, opts ...Option) *Replayer {
	r := &Replayer{
		settings: provider,
		workers:  4,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.Default()
	}
	r.logger = r.logger.WithComponent("replay")
	if r.settings == nil {
		r.settings = settings.NewProvider(nil, r.logger)
	}
	return r
}

// Transaction builds the transaction for one recorded keystroke.
func (r *Replayer) Transaction(k Keystroke) *event.InputTransaction {
	x, y := k.Coordinates()
	return event.NewInputTransaction(r.settings.Current(), k.Code.KeyCode(), x, y,
		k.Timestamp, k.SpaceState, k.ShiftState)
}

// Stages converts recorded stage requests into pipeline stages.
func Stages(k Keystroke) []event.Stage {
	stages := make([]event.Stage, 0, len(k.Stages))
	for _, rec := range k.Stages {
		levels := rec.Require
		stages = append(stages, event.StageFunc(func(t *event.InputTransaction) {
			for _, level := range levels {
				t.RequireShiftUpdate(level)
			}
		}))
	}
	return stages
}

// Replay resolves a single keystroke.
func (r *Replayer) Replay(index int, k Keystroke) Outcome {
	tx := r.Transaction(k)
	result := event.Resolve(tx, Stages(k)...)

	requests := 0
	for _, s := range k.Stages {
		requests += len(s.Require)
	}

	r.logger.Debug("keystroke replayed", "index", index, "tx", tx)

	generation := uint64(0)
	if v := tx.Settings(); v != nil {
		generation = v.Generation
	}

	return Outcome{
		Index:              index,
		Key:                tx.KeyCode().String(),
		Timestamp:          tx.Timestamp(),
		ShiftState:         tx.ShiftState(),
		Stages:             len(k.Stages),
		Requests:           requests,
		ShiftUpdate:        result,
		SettingsGeneration: generation,
	}
}

// Run replays every keystroke in order. It stops early with ctx's error if
// ctx is cancelled, returning the outcomes produced so far.
func (r *Replayer) Run(ctx context.Context, trace *Trace) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(trace.Keystrokes))
	for i, k := range trace.Keystrokes {
		if err := ctx.Err(); err != nil {
			return outcomes, fmt.Errorf("replay interrupted at keystroke %d: %w", i, err)
		}
		outcomes = append(outcomes, r.Replay(i, k))
	}

	r.logger.Info("trace replayed",
		"trace", trace.Name,
		"keystrokes", len(outcomes),
	)
	return outcomes, nil
}

// RunParallel replays keystrokes concurrently. Each keystroke gets its own
// transaction, so no state is shared between workers. Outcomes are
// returned in trace order.
func (r *Replayer) RunParallel(ctx context.Context, trace *Trace) ([]Outcome, error) {
	outcomes := make([]Outcome, len(trace.Keystrokes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, k := range trace.Keystrokes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.Replay(i, k)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel replay: %w", err)
	}
	// The loop may have stopped early without any worker failing.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parallel replay: %w", err)
	}

	r.logger.Info("trace replayed",
		"trace", trace.Name,
		"keystrokes", len(outcomes),
		"workers", r.workers,
	)
	return outcomes, nil
}
