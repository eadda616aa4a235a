package event

// Stage is one step of the input pipeline. A stage may inspect the
// transaction and raise its required shift update.
type Stage interface {
	Apply(t *InputTransaction)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc func(t *InputTransaction)

// Apply calls f(t).
func (f StageFunc) Apply(t *InputTransaction) { f(t) }

// Resolve runs stages against t in order and returns the resulting shift
// update. Nil stages are skipped.
func Resolve(t *InputTransaction, stages ...Stage) ShiftUpdate {
	for _, s := range stages {
		if s == nil {
			continue
		}
		s.Apply(t)
	}
	return t.RequiredShiftUpdate()
}
