// softkey replays recorded keystroke traces through input transactions and
// reports the shift update each keystroke requires.
//
// Usage:
//
//	softkey replay trace.yaml
//	softkey replay --json --parallel 8 trace.json
//	softkey validate trace.yaml
//	softkey config init
//	softkey config show
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
