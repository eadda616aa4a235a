// Package event holds the per-keystroke transaction record that travels
// through the keyboard's input pipeline.
//
// # Transaction Model
//
// Every keystroke gets exactly one InputTransaction. The record is built
// from the initial conditions of the key press and then handed, in order,
// to each pipeline stage:
//
//	key press ──→ NewInputTransaction ──→ stage 1 ──→ stage 2 ──→ ... ──→ read
//	                                         │            │
//	                                         └── RequireShiftUpdate(level)
//
// The initial conditions never change. The only output is the shift update
// requirement, which stages may raise but never lower:
//
//	ShiftNoUpdate < ShiftUpdateNow < ShiftUpdateLater
//
// ShiftUpdateLater wins over ShiftUpdateNow: a stage that asks for a later
// update knows the shift state depends on something that has not happened
// yet, so refreshing it now would only have to be redone.
//
// # Ownership
//
// A transaction borrows the settings snapshot it was built with. It never
// copies or modifies it, and it does not outlive the keystroke it describes.
//
// # Concurrency
//
// An InputTransaction is confined to the goroutine handling its keystroke.
// It carries no locks; concurrent keystrokes each get their own record.
package event
