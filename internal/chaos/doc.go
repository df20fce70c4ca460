// Package chaos implements the state-evolution and rendering engine.
//
// A [Field] owns the 64x64 chaos grid and the 240x320 RGB frame derived
// from it, and provides the pure transformations: seeding from raw
// bytes, re-randomizing, one evolution tick, and time-modulated
// colorization. A [Loop] drives a Field from a background goroutine at
// a fixed cadence and is the only place locking happens:
//
//	field := chaos.NewField(nil)
//	loop := chaos.NewLoop(field, chaos.DefaultInterval)
//	loop.Start()
//	frame := loop.Snapshot() // safe copy for display
//	loop.Stop()
//
// Randomness is injected through the Field constructor so evolution can
// be made reproducible in tests.
package chaos
