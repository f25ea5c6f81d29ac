// Package id generates short opaque identifiers for queue and action items.
//
// # Format
//
// An identifier encodes [44 bits ms_timestamp][20 bits sequence] as a
// lowercase base36 string (typically 12 characters). Identifiers generated
// by one Generator are strictly increasing, so they are unique within a
// process lifetime without any store-side collision check.
//
// # Monotonicity
//
// The Generator ensures per-process monotonicity:
//   - If the system clock regresses, it pins to the last seen millisecond and
//     increments the sequence to avoid going backwards.
//   - If the sequence would overflow within a millisecond, it waits for the
//     next millisecond before emitting the next identifier.
//
// Usage
//
//	g := id.NewGenerator()
//	itemID := g.Next()
package id
