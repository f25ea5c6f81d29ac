// Package timer tracks the serving countdown for queue items.
//
// A Registry holds at most one live Registration per item. Starting a timer
// for an item cancels any previous one, and an expiry callback only runs if
// it first claims its registration, so a timer that was stopped or replaced
// after its clock fired is a no-op.
package timer
