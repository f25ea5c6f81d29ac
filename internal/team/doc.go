// Package team holds the authoritative in-memory state for each team.
//
// The Store maps a team identifier to its State, created lazily on first
// access and kept for the lifetime of the process. State owns every queue
// item and action item; engines mutate the canonical slices in place under
// the per-team lock and read a snapshot for broadcast before releasing it.
package team
