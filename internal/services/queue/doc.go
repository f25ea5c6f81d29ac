// Package queuesvc implements the waiting-line engine: add with fast-track
// placement, removal, the serving countdown, and the broadcasts that keep
// every subscriber's view equal to server state.
package queuesvc
