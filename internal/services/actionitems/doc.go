// Package actionsvc implements the action-item engine: add, complete with an
// optional proof image, uncomplete, and removal, each followed by the
// broadcasts that keep subscribers in sync.
package actionsvc
