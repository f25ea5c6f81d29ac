// Package config defines the CommitQ server configuration.
//
// Configuration is built from three layers: built-in defaults, an optional
// JSON file, and COMMITQ_* environment variable overlays. The team list is a
// boundary-layer enumeration used by clients and the default-team fallback;
// the core engines accept any non-empty team identifier.
package config
