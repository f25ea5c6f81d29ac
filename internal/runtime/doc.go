// Package runtime wires state, timers, and the broadcast hub into a
// single-node CommitQ instance. It exposes New/Close, a basic health check,
// and accessors used by the services and transport bindings.
//
// Example:
//
//	cfg := config.Default()
//	rt := runtime.New(runtime.Options{Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
package runtime
