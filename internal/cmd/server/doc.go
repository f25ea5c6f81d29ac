// Package serverrun exposes a shared Run entrypoint used by the CLI to start
// the CommitQ runtime with the SSE and websocket servers, handling lifecycle
// and shutdown.
//
// Example:
//
//	opts := serverrun.Options{HTTPAddr: ":8080", WSAddr: ":8081", Config: config.Default()}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = serverrun.Run(ctx, opts)
package serverrun
