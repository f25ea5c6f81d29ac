// Package hub fans events out to subscribers grouped by channel.
//
// Channels are plain strings such as "queue:bma-training". A Conn is
// anything that can accept an encoded frame without blocking; both the SSE
// and the websocket bindings wrap their connections to satisfy it. A Conn
// whose Send fails is dropped from every channel it subscribed to.
package hub
