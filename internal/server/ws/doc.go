// Package wsserver exposes the duplex websocket binding. Clients join team
// channels, send the same actions the HTTP binding accepts, and receive the
// Event envelope frames the hub broadcasts. Errors go only to the
// requesting connection.
package wsserver
