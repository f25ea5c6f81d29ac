// Package httpserver exposes the SSE-plus-POST binding: a GET event stream
// that mirrors every broadcast for a team, and a POST action endpoint that
// dispatches mutations through the shared action registry.
package httpserver
