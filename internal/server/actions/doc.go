// Package actions maps wire action names to engine calls. Both transport
// bindings decode a Request, dispatch it here, and translate the returned
// error through Status, so the HTTP and websocket surfaces stay in lockstep.
package actions
