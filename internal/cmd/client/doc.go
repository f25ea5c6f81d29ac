// Package client provides the `commitq` command-line client.
//
// The CLI talks to the CommitQ HTTP action endpoint to manage queues and
// action items from a terminal. It is primarily intended for developers and
// operators.
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it defaults
// to http://127.0.0.1:8080 and can be overridden with COMMITQ_HTTP.
//
// Usage
//
//	commitq queue add --name "Alice" --team caffeine
//	commitq queue add --name "Bob" --fast-track
//	commitq queue list --team caffeine
//	commitq queue start-timer --id <id> --duration-ms 300000
//	commitq queue stop-timer --id <id>
//	commitq queue remove --id <id>
//
//	commitq actionitems add --title "write docs" --description "by friday"
//	commitq actionitems complete --id <id> --image ./proof.png
//	commitq actionitems uncomplete --id <id>
//	commitq actionitems list
package client
