// Package cli provides the interactive bookshelf command-line client.
//
// It wires configuration and the REST API client into a REPL. A session
// starts anonymous; after login the bearer token is kept in memory and sent
// with every book command. When the server rejects the token (it lives ten
// minutes) the session is dropped and the user is asked to log in again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
