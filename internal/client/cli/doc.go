// Package cli provides the interactive pokegate command-line client.
//
// It wires configuration, the HTTP API client and a small REPL. The session
// cookie lives in the client's in-memory jar, so logging in once lets the
// following list and show commands reach the protected catalog routes.
//
// Commands:
//   - login / logout
//   - status
//   - list [limit] [offset]
//   - show <name>
//   - help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
