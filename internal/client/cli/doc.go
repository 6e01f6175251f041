// Package cli provides the interactive BreedBook command-line client.
//
// It wires configuration, the session database, the REST API client, the
// catalog caches and the search orchestrator into an interactive REPL.
// Typical flow: restore any persisted session, start a background session
// watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout with a persisted session
//   - Browse the breed catalog (cached with a TTL)
//   - Search breeds locally or against the server
//   - Fetch breed images on demand
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartSessionWatcher, and runREPL for details.
package cli
