// Package cli provides the interactive Divya Drishti command-line client.
//
// It wires configuration, the local SQLite store, the backend client and the
// services into a REPL that keeps working when the backend is down or out of
// AI quota. Typical flow: restore the saved session, start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Signup / Login / Logout (online with offline fallback), account deletion
//   - Kundali, matching, horoscope, panchang, predictions and chat
//   - Activity history and recently used names
//   - Status of the connection, the quota breaker and call counters
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
