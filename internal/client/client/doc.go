// Package client talks to the Divya Drishti backend over HTTP.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer:
// Login/Signup, Generate for the AI-backed tools, Chat, LogActivity,
// DeleteAccount and Ping. HTTPClient implements it with JSON bodies and a
// bearer token taken from SetToken.
//
// # Error Handling
//
// Every failure is returned as one of the sentinel errors so callers can
// decide whether to fall back to local data:
//
//   - ErrUnavailable: network failure or timeout.
//   - ErrQuotaExceeded: the AI provider ran out of quota (HTTP 429).
//   - ErrUnauthorized: credentials or token rejected.
//   - ErrServer: any other non-2xx status, see StatusError.
//   - ErrBadResponse: the body could not be decoded.
//
// HTTPClient is safe for concurrent use.
package client
