// Package client is the console's only way to talk to the warehouse backend.
//
// # Overview
//
// HTTPClient implements Gateway. Every request it sends:
//  1. carries "Authorization: Bearer <token>" when the credential store holds
//     a token, and optionally mirrors the same token into the Auth cookie;
//  2. carries an X-Request-ID used to correlate log lines;
//  3. is mapped on the way back: 2xx bodies are decoded into the caller's
//     value, everything else becomes an *APIError.
//
// # Session expiry
//
// A 401 from any endpoint clears the credential store and sends the
// Navigator to the login view before ErrSessionExpired is returned. There is
// no opt-out. A 403 only yields ErrForbidden; the session remains.
//
// # Error Handling
//
// Callers match conditions with errors.Is: ErrUnavailable, ErrUnauthorized,
// ErrSessionExpired, ErrForbidden. APIError.Message is what the console
// shows the user.
package client
