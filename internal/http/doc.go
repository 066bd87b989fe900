// Package http provides HTTP handlers and middleware for the campus events API.
//
// The router exposes the following endpoints:
//   - POST /users: registers an account. Body: {"name","email","password","phone","role"}.
//   - POST /login: verifies credentials and issues a signed token, returned in
//     the body and as an HTTP-only `token` cookie.
//   - GET /me: returns the account behind the caller's token.
//   - GET /events, GET /events/{id}: public event listing and detail reads.
//     The detail response includes the current attendee count.
//   - POST /events: creates an event organized by the authenticated caller.
//   - POST /rsvps: records the caller's attendance for an event. Body:
//     {"event_id"}. The attending user is always the resolved identity.
//
// Protected endpoints sit behind RequireIdentity, which verifies the token
// from the Authorization header or the `token` cookie and attaches the
// resolved identity to the request context.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
