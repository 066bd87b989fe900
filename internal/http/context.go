package http

import (
	"context"

	"github.com/example/campus-events/internal/application"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"
	eventIDContextKey  contextKey = "event_id"
)

// ContextWithIdentity returns a derived context containing the resolved
// caller identity.
func ContextWithIdentity(ctx context.Context, identity application.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the resolved caller identity if available.
func IdentityFromContext(ctx context.Context) (application.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(application.Identity)
	return identity, ok
}

// ContextWithEventID injects the event identifier resolved from the request path.
func ContextWithEventID(ctx context.Context, eventID string) context.Context {
	return context.WithValue(ctx, eventIDContextKey, eventID)
}

// EventIDFromContext extracts an event identifier previously associated with
// the context.
func EventIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(eventIDContextKey).(string)
	return id, ok
}
