// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ActorIDCtxKey is the key used to store the authenticated actor identifier
// in the context. Every keyed or audited compliance operation resolves its
// actor through [GetActorIDFromContext].
var ActorIDCtxKey = contextKey("actorID")

// WithActorID returns a copy of ctx carrying actorID.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorIDCtxKey, actorID)
}

// GetActorIDFromContext retrieves the actor identifier from the context.
//
// Returns the actor ID and an ok flag:
//   - ok == true : value is found, is a string and is not empty
//   - ok == false: value is missing, empty or has an unexpected type
//
// Example usage:
//
//	actorID, ok := utils.GetActorIDFromContext(ctx)
//	if !ok {
//	    // no authenticated actor
//	}
func GetActorIDFromContext(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(ActorIDCtxKey).(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
