// Package utils provides general-purpose helpers shared across the cloudsync
// client and server: type-safe context keys, JSON response writing, and JWT
// bearer token parsing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey is the key under which the authenticated account identifier
// is stored in a request context by the auth middleware.
var AccountIDCtxKey = contextKey("accountID")

// GetAccountIDFromContext retrieves the account identifier from the context.
//
// Returns the account ID and an ok flag:
//   - ok == true: value is present and is a non-empty string
//   - ok == false: value is missing or has an unexpected type
func GetAccountIDFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(string)
	if !ok || accountID == "" {
		return "", false
	}
	return accountID, true
}
