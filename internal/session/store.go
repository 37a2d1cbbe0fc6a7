// Package session holds the bearer credential for each browser session.
// The store owns the credential exclusively: it is written on login or
// signup, read on every authenticated request, and destroyed on logout or
// when the backend rejects the credential.
package session

import "context"

// Store persists one opaque bearer credential per session key. Writers
// replace the whole value so readers never observe a partial update.
type Store interface {
	// Set stores the credential, overwriting any previous value
	Set(ctx context.Context, key, credential string) error
	// Get returns the stored credential, or "" if absent
	Get(ctx context.Context, key string) (string, error)
	// Clear removes the credential
	Clear(ctx context.Context, key string) error
}
