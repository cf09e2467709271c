package auth

import "context"

// Authenticator verifies the credential presented at login.
// The server has a single operator, so there is no user lookup.
type Authenticator interface {
	// Enabled reports whether a credential has been configured.
	// When it returns false, write endpoints are open.
	Enabled() bool

	// Authenticate checks the credential and returns nil if it is valid.
	Authenticate(ctx context.Context, credential string) error
}
