package auth

import "context"

type credentialsContextKey struct{}

// ContextWithCredentials returns a context carrying the verified caller
// credentials.
func ContextWithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, credentialsContextKey{}, creds)
}

// CredentialsFromContext retrieves the verified caller credentials from
// the request context. Returns nil if no credentials are present, i.e.
// the request did not pass the authentication middleware.
func CredentialsFromContext(ctx context.Context) *Credentials {
	creds, ok := ctx.Value(credentialsContextKey{}).(*Credentials)
	if !ok {
		return nil
	}
	return creds
}
