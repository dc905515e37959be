package session

import "context"

type authContextKey struct{}

// Auth is the resolved session for the current request.
type Auth struct {
	// Token is the plaintext session token from the cookie.
	Token string
	// Session is the stored session value.
	Session Session
}

// SetAuth stores the resolved session in the context.
func SetAuth(ctx context.Context, auth *Auth) context.Context {
	return context.WithValue(ctx, authContextKey{}, auth)
}

// GetAuth returns the resolved session from the context, or nil.
func GetAuth(ctx context.Context) *Auth {
	if auth, ok := ctx.Value(authContextKey{}).(*Auth); ok {
		return auth
	}
	return nil
}
