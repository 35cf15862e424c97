package auth

import "context"

type ctxKey string

const claimsKey ctxKey = "authClaims"

type Claims struct {
	UserID uint
	JTI    string
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(claimsKey).(Claims); ok {
		return v
	}
	return Claims{}
}

// UserID returns the authenticated user id, 0 when unauthenticated.
func UserID(ctx context.Context) uint {
	return FromContext(ctx).UserID
}
