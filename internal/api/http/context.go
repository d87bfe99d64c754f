package http

import (
	"context"

	"ombrello-backend/internal/domain"
)

type principalKey struct{}

// Principal is the authenticated caller of a request.
type Principal struct {
	ID   int64
	Role domain.Role
}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller set by the auth middleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
