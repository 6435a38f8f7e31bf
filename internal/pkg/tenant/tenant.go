// Package tenant carries the caller's tenant id on a context.
package tenant

import (
	"context"
	"errors"
)

var ErrTenantMissing = errors.New("tenant is missing from request context")

type ctxKey struct{}

func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, tenantID)
}

// FromContext returns the tenant id set by WithTenant.
func FromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", ErrTenantMissing
	}
	return id, nil
}
