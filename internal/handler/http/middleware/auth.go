package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/user"
	"github.com/cmlabs-hris/washpay-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
	"github.com/go-chi/jwtauth/v5"
)

type principalKey struct{}

// AuthRequired rejects requests without a valid access token and scopes the
// request context to the token's tenant.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, jwt.ErrInvalidClaims)
			return
		}

		principal, err := jwt.PrincipalFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, principal)
		ctx = tenant.WithTenant(ctx, principal.TenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFromContext returns the caller set by AuthRequired.
func PrincipalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}
