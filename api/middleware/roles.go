package middleware

import (
	"net/http"

	"github.com/novamart/orderhub-backend/api/responses"
	pkgerrors "github.com/novamart/orderhub-backend/pkg/errors"
	"github.com/novamart/orderhub-backend/pkg/logger"
)

// RequireRole admits only requests whose authenticated role is listed.
func RequireRole(logg *logger.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allowed[RoleFromContext(r.Context())]; !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
