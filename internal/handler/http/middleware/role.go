package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/response"
)

// RequirePermission lets the request through when the actor holds at
// least one of permissions. Must run after AuthRequired.
func RequirePermission(gate user.Gate, permissions ...user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := user.ActorFromContext(r.Context())
			if !ok {
				response.HandleError(w, user.ErrUnauthenticated)
				return
			}

			for _, p := range permissions {
				if gate.HasPermission(actor, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if len(permissions) == 0 {
				response.Forbidden(w, "Insufficient permissions")
				return
			}
			response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permissions[0], actor.Role()))
		})
	}
}
