package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token and stores
// the token's actor on the request context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !jwt.IsAccessToken(claims) {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		ctx := user.WithActor(r.Context(), jwt.PrincipalFromClaims(claims))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
