package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	me, err := a.authService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, me)
}
