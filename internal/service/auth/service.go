package auth

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/identity"
)

var capabilities = []user.Permission{
	user.PermissionAttendanceManage,
	user.PermissionLeaveManage,
	user.PermissionEmployeesManage,
	user.PermissionScheduleManage,
	user.PermissionScheduleViewEdit,
}

type AuthServiceImpl struct {
	jwt.Service
	gate     user.Gate
	resolver *identity.Resolver
}

func NewAuthService(jwtService jwt.Service, gate user.Gate, resolver *identity.Resolver) auth.AuthService {
	return &AuthServiceImpl{
		Service:  jwtService,
		gate:     gate,
		resolver: resolver,
	}
}

// IssueToken implements auth.AuthService.
func (a *AuthServiceImpl) IssueToken(ctx context.Context, req auth.IssueTokenRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(req.Principal())
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.MeResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return auth.MeResponse{}, err
	}

	resp := auth.MeResponse{
		Email:        actor.Email(),
		Name:         actor.Name(),
		Role:         string(actor.Role()),
		Capabilities: make(map[string]bool, len(capabilities)),
	}
	if id, ok := actor.ID(); ok {
		resp.UserID = &id
	}
	for _, c := range capabilities {
		resp.Capabilities[string(c)] = a.gate.HasPermission(actor, c)
	}

	if res := a.resolver.Resolve(ctx, actor, true); res.Resolved() {
		resp.EmployeeID = &res.EmployeeID
		resp.LinkedBy = res.Strategy
	}

	return resp, nil
}
