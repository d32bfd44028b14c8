package auth

import (
	"context"
)

type AuthService interface {
	// IssueToken mints an access token for an identity supplied by an
	// operator. Used by cmd/token and tests.
	IssueToken(ctx context.Context, req IssueTokenRequest) (TokenResponse, error)

	// Me describes the acting user and the employee record it resolves to
	Me(ctx context.Context) (MeResponse, error)
}
