package servicetest

import (
	"context"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
)

// As returns ctx carrying p as the authenticated actor.
func As(ctx context.Context, p user.Principal) context.Context {
	return user.WithActor(ctx, p)
}

func Manager() user.Principal {
	return user.Principal{UserID: "mgr-1", UserEmail: "boss@example.com", DisplayName: "Boss", UserRole: user.RoleManager}
}

func Staff(userID, email, name string) user.Principal {
	return user.Principal{UserID: userID, UserEmail: email, DisplayName: name, UserRole: user.RoleStaff}
}
