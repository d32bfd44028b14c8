package access

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/identity"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicy() *Policy {
	linked := "u-ana"
	repo := servicetest.NewEmployeeRepo(
		employee.Employee{ID: "12", Name: "Ana", Contact: "ana@example.com", UserID: &linked},
		employee.Employee{ID: "6f1c2b8e-7d3a-4e59-9a41-0c2d5e8b7f10", Name: "Budi", Contact: "budi@example.com"},
	)
	return NewPolicy(user.NewPolicyGate(nil), identity.NewResolver(repo), identity.NewLinkageResolver(repo))
}

var (
	manager = user.Principal{UserID: "m", UserRole: user.RoleManager}
	ana     = user.Principal{UserID: "u-ana", UserRole: user.RoleStaff}
	budi    = user.Principal{UserEmail: "budi@example.com", UserRole: user.RoleStaff}
	nobody  = user.Principal{UserID: "u-x", UserRole: user.RoleStaff}
)

func TestActorFrom(t *testing.T) {
	_, err := ActorFrom(context.Background())
	assert.ErrorIs(t, err, user.ErrUnauthenticated)

	actor, err := ActorFrom(user.WithActor(context.Background(), ana))
	require.NoError(t, err)
	assert.Equal(t, user.RoleStaff, actor.Role())
}

func TestRequire(t *testing.T) {
	p := newPolicy()
	assert.NoError(t, p.Require(manager, user.PermissionLeaveManage))
	assert.NoError(t, p.Require(ana, user.PermissionScheduleManage, user.PermissionScheduleViewEdit))
	assert.ErrorIs(t, p.Require(ana, user.PermissionLeaveManage), user.ErrInsufficientPermissions)
	assert.ErrorIs(t, p.Require(ana), user.ErrInsufficientPermissions)
}

func TestScope(t *testing.T) {
	p := newPolicy()
	ctx := context.Background()

	s := p.Scope(ctx, manager, user.PermissionAttendanceManage, "")
	assert.True(t, s.Unrestricted)
	assert.Nil(t, s.IDs())

	s = p.Scope(ctx, manager, user.PermissionAttendanceManage, "012")
	assert.False(t, s.Unrestricted)
	assert.Equal(t, []string{"012", "12"}, s.IDs())

	s = p.Scope(ctx, ana, user.PermissionAttendanceManage, "999")
	assert.Equal(t, []string{"12"}, s.IDs())

	s = p.Scope(ctx, budi, user.PermissionAttendanceManage, "")
	assert.Contains(t, s.IDs(), "6f1c2b8e7d3a4e599a410c2d5e8b7f10")

	s = p.Scope(ctx, nobody, user.PermissionAttendanceManage, "")
	assert.True(t, s.Empty())
	assert.NotNil(t, s.IDs())
}

func TestSelfIdentity(t *testing.T) {
	p := newPolicy()
	ctx := context.Background()

	_, err := p.SelfIdentity(ctx, budi, false)
	assert.ErrorIs(t, err, user.ErrNoEmployeeProfile)

	res, err := p.SelfIdentity(ctx, budi, true)
	require.NoError(t, err)
	assert.Equal(t, identity.StrategyContact, res.Strategy)

	res, err = p.LinkedEmployee(ctx, budi)
	require.NoError(t, err)
	assert.Equal(t, "Budi", res.Employee.Name)

	_, err = p.LinkedEmployee(ctx, nobody)
	assert.ErrorIs(t, err, user.ErrNoEmployeeProfile)
}

func TestOwnsAndPinTarget(t *testing.T) {
	p := newPolicy()
	ctx := context.Background()

	assert.True(t, p.Owns(ctx, budi, "6F1C2B8E7D3A4E599A410C2D5E8B7F10"))
	assert.False(t, p.Owns(ctx, budi, "12"))
	assert.False(t, p.Owns(ctx, nobody, "12"))

	self := identity.Resolution{EmployeeID: "12"}
	assert.NoError(t, PinTarget(self, ""))
	assert.NoError(t, PinTarget(self, identifier.Raw("012")))
	assert.ErrorIs(t, PinTarget(self, identifier.Raw("13")), user.ErrForbidden)
}
