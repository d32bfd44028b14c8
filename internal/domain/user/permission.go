package user

import "strings"

type Permission string

const (
	PermissionAttendanceManage Permission = "attendance.manage"
	PermissionLeaveManage      Permission = "leave.manage"
	PermissionEmployeesManage  Permission = "employees.manage"
	PermissionScheduleManage   Permission = "schedule.manage"
	PermissionScheduleViewEdit Permission = "schedule.view_edit"
)

// Gate answers capability questions about an actor.
type Gate interface {
	HasPermission(actor Actor, permission Permission) bool
}

// DefaultRolePermissions maps self-service roles to their baseline grants.
// Admin and manager are covered by IsPrivileged.
var DefaultRolePermissions = map[Role][]Permission{
	RoleStaff: {
		PermissionScheduleViewEdit,
	},
	RoleEmployee: {
		PermissionScheduleViewEdit,
	},
}

// PolicyGate grants a permission when the role is privileged, the actor
// carries an explicit grant, or the role policy lists it.
type PolicyGate struct {
	policy map[Role]map[Permission]struct{}
}

// NewPolicyGate builds a gate from a role policy. A nil policy falls back to
// DefaultRolePermissions.
func NewPolicyGate(policy map[Role][]Permission) *PolicyGate {
	if policy == nil {
		policy = DefaultRolePermissions
	}
	g := &PolicyGate{policy: make(map[Role]map[Permission]struct{}, len(policy))}
	for role, perms := range policy {
		role = NormalizeRole(string(role))
		set, ok := g.policy[role]
		if !ok {
			set = make(map[Permission]struct{}, len(perms))
			g.policy[role] = set
		}
		for _, p := range perms {
			set[Permission(strings.TrimSpace(string(p)))] = struct{}{}
		}
	}
	return g
}

// HasPermission implements Gate.
func (g *PolicyGate) HasPermission(actor Actor, permission Permission) bool {
	if actor == nil {
		return false
	}
	role := actor.Role()
	if role.IsPrivileged() {
		return true
	}
	if actor.Granted(permission) {
		return true
	}
	_, ok := g.policy[role][permission]
	return ok
}

// IsKnownPermission reports whether p is one of the declared capabilities.
func IsKnownPermission(p Permission) bool {
	switch p {
	case PermissionAttendanceManage, PermissionLeaveManage, PermissionEmployeesManage,
		PermissionScheduleManage, PermissionScheduleViewEdit:
		return true
	default:
		return false
	}
}
