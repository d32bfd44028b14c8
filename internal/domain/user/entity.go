package user

import (
	"context"
	"strings"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleManager  Role = "manager"  // Manages every HR resource
	RoleStaff    Role = "staff"    // Self-service
	RoleEmployee Role = "employee" // Self-service, legacy role name
)

// NormalizeRole lower-cases and trims a role string for comparison.
func NormalizeRole(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}

// IsPrivileged reports the roles that implicitly hold every capability.
func (r Role) IsPrivileged() bool {
	switch NormalizeRole(string(r)) {
	case RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}

// Actor is the authenticated caller of an operation. It is not necessarily
// linked to an employee record.
//
// Implementations return zero values for anything the identity provider did
// not supply: ID reports ok=false, strings are empty, Granted is false.
type Actor interface {
	ID() (id string, ok bool)
	Email() string
	Name() string
	Role() Role
	Granted(p Permission) bool
}

// Principal is the Actor built from access token claims.
type Principal struct {
	UserID      string
	UserEmail   string
	DisplayName string
	UserRole    Role
	Permissions []Permission
}

func (p Principal) ID() (string, bool) {
	id := strings.TrimSpace(p.UserID)
	return id, id != ""
}

func (p Principal) Email() string { return strings.TrimSpace(p.UserEmail) }
func (p Principal) Name() string  { return strings.TrimSpace(p.DisplayName) }
func (p Principal) Role() Role    { return NormalizeRole(string(p.UserRole)) }

func (p Principal) Granted(perm Permission) bool {
	for _, g := range p.Permissions {
		if g == perm {
			return true
		}
	}
	return false
}

// DecisionLabel identifies the actor on records it approves or rejects.
func DecisionLabel(a Actor) string {
	if a == nil {
		return ""
	}
	if email := a.Email(); email != "" {
		return email
	}
	return a.Name()
}

type actorCtxKey struct{}

// WithActor stores the authenticated actor on ctx.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, a)
}

// ActorFromContext returns the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorCtxKey{}).(Actor)
	return a, ok && a != nil
}
