// Package access decides which records an actor may see and which writes it
// may perform. Every resource service consults it the same way: privileged
// actors run unrestricted, everyone else is narrowed to the identifier
// variants of their own employee record.
package access

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/identity"
)

// Scope is the set of employee identifiers a query may match.
type Scope struct {
	Unrestricted bool
	EmployeeIDs  []string
}

// Nothing is the scope of an actor whose identity is unknown.
var Nothing = Scope{EmployeeIDs: []string{}}

// Empty reports a scope that can match no row.
func (s Scope) Empty() bool {
	return !s.Unrestricted && len(s.EmployeeIDs) == 0
}

// IDs returns the identifier filter for a repository query; nil when the
// scope is unrestricted.
func (s Scope) IDs() []string {
	if s.Unrestricted {
		return nil
	}
	return s.EmployeeIDs
}

type Policy struct {
	gate     user.Gate
	resolver *identity.Resolver
	linkage  *identity.Resolver
}

// NewPolicy builds a policy over the standard resolver chain. linkage serves
// writes that need a live employee row; nil falls back to resolver.
func NewPolicy(gate user.Gate, resolver, linkage *identity.Resolver) *Policy {
	if linkage == nil {
		linkage = resolver
	}
	return &Policy{gate: gate, resolver: resolver, linkage: linkage}
}

// ActorFrom returns the authenticated actor of the request.
func ActorFrom(ctx context.Context) (user.Actor, error) {
	actor, ok := user.ActorFromContext(ctx)
	if !ok {
		return nil, user.ErrUnauthenticated
	}
	return actor, nil
}

// CanManage reports whether actor holds the manage capability.
func (p *Policy) CanManage(actor user.Actor, capability user.Permission) bool {
	return p.gate.HasPermission(actor, capability)
}

// Require fails with ErrInsufficientPermissions unless actor holds at least
// one of capabilities.
func (p *Policy) Require(actor user.Actor, capabilities ...user.Permission) error {
	for _, c := range capabilities {
		if p.gate.HasPermission(actor, c) {
			return nil
		}
	}
	if len(capabilities) == 0 {
		return user.ErrInsufficientPermissions
	}
	return fmt.Errorf("%w: required '%s'", user.ErrInsufficientPermissions, capabilities[0])
}

// Scope narrows a read. Managers see everything, or only requestedEmployeeID
// when one is given. Other actors see their own records; an actor with no
// resolvable employee sees nothing.
func (p *Policy) Scope(ctx context.Context, actor user.Actor, capability user.Permission, requestedEmployeeID string) Scope {
	if p.CanManage(actor, capability) {
		if variants := identifier.Variants(requestedEmployeeID); len(variants) > 0 {
			return Scope{EmployeeIDs: variants}
		}
		return Scope{Unrestricted: true}
	}
	return p.SelfScope(ctx, actor)
}

// SelfScope is the read scope of a self-service actor.
func (p *Policy) SelfScope(ctx context.Context, actor user.Actor) Scope {
	res := p.resolver.Resolve(ctx, actor, true)
	if !res.Resolved() {
		return Nothing
	}
	return Scope{EmployeeIDs: selfVariants(res.EmployeeID)}
}

// SelfIdentity resolves the actor for a write. An unresolved actor is
// reported as ErrNoEmployeeProfile.
func (p *Policy) SelfIdentity(ctx context.Context, actor user.Actor, allowFallback bool) (identity.Resolution, error) {
	res := p.resolver.ResolveOrProvision(ctx, actor, allowFallback)
	if !res.Resolved() {
		return identity.Unresolved, user.ErrNoEmployeeProfile
	}
	return res, nil
}

// LinkedEmployee resolves the live employee row of actor through the
// linkage chain.
func (p *Policy) LinkedEmployee(ctx context.Context, actor user.Actor) (identity.Resolution, error) {
	res := p.linkage.ResolveOrProvision(ctx, actor, true)
	if !res.Linked() {
		return identity.Unresolved, user.ErrNoEmployeeProfile
	}
	return res, nil
}

// Owns reports whether recordEmployeeID belongs to the actor.
func (p *Policy) Owns(ctx context.Context, actor user.Actor, recordEmployeeID string) bool {
	res := p.resolver.Resolve(ctx, actor, true)
	if !res.Resolved() {
		return false
	}
	return identifier.Contains(selfVariants(res.EmployeeID), recordEmployeeID)
}

// PinTarget rejects a self-service write aimed at another employee. An empty
// requested target is pinned to self.
func PinTarget(self identity.Resolution, requested identifier.Raw) error {
	if requested.IsZero() {
		return nil
	}
	if !identifier.Contains(selfVariants(self.EmployeeID), requested) {
		return fmt.Errorf("%w: employee %s is not yours", user.ErrForbidden, requested)
	}
	return nil
}

func selfVariants(id string) []string {
	if v := identifier.Variants(id); len(v) > 0 {
		return v
	}
	return []string{id}
}
