// Package identity maps an authenticated actor to its employee record.
//
// New rows carry a direct user_id link; legacy rows may only be reachable by
// a differently encoded user_id, the contact email or the display name. The
// resolver tries each way in a fixed order and treats every failure as
// "unidentified", never as a fault.
package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/jackc/pgx/v5"
)

// Resolution is the outcome of resolving an actor. The zero value is the
// unresolved result.
type Resolution struct {
	// Employee is set only when a strategy fetched the live row.
	Employee   *employee.Employee
	EmployeeID string
	Strategy   string
}

// Unresolved is returned when no strategy matched.
var Unresolved = Resolution{}

func (r Resolution) Resolved() bool {
	return r.EmployeeID != ""
}

// Linked reports a resolution that carries the full employee row.
func (r Resolution) Linked() bool {
	return r.Employee != nil
}

// Resolver walks an ordered list of strategies and stops at the first match.
type Resolver struct {
	strategies []Strategy
}

// NewResolver returns the standard chain: direct link, then the legacy
// projections of user_id, contact and name.
func NewResolver(repo employee.EmployeeRepository) *Resolver {
	return NewResolverWith(
		LinkedUser(repo),
		LegacyUserID(repo),
		ContactProjection(repo),
		NameProjection(repo),
	)
}

// NewLinkageResolver returns the chain used when a live employee row is
// required: direct link, then case-insensitive contact, then name.
func NewLinkageResolver(repo employee.EmployeeRepository) *Resolver {
	return NewResolverWith(
		LinkedUser(repo),
		ContactEntity(repo),
		NameEntity(repo),
	)
}

func NewResolverWith(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Strategies returns the chain in priority order.
func (r *Resolver) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Resolve returns the employee identity of actor. With allowFallback false
// only non-fallback strategies run, which forces "must already be linked"
// semantics on the standard chain.
func (r *Resolver) Resolve(ctx context.Context, actor user.Actor, allowFallback bool) Resolution {
	if actor == nil {
		return Unresolved
	}

	for _, s := range r.strategies {
		if s.Fallback() && !allowFallback {
			continue
		}

		res, err := s.Resolve(ctx, actor)
		if err != nil {
			if !isNoMatch(err) {
				slog.DebugContext(ctx, "employee identity lookup failed",
					"strategy", s.Name(),
					"error", err,
				)
			}
			continue
		}
		if res.Resolved() {
			res.Strategy = s.Name()
			return res
		}
	}

	return Unresolved
}

// ResolveOrProvision behaves like Resolve. Auto-creation of employee rows is
// disabled, so an unresolved actor is only logged.
func (r *Resolver) ResolveOrProvision(ctx context.Context, actor user.Actor, allowFallback bool) Resolution {
	res := r.Resolve(ctx, actor, allowFallback)
	if !res.Resolved() {
		userID := ""
		if actor != nil {
			userID, _ = actor.ID()
		}
		slog.InfoContext(ctx, "employee lookup requested creation, but auto-creation is disabled",
			"user_id", userID,
		)
	}
	return res
}

func isNoMatch(err error) bool {
	return errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, pgx.ErrNoRows)
}
