package identity

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
)

// Strategy is one named step of a resolution chain. Resolve returns the zero
// Resolution when the actor does not carry what the strategy needs.
type Strategy interface {
	Name() string
	Fallback() bool
	Resolve(ctx context.Context, actor user.Actor) (Resolution, error)
}

const (
	StrategyLinked        = "linked"
	StrategyLegacyUserID  = "legacy_user_id"
	StrategyContact       = "contact"
	StrategyName          = "name"
	StrategyContactEntity = "contact_entity"
	StrategyNameEntity    = "name_entity"
)

type strategyFunc struct {
	name     string
	fallback bool
	fn       func(ctx context.Context, actor user.Actor) (Resolution, error)
}

func (s strategyFunc) Name() string   { return s.name }
func (s strategyFunc) Fallback() bool { return s.fallback }

func (s strategyFunc) Resolve(ctx context.Context, actor user.Actor) (Resolution, error) {
	return s.fn(ctx, actor)
}

// LinkedUser matches employees.user_id exactly and returns the full row.
func LinkedUser(repo employee.EmployeeRepository) Strategy {
	return strategyFunc{name: StrategyLinked, fn: func(ctx context.Context, actor user.Actor) (Resolution, error) {
		id, ok := actor.ID()
		if !ok {
			return Unresolved, nil
		}
		emp, err := repo.GetByUserID(ctx, id)
		if err != nil {
			return Unresolved, err
		}
		return entity(emp), nil
	}}
}

// LegacyUserID matches the text projection of user_id against every
// encoding of the actor id.
func LegacyUserID(repo employee.EmployeeRepository) Strategy {
	return strategyFunc{name: StrategyLegacyUserID, fallback: true, fn: func(ctx context.Context, actor user.Actor) (Resolution, error) {
		id, ok := actor.ID()
		if !ok {
			return Unresolved, nil
		}
		variants := identifier.Variants(id)
		if len(variants) == 0 {
			return Unresolved, nil
		}
		empID, err := repo.FindIDByUserIDVariants(ctx, variants)
		return projection(empID, err)
	}}
}

// ContactProjection matches the lower-cased contact against the actor email.
func ContactProjection(repo employee.EmployeeRepository) Strategy {
	return strategyFunc{name: StrategyContact, fallback: true, fn: func(ctx context.Context, actor user.Actor) (Resolution, error) {
		email := normalize(actor.Email())
		if email == "" {
			return Unresolved, nil
		}
		empID, err := repo.FindIDByContact(ctx, email)
		return projection(empID, err)
	}}
}

// NameProjection matches the lower-cased name against the actor name.
func NameProjection(repo employee.EmployeeRepository) Strategy {
	return strategyFunc{name: StrategyName, fallback: true, fn: func(ctx context.Context, actor user.Actor) (Resolution, error) {
		name := normalize(actor.Name())
		if name == "" {
			return Unresolved, nil
		}
		empID, err := repo.FindIDByName(ctx, name)
		return projection(empID, err)
	}}
}

// ContactEntity fetches the live row whose contact equals the actor email,
// ignoring case.
func ContactEntity(repo employee.EmployeeRepository) Strategy {
	return strategyFunc{name: StrategyContactEntity, fn: func(ctx context.Context, actor user.Actor) (Resolution, error) {
		email := normalize(actor.Email())
		if email == "" {
			return Unresolved, nil
		}
		emp, err := repo.GetByContact(ctx, email)
		if err != nil {
			return Unresolved, err
		}
		return entity(emp), nil
	}}
}

// NameEntity fetches the live row whose name equals the actor name,
// ignoring case.
func NameEntity(repo employee.EmployeeRepository) Strategy {
	return strategyFunc{name: StrategyNameEntity, fn: func(ctx context.Context, actor user.Actor) (Resolution, error) {
		name := normalize(actor.Name())
		if name == "" {
			return Unresolved, nil
		}
		emp, err := repo.GetByName(ctx, name)
		if err != nil {
			return Unresolved, err
		}
		return entity(emp), nil
	}}
}

func entity(emp employee.Employee) Resolution {
	if emp.ID == "" {
		return Unresolved
	}
	return Resolution{Employee: &emp, EmployeeID: emp.ID}
}

func projection(empID string, err error) (Resolution, error) {
	if err != nil {
		return Unresolved, err
	}
	return Resolution{EmployeeID: empID}, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
