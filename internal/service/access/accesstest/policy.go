// Package accesstest builds access policies for tests of the resource
// services.
package accesstest

import (
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/identity"
)

// NewPolicy wires the default role policy and both resolver chains over
// employees.
func NewPolicy(employees employee.EmployeeRepository) *access.Policy {
	return access.NewPolicy(
		user.NewPolicyGate(nil),
		identity.NewResolver(employees),
		identity.NewLinkageResolver(employees),
	)
}
