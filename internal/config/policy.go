package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"gopkg.in/yaml.v3"
)

// rolePolicyFile is the YAML layout of ROLE_POLICY_FILE:
//
//	roles:
//	  staff:
//	    - schedule.view_edit
//	  supervisor:
//	    - attendance.manage
//	    - leave.manage
type rolePolicyFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadRolePolicy reads the role policy at path. An empty path returns the
// default policy.
func LoadRolePolicy(path string) (map[user.Role][]user.Permission, error) {
	if path == "" {
		return user.DefaultRolePermissions, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role policy: %w", err)
	}
	return ParseRolePolicy(data)
}

// ParseRolePolicy decodes a role policy document, rejecting unknown
// capabilities so a typo cannot silently revoke access.
func ParseRolePolicy(data []byte) (map[user.Role][]user.Permission, error) {
	var doc rolePolicyFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode role policy: %w", err)
	}

	policy := make(map[user.Role][]user.Permission, len(doc.Roles))
	for role, perms := range doc.Roles {
		r := user.NormalizeRole(role)
		if r == "" {
			return nil, fmt.Errorf("role policy: empty role name")
		}
		for _, p := range perms {
			perm := user.Permission(p)
			if !user.IsKnownPermission(perm) {
				return nil, fmt.Errorf("role policy: unknown permission %q for role %q", p, role)
			}
			policy[r] = append(policy[r], perm)
		}
	}
	return policy, nil
}
