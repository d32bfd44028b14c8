package auth

import (
	"strings"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

type IssueTokenRequest struct {
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (r *IssueTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	r.UserID = strings.TrimSpace(r.UserID)
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Role = string(user.NormalizeRole(r.Role))

	if r.UserID == "" && r.Email == "" && r.Name == "" {
		errs = append(errs, validator.ValidationError{Field: "userId", Message: ErrIdentityRequired.Error()})
	}
	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is not valid"})
	}
	if r.Role == "" {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role is required"})
	}
	for _, p := range r.Permissions {
		if !user.IsKnownPermission(user.Permission(p)) {
			errs = append(errs, validator.ValidationError{Field: "permissions", Message: ErrUnknownPermission.Error() + ": " + p})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Principal converts a validated request into the actor it describes.
func (r IssueTokenRequest) Principal() user.Principal {
	perms := make([]user.Permission, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, user.Permission(p))
	}
	return user.Principal{
		UserID:      r.UserID,
		UserEmail:   r.Email,
		DisplayName: r.Name,
		UserRole:    user.Role(r.Role),
		Permissions: perms,
	}
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   int64  `json:"expiresAt"`
}

type MeResponse struct {
	UserID       *string         `json:"userId"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	Capabilities map[string]bool `json:"capabilities"`

	// EmployeeID is nil when no employee record could be linked
	EmployeeID *string `json:"employeeId"`
	LinkedBy   string  `json:"linkedBy,omitempty"`
}
