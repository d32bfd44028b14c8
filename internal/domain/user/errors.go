package user

import "errors"

var (
	ErrUnauthenticated         = errors.New("authentication required")
	ErrForbidden               = errors.New("forbidden")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrNoEmployeeProfile       = errors.New("no employee profile linked to your account")
)
