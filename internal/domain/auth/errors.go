package auth

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrTokenExpired      = errors.New("token has expired")
	ErrIdentityRequired  = errors.New("one of userId, email or name is required")
	ErrUnknownPermission = errors.New("unknown permission")
)
