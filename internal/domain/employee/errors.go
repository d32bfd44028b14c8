package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidStatus    = errors.New("status must be active or inactive")
	ErrNameRequired     = errors.New("name is required")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
