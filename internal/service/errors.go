// Package service provides business logic for the application.
package service

import "errors"

// Service errors. Handlers classify these with errors.Is and map them
// to HTTP statuses; anything unclassified becomes a 500.
var (
	// Validation (400)
	ErrFieldsRequired      = errors.New("all fields are required")
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrInvalidRole         = errors.New("valid role ('user' or 'admin') is required")
	ErrTitleRequired       = errors.New("title is required")
	ErrInvalidTodoID       = errors.New("invalid todo id")
	ErrEmptyPatch          = errors.New("no valid fields provided for update")

	// Unauthenticated (401)
	ErrInvalidCredentials = errors.New("invalid user credentials")

	// Forbidden (403)
	ErrSelfRoleChange = errors.New("cannot change your own role")
	ErrSelfDeactivate = errors.New("cannot deactivate your own account")
	ErrTodoForbidden  = errors.New("not authorized to view this todo")

	// Not found (404)
	ErrUserNotFound   = errors.New("user does not exist")
	ErrTargetNotFound = errors.New("target user not found")
	ErrTodoNotFound   = errors.New("todo not found")

	// Conflict (409)
	ErrUserExists = errors.New("user with this email or username already exists")
)
