// Package domain defines domain-level errors for the identity feature.
package domain

import (
	"errors"
	"fmt"
)

// Store errors. Lookups never return these for a missing row; they return a nil entity instead.
var (
	// ErrInvalidArgument indicates a nil or malformed required input (nil user/role,
	// malformed claim, blank role name, unparsable key). It is raised before any I/O.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidOperation indicates an operation that cannot proceed in the current state.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrRoleNotFound is returned by AddToRole when no role matches the requested name.
	// It is an ErrInvalidOperation: errors.Is(ErrRoleNotFound, ErrInvalidOperation) holds.
	ErrRoleNotFound = fmt.Errorf("%w: role not found", ErrInvalidOperation)

	// ErrPersistence wraps any failure surfaced by the database during a query or command.
	// The driver error stays in the chain.
	ErrPersistence = errors.New("persistence error")
)

// Account errors returned by the usecase layer.
var (
	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned during signup when the normalized email is taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNameAlreadyExists is returned during signup when the normalized user name is taken.
	ErrUserNameAlreadyExists = errors.New("user name already exists")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrLockedOut is returned when sign-in is attempted while the lockout window is active.
	ErrLockedOut = errors.New("user is locked out")

	// ErrWeakPassword is returned when a password does not meet the minimum requirements.
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrRoleAlreadyExists is returned when creating a role whose normalized name is taken.
	ErrRoleAlreadyExists = errors.New("role already exists")
)

// InvalidArgument builds an ErrInvalidArgument naming the offending parameter.
func InvalidArgument(name string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, name)
}

// Persistence wraps a database error with ErrPersistence, keeping err inspectable.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
