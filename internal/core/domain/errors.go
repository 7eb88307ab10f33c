package domain

import "errors"

// Error taxonomy surfaced to the boundary layer. The HTTP error handler maps
// each sentinel to a status code; anything else is masked as a 500.
var (
	// ErrAuthenticationFailed covers unknown email, wrong password, and
	// disabled accounts alike so responses cannot be used for account
	// enumeration.
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrForbidden            = errors.New("access forbidden")
	ErrUserNotFound         = errors.New("user not found")
	ErrRoleNotFound         = errors.New("role not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidArgument      = errors.New("invalid argument")
)
