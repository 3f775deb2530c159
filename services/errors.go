package services

import (
	"errors"

	"github.com/formhub/formhub-go/authz"
)

// Sentinel errors mapped onto the HTTP taxonomy by the handlers:
// validation and conflicts to 400, ErrForbidden to 403, ErrNotFound to
// 404.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveUser       = errors.New("inactive user")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrSiteNameTaken      = errors.New("site name already exists")
	ErrSubdomainTaken     = errors.New("subdomain already exists")
	ErrSiteRequired       = errors.New("a site is required for this operation")
	ErrInvalidRole        = errors.New("invalid role")
	ErrValidation         = errors.New("invalid input")
	ErrPasswordHash       = errors.New("failed to hash password")
)

// decisionErr translates an authz decision into the service error the
// handlers know how to map.
func decisionErr(d authz.Decision) error {
	switch d {
	case authz.Allow:
		return nil
	case authz.NotFound:
		return ErrNotFound
	default:
		return ErrForbidden
	}
}
