package models

import (
	"fmt"
	"strconv"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q: %w", s, ErrInvalidInput)
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID int
	Role   Role
}

type ErrMissingRole struct {
	Have Role
	Need Role
}

func (e ErrMissingRole) Error() string {
	return fmt.Sprintf("role %q required, caller has %q", e.Need, e.Have)
}

func (e ErrMissingRole) Unwrap() error {
	return ErrUnauthorized
}

// Require fails with ErrUnauthorized unless the identity holds role.
func (id Identity) Require(role Role) error {
	if id.Role != role {
		return ErrMissingRole{Have: id.Role, Need: role}
	}
	return nil
}

func (id Identity) String() string {
	return strconv.Itoa(id.UserID) + "/" + string(id.Role)
}
