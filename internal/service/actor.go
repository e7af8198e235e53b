package service

import (
	"errors"

	"github.com/campuslink/portal-api/internal/models"
)

// ErrRoleNotAllowed indicates the authenticated actor's role does not
// permit the attempted operation. Route-level guards catch most of these;
// services re-check because the role rule is part of the domain contract,
// not just the transport.
var ErrRoleNotAllowed = errors.New("role not allowed")

// Actor is the authenticated identity attached to a request, rebuilt from
// the session token on every call.
type Actor struct {
	ID   uint
	Name string
	Role string
}

// IsStudent reports whether the actor holds the student role.
func (a Actor) IsStudent() bool {
	return a.Role == models.RoleStudent
}

// IsTeacher reports whether the actor holds the teacher role.
func (a Actor) IsTeacher() bool {
	return a.Role == models.RoleTeacher
}
