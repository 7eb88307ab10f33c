// Package authz maps operations to the roles allowed to perform them. The
// policy only inspects claims already validated by the token codec; it never
// touches the store.
package authz

import (
	"github.com/CristopherGamboa/lab-identity-service/internal/core/domain"
)

// Operation identifies a protected action on the user-management surface.
type Operation string

const (
	OpUserCreate       Operation = "user:create"
	OpUserRead         Operation = "user:read"
	OpUserList         Operation = "user:list"
	OpUserListPatients Operation = "user:list_patients"
	OpUserUpdate       Operation = "user:update"
	OpUserDelete       Operation = "user:delete"
)

// rolePolicy is the declarative operation → permitted-roles table. Clauses
// are OR'd: holding any listed role grants access, as does self-access where
// selfAccess allows it.
var rolePolicy = map[Operation][]string{
	OpUserCreate:       {domain.RoleAdmin},
	OpUserRead:         {domain.RoleAdmin, domain.RoleInternalService},
	OpUserList:         {domain.RoleAdmin},
	OpUserListPatients: {domain.RoleAdmin},
	OpUserUpdate:       {domain.RoleAdmin},
	OpUserDelete:       {domain.RoleAdmin},
}

// selfAccess marks operations a caller may perform on their own account even
// without a permitted role.
var selfAccess = map[Operation]bool{
	OpUserRead: true,
}

// Authorize grants or denies an operation for the caller identified by
// callerID and roles. targetID is the account the operation addresses; it is
// ignored for operations without self-access. Any failure is
// domain.ErrForbidden.
func Authorize(callerID int64, roles []string, op Operation, targetID int64) error {
	allowed := rolePolicy[op]
	for _, have := range roles {
		for _, want := range allowed {
			if have == want {
				return nil
			}
		}
	}
	if selfAccess[op] && callerID == targetID {
		return nil
	}
	return domain.ErrForbidden
}
