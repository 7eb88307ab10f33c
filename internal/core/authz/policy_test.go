package authz

import (
	"errors"
	"testing"

	"github.com/CristopherGamboa/lab-identity-service/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		callerID int64
		roles    []string
		op       Operation
		targetID int64
		allowed  bool
	}{
		{"admin creates users", 1, []string{domain.RoleAdmin}, OpUserCreate, 0, true},
		{"admin reads any user", 1, []string{domain.RoleAdmin}, OpUserRead, 99, true},
		{"admin lists users", 1, []string{domain.RoleAdmin}, OpUserList, 0, true},
		{"admin lists patients", 1, []string{domain.RoleAdmin}, OpUserListPatients, 0, true},
		{"admin updates users", 1, []string{domain.RoleAdmin}, OpUserUpdate, 99, true},
		{"admin deletes users", 1, []string{domain.RoleAdmin}, OpUserDelete, 99, true},

		{"internal service reads any user", 2, []string{domain.RoleInternalService}, OpUserRead, 99, true},
		{"internal service cannot create", 2, []string{domain.RoleInternalService}, OpUserCreate, 0, false},
		{"internal service cannot list", 2, []string{domain.RoleInternalService}, OpUserList, 0, false},

		{"patient reads own account", 7, []string{domain.RolePatient}, OpUserRead, 7, true},
		{"patient cannot read another account", 7, []string{domain.RolePatient}, OpUserRead, 8, false},
		{"patient cannot create", 7, []string{domain.RolePatient}, OpUserCreate, 0, false},
		{"patient cannot update own account", 7, []string{domain.RolePatient}, OpUserUpdate, 7, false},
		{"patient cannot delete own account", 7, []string{domain.RolePatient}, OpUserDelete, 7, false},

		{"technician reads own account", 3, []string{domain.RoleTechnician}, OpUserRead, 3, true},
		{"technician cannot list patients", 3, []string{domain.RoleTechnician}, OpUserListPatients, 0, false},

		{"admin reading self is still allowed", 5, []string{domain.RoleAdmin}, OpUserRead, 5, true},
		{"no roles denied", 4, nil, OpUserList, 0, false},
		{"unknown operation denied", 1, []string{domain.RoleAdmin}, Operation("user:unknown"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.callerID, tt.roles, tt.op, tt.targetID)
			if tt.allowed && err != nil {
				t.Fatalf("expected access granted, got %v", err)
			}
			if !tt.allowed {
				if !errors.Is(err, domain.ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
			}
		})
	}
}
