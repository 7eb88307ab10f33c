package domain

import "time"

const (
	RoleAdmin           = "ADMIN"
	RolePatient         = "PATIENT"
	RoleTechnician      = "TECHNICIAN"
	RoleInternalService = "INTERNAL_SERVICE"
)

const (
	ActiveYes = "Y"
	ActiveNo  = "N"
)

// User models an account known to the identity service. Roles are always
// loaded together with the user; no code path returns a user with an empty
// role set from the store.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     string    `json:"is_active"` // 'Y' or 'N'
	LabID        *int64    `json:"lab_id,omitempty"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoleNames returns the names of all roles assigned to the user.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of the named roles.
func (u *User) HasAnyRole(names ...string) bool {
	for _, n := range names {
		if u.HasRole(n) {
			return true
		}
	}
	return false
}
