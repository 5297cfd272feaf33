package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleCoordinator UserRole = "COORDINATOR"
	RoleTrainer     UserRole = "TRAINER"
	RoleStudent     UserRole = "STUDENT"
)

// Valid reports whether the role is one the API authorises.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCoordinator, RoleTrainer, RoleStudent:
		return true
	}
	return false
}
