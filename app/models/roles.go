package models

// Role is the closed set of actor types on the platform.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMerchant Role = "merchant"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMerchant, RoleEmployee, RoleClient:
		return true
	default:
		return false
	}
}

// CanManageMerchants reports whether the role may run admin lifecycle actions
// (grant, renew, suspend, sweep, fee changes).
func (r Role) CanManageMerchants() bool {
	return r == RoleAdmin
}

// CanManageCatalog reports whether the role may edit services, employees and
// working hours of a salon.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin || r == RoleMerchant
}

// CanBook reports whether the role may create appointments.
func (r Role) CanBook() bool {
	return r == RoleMerchant || r == RoleEmployee || r == RoleClient
}
