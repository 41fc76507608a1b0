package domain

type Role string

const (
	RoleAdmin    Role = "ROLE_ADMIN"
	RoleCustomer Role = "ROLE_CUSTOMER"
)

type User struct {
	ID       int64
	Username string
	Email    string
	Roles    []Role
	Active   bool
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
