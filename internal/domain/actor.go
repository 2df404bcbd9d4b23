package domain

// Role names a token trust domain.
type Role string

const (
	RoleStudent    Role = "student"
	RoleDepartment Role = "department"
)

// Actor is the resolved caller of an operation: either a StudentUser or the DepartmentRole.
type Actor interface {
	Role() Role
}

// StudentUser is a caller authenticated through the student trust domain.
type StudentUser struct {
	UserID string
	Email  string
	Hostel Hostel
}

// Role implements Actor.
func (StudentUser) Role() Role { return RoleStudent }

// DepartmentRole is the single shared operator identity.
type DepartmentRole struct {
	Name string
}

// Role implements Actor.
func (DepartmentRole) Role() Role { return RoleDepartment }
